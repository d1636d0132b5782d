package enrich

import (
	"context"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"
)

// FixCountries assigns the country on every record that can resolve one.
//
// The record's postal code is tried first: a resolved reference postal code
// pins the record's postal, country, county and state identifiers in one
// step. When the postal code is unknown, the record's own country
// abbreviation is matched against the country list (ISO2 for two-letter
// abbreviations, ISO3 for three-letter). Records that resolve neither pass
// through unchanged; later stages and reconciliation treat them as the
// "needs country" subset.
func FixCountries(ctx context.Context, records []models.ExportRecord, arena *models.Arena) ([]models.ExportRecord, error) {
	return parallel.Map(ctx, records, func(_ context.Context, rec models.ExportRecord) (models.ExportRecord, bool, error) {
		if pc, ok := arena.PostalByCode(rec.PostalCode); ok {
			rec.PostalCodeID = pc.ID
			if country, found := arena.Countries[pc.CountryID]; found {
				rec.CountryID = country.ID
				rec.CountryCode = country.ISO2
				return rec, true, nil
			}
		}

		if country, ok := arena.CountryByCode(rec.CountryCode); ok {
			rec.CountryID = country.ID
			rec.CountryCode = country.ISO2
			return rec, true, nil
		}

		return rec, true, nil
	})
}
