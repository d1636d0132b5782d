package enrich

import (
	"context"
	"strings"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"
)

// CityNotFound is the sentinel assigned when no postal-code table knows the
// record's city. The record stays in the output either way.
const CityNotFound = "city not found"

// FixCities fills in a blank city name.
//
// The legacy system's own postal-code table is tried first, matched by
// postal code and country. If it has nothing, the external canonical
// postal-code table is matched by postal code and country ISO code (two- or
// three-letter). If that also fails, the city becomes the CityNotFound
// sentinel rather than failing the record.
func FixCities(ctx context.Context, records []models.ExportRecord, arena *models.Arena) ([]models.ExportRecord, error) {
	return parallel.Map(ctx, records, func(_ context.Context, rec models.ExportRecord) (models.ExportRecord, bool, error) {
		if strings.TrimSpace(rec.City) != "" {
			return rec, true, nil
		}

		if pc, ok := arena.PostalByCode(rec.PostalCode); ok && pc.CountryID == rec.CountryID && strings.TrimSpace(pc.City) != "" {
			rec.City = pc.City
			return rec, true, nil
		}

		country := arena.Countries[rec.CountryID]
		code := strings.TrimSpace(rec.PostalCode)
		for _, cp := range arena.CanonicalList {
			if !strings.EqualFold(strings.TrimSpace(cp.Code), code) {
				continue
			}
			if strings.EqualFold(cp.CountryISO, country.ISO2) || strings.EqualFold(cp.CountryISO, country.ISO3) {
				if strings.TrimSpace(cp.City) != "" {
					rec.City = cp.City
					return rec, true, nil
				}
			}
		}

		rec.City = CityNotFound
		return rec, true, nil
	})
}
