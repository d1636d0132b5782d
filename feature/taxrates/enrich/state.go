package enrich

import (
	"context"
	"strings"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"
)

// FixStates assigns the state on every record carrying a state abbreviation.
//
// A record that already carries a valid state keeps it, with the
// abbreviation re-synced from the reference entity. Otherwise reference
// states are matched by abbreviation and by the country of the record's
// postal code; the first match in provider order wins. A record whose
// abbreviation matches no reference state is dropped: a state is mandatory
// for downstream matching. Records with no abbreviation at all pass through
// as country-wide observations.
func FixStates(ctx context.Context, records []models.ExportRecord, arena *models.Arena) ([]models.ExportRecord, error) {
	return parallel.Map(ctx, records, func(_ context.Context, rec models.ExportRecord) (models.ExportRecord, bool, error) {
		if rec.StateID > 0 {
			if st, ok := arena.States[rec.StateID]; ok {
				rec.StateAbbr = st.Abbreviation
			}
			return rec, true, nil
		}

		abbr := strings.TrimSpace(rec.StateAbbr)
		if abbr == "" {
			return rec, true, nil
		}

		countryID := rec.CountryID
		if pc, ok := arena.PostalCodes[rec.PostalCodeID]; ok {
			countryID = pc.CountryID
		}

		for _, st := range arena.StateList {
			if strings.EqualFold(st.Abbreviation, abbr) && st.CountryID == countryID {
				rec.StateID = st.ID
				rec.StateAbbr = st.Abbreviation
				return rec, true, nil
			}
		}

		return rec, false, nil
	})
}
