package enrich

import (
	"context"
	"strings"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"
)

// FixCounties assigns the county on records whose postal code does not
// already pin one.
//
// A postal code carrying a county identifier is assumed correct and adopted
// as-is. Otherwise reference counties are matched by code
// (case-insensitive); a record that matches nothing keeps going without a
// county, which only means no county-level warehouse can be derived for it.
func FixCounties(ctx context.Context, records []models.ExportRecord, arena *models.Arena) ([]models.ExportRecord, error) {
	return parallel.Map(ctx, records, func(_ context.Context, rec models.ExportRecord) (models.ExportRecord, bool, error) {
		if rec.CountyID > 0 {
			return rec, true, nil
		}

		if pc, ok := arena.PostalCodes[rec.PostalCodeID]; ok && pc.CountyID != 0 {
			rec.CountyID = pc.CountyID
			if ct, found := arena.Counties[pc.CountyID]; found {
				rec.CountyCode = ct.Code
			}
			return rec, true, nil
		}

		code := strings.TrimSpace(rec.CountyCode)
		if code == "" {
			return rec, true, nil
		}

		for _, ct := range arena.CountyList {
			if strings.EqualFold(ct.Code, code) {
				rec.CountyID = ct.ID
				rec.CountyCode = ct.Code
				break
			}
		}

		return rec, true, nil
	})
}
