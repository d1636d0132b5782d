package enrich

import (
	"context"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"
)

// FixWarehouses repairs the seven per-level warehouse assignments.
//
// Records are partitioned up front: those already passing all seven checks
// bypass the stage entirely, the rest go through the parallel fix, and both
// sets are concatenated back together. At each level an invalid assignment
// (zero id, unknown id, or blank description) is replaced by the matching
// reference entity's warehouse, falling back to the caller-supplied default
// registered on the arena.
func FixWarehouses(ctx context.Context, records []models.ExportRecord, arena *models.Arena, defaultID int) ([]models.ExportRecord, error) {
	var needsFix, good []models.ExportRecord
	for _, rec := range records {
		if warehousesValid(rec, arena) {
			good = append(good, rec)
		} else {
			needsFix = append(needsFix, rec)
		}
	}

	fixed, err := parallel.Map(ctx, needsFix, func(_ context.Context, rec models.ExportRecord) (models.ExportRecord, bool, error) {
		return fixWarehouseLevels(rec, arena, defaultID), true, nil
	})
	if err != nil {
		return nil, err
	}

	return append(good, fixed...), nil
}

// warehousesValid reports whether all seven level assignments are usable.
func warehousesValid(rec models.ExportRecord, arena *models.Arena) bool {
	w := rec.Warehouses
	for _, id := range [...]int{w.Country, w.State, w.StateCountry, w.County, w.CountyState, w.CountyCountry, w.PostalCode} {
		if !arena.WarehouseValid(id) {
			return false
		}
	}
	return true
}

func fixWarehouseLevels(rec models.ExportRecord, arena *models.Arena, defaultID int) models.ExportRecord {
	country := arena.Countries[rec.CountryID]
	state := arena.States[rec.StateID]
	stateCountry := arena.Countries[state.CountryID]
	county := arena.Counties[rec.CountyID]
	countyState := arena.States[county.StateID]
	countyCountry := arena.Countries[countyState.CountryID]
	postal := arena.PostalCodes[rec.PostalCodeID]

	w := &rec.Warehouses
	w.Country = pickWarehouse(w.Country, country.WarehouseID, arena, defaultID)
	w.State = pickWarehouse(w.State, state.WarehouseID, arena, defaultID)
	w.StateCountry = pickWarehouse(w.StateCountry, stateCountry.WarehouseID, arena, defaultID)
	w.County = pickWarehouse(w.County, county.WarehouseID, arena, defaultID)
	w.CountyState = pickWarehouse(w.CountyState, countyState.WarehouseID, arena, defaultID)
	w.CountyCountry = pickWarehouse(w.CountyCountry, countyCountry.WarehouseID, arena, defaultID)
	w.PostalCode = pickWarehouse(w.PostalCode, postal.WarehouseID, arena, defaultID)

	return rec
}

// pickWarehouse keeps a valid assignment, otherwise takes the reference
// entity's warehouse, otherwise the default.
func pickWarehouse(current, candidate int, arena *models.Arena, defaultID int) int {
	if arena.WarehouseValid(current) {
		return current
	}
	if arena.WarehouseValid(candidate) {
		return candidate
	}
	return defaultID
}
