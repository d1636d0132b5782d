package reconcile

import (
	"context"
	"fmt"
	"testing"

	"taxsync/core/platform"
	"taxsync/feature/taxrates/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCountries() []platform.Country {
	return []platform.Country{
		{
			ID:   1,
			Name: "United States",
			ISO2: "US",
			ISO3: "USA",
			Regions: []platform.Region{
				{ID: 10, Code: "CA", Name: "California"},
				{ID: 11, Code: "NY", Name: "New York"},
			},
		},
		{
			ID:   2,
			Name: "Germany",
			ISO2: "DE",
			ISO3: "DEU",
			Regions: []platform.Region{
				{ID: 20, Code: "BY", Name: "Bavaria"},
			},
		},
	}
}

func record(country, state, postal, rate string) models.ExportRecord {
	return models.ExportRecord{
		CountryCode: country,
		StateAbbr:   state,
		PostalCode:  postal,
		Rate:        decimal.RequireFromString(rate),
	}
}

func newTestEngine(opts Options) *Engine {
	if opts.DestinationServerID == 0 {
		opts.DestinationServerID = 2
	}
	return New(zap.NewNop(), opts)
}

func byAction(records []models.SyncRecord) map[models.SyncAction][]models.SyncRecord {
	grouped := make(map[models.SyncAction][]models.SyncRecord)
	for _, r := range records {
		grouped[r.Action] = append(grouped[r.Action], r)
	}
	return grouped
}

func TestDiffEmptyDestination(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
			record("US", "NY", "10001", "0.08875"),
			record("DE", "", "80331", "0.19"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.Equal(t, models.ActionCreate, r.Action)
		assert.Equal(t, 2, r.DestinationServerID)
	}

	grouped := byAction(records)
	var wildcard *models.SyncRecord
	for i := range grouped[models.ActionCreate] {
		if grouped[models.ActionCreate][i].Rate.RegionCode == "" {
			wildcard = &grouped[models.ActionCreate][i]
		}
	}
	require.NotNil(t, wildcard, "country-wide German record should create a blank region code rate")
	assert.Equal(t, 2, wildcard.Rate.CountryID)
	assert.Equal(t, "80331", wildcard.Rate.PostalCode)
	assert.True(t, wildcard.Rate.Rate.Equal(decimal.RequireFromString("0.19")))
}

func TestDiffRateValueUpdate(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 5, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0900")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, models.ActionUpdate, records[0].Action)
	assert.Equal(t, 5, records[0].Rate.ID)
	assert.Equal(t, "90210", records[0].Rate.PostalCode)
	assert.True(t, records[0].Rate.Rate.Equal(decimal.RequireFromString("0.0925")))
}

func TestDiffEqualRatesProduceNothing(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 5, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0925")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDiffWildcardSpecialization(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 7, CountryID: 1, RegionCode: "CA", PostalCode: "*", Rate: decimal.RequireFromString("0.0900")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, models.ActionUpdate, records[0].Action)
	assert.Equal(t, 7, records[0].Rate.ID)
	assert.Equal(t, "90210", records[0].Rate.PostalCode, "the wildcard rate takes on the record's postal code")
	assert.True(t, records[0].Rate.Rate.Equal(decimal.RequireFromString("0.0925")))
}

func TestDiffAmbiguousWildcardSplits(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 9, CountryID: 1, RegionCode: "CA", PostalCode: "*", Rate: decimal.RequireFromString("0.0900")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
			record("US", "CA", "94110", "0.0863"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 3)

	grouped := byAction(records)
	require.Len(t, grouped[models.ActionDelete], 1)
	require.Len(t, grouped[models.ActionCreate], 2)
	assert.Equal(t, 9, grouped[models.ActionDelete][0].Rate.ID)

	postals := []string{
		grouped[models.ActionCreate][0].Rate.PostalCode,
		grouped[models.ActionCreate][1].Rate.PostalCode,
	}
	assert.ElementsMatch(t, []string{"90210", "94110"}, postals)
}

func TestDiffCountryWideSplitsIntoRegions(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 3, CountryID: 1, RegionCode: "", PostalCode: "*", Rate: decimal.RequireFromString("0.0500")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
			record("US", "NY", "10001", "0.08875"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)

	grouped := byAction(records)
	require.Len(t, grouped[models.ActionDelete], 1)
	require.Len(t, grouped[models.ActionCreate], 2)

	codes := []string{
		grouped[models.ActionCreate][0].Rate.RegionCode,
		grouped[models.ActionCreate][1].Rate.RegionCode,
	}
	assert.ElementsMatch(t, []string{"CA", "NY"}, codes)
}

func TestDiffOrphanDelete(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 4, CountryID: 2, RegionCode: "BY", PostalCode: "80331", Rate: decimal.RequireFromString("0.19")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)

	grouped := byAction(records)
	require.Len(t, grouped[models.ActionDelete], 1)
	assert.Equal(t, 4, grouped[models.ActionDelete][0].Rate.ID)
	require.Len(t, grouped[models.ActionCreate], 1)
}

func TestDiffKeepsRateWhenCountryHasUnresolvedRecords(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 4, CountryID: 2, RegionCode: "BY", PostalCode: "80331", Rate: decimal.RequireFromString("0.19")},
		},
		Records: []models.ExportRecord{
			// The destination does not know a "XX" region for Germany, so
			// this record cannot be resolved.
			record("DE", "XX", "80331", "0.19"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, records, "rates in a country with unresolvable records must be preserved")
}

func TestDiffSecondPassCreates(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 5, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0925")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
			record("US", "NY", "10001", "0.08875"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, models.ActionCreate, records[0].Action)
	assert.Equal(t, "NY", records[0].Rate.RegionCode)
	assert.Equal(t, "10001", records[0].Rate.PostalCode)
}

func TestDiffExemptRates(t *testing.T) {
	classes := []platform.TaxClass{{ID: 100, Name: "EXEMPT"}}
	rules := []platform.TaxRule{{ID: 1, ClassID: 100, TaxRateID: 6}}

	in := Input{
		Countries: testCountries(),
		Classes:   classes,
		Rules:     rules,
		Rates: []platform.TaxRate{
			{ID: 6, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0000")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
		},
	}

	t.Run("Preserved By Default", func(t *testing.T) {
		e := newTestEngine(Options{ExemptTaxCode: "EXEMPT"})

		records, err := e.Diff(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, records, "exempt rates are neither rewritten nor recreated")
	})

	t.Run("Rewritten With Override", func(t *testing.T) {
		e := newTestEngine(Options{ExemptTaxCode: "EXEMPT", OverrideExempt: true})

		records, err := e.Diff(context.Background(), in)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, models.ActionUpdate, records[0].Action)
		assert.True(t, records[0].Rate.Rate.Equal(decimal.RequireFromString("0.0925")))
	})

	t.Run("Direct Class Match", func(t *testing.T) {
		e := newTestEngine(Options{ExemptTaxCode: "EXEMPT"})

		direct := in
		direct.Rules = nil
		direct.Rates = []platform.TaxRate{
			{ID: 8, ClassID: 100, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0000")},
		}

		records, err := e.Diff(context.Background(), direct)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestDiffEachJurisdictionHandledOnce(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Rates: []platform.TaxRate{
			{ID: 1, CountryID: 1, RegionCode: "CA", PostalCode: "90210", Rate: decimal.RequireFromString("0.0900")},
			{ID: 2, CountryID: 1, RegionCode: "NY", PostalCode: "*", Rate: decimal.RequireFromString("0.0400")},
			{ID: 3, CountryID: 2, RegionCode: "BY", PostalCode: "80331", Rate: decimal.RequireFromString("0.19")},
		},
		Records: []models.ExportRecord{
			record("US", "CA", "90210", "0.0925"),
			record("US", "CA", "94110", "0.0863"),
			record("US", "NY", "10001", "0.08875"),
			record("DE", "", "10115", "0.19"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)

	// Every jurisdiction appears in at most one create or update.
	seen := make(map[string]int)
	for _, r := range records {
		if r.Action == models.ActionDelete {
			continue
		}
		key := fmt.Sprintf("%d/%s/%s", r.Rate.CountryID, r.Rate.RegionCode, r.Rate.PostalCode)
		seen[key]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "jurisdiction %s handled more than once", key)
	}

	grouped := byAction(records)
	// Rate 1 updates in place, rate 2 specializes to 10001, rate 3 is deleted
	// (the German export resolves country-wide, not BY), and the remaining
	// 94110 and country-wide DE jurisdictions are created.
	assert.Len(t, grouped[models.ActionUpdate], 2)
	assert.Len(t, grouped[models.ActionDelete], 1)
	assert.Len(t, grouped[models.ActionCreate], 2)
}

func TestDiffUnresolvableRecordsAreSkipped(t *testing.T) {
	e := newTestEngine(Options{})

	in := Input{
		Countries: testCountries(),
		Records: []models.ExportRecord{
			record("FR", "", "75001", "0.20"),
			record("US", "CA", "90210", "0.0925"),
		},
	}

	records, err := e.Diff(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, records, 1, "only the resolvable record produces an instruction")
	assert.Equal(t, "CA", records[0].Rate.RegionCode)
}
