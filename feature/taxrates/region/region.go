// Package region resolves export records to destination-side region
// descriptors.
//
// The same resolver runs on both sides of reconciliation, so identical
// inputs must produce identical descriptors; everything here is a pure
// function over its arguments.
package region

import (
	"strings"

	"taxsync/core/platform"
	"taxsync/feature/taxrates/models"
)

// Wildcard is the region code meaning "applies to the entire country".
const Wildcard = "*"

// Descriptor is the destination-side projection of a record's jurisdiction.
type Descriptor struct {
	// CountryID is the destination platform's country identifier.
	CountryID int
	// CountryISO2 is the matched country's ISO2 code.
	CountryISO2 string
	// Code is the uppercased state code, or Wildcard for country-wide.
	Code string
}

// Resolve maps an export record to a destination region descriptor.
// It returns false if the record's country cannot be matched by ISO2 against
// the destination country list, or if the record names a state the
// destination country does not know.
func Resolve(rec models.ExportRecord, countries []platform.Country) (Descriptor, bool) {
	iso2 := strings.TrimSpace(rec.CountryCode)
	if iso2 == "" {
		return Descriptor{}, false
	}

	var country *platform.Country
	for i := range countries {
		if strings.EqualFold(countries[i].ISO2, iso2) {
			country = &countries[i]
			break
		}
	}
	if country == nil {
		return Descriptor{}, false
	}

	abbr := strings.TrimSpace(rec.StateAbbr)
	if abbr == "" {
		return Descriptor{
			CountryID:   country.ID,
			CountryISO2: country.ISO2,
			Code:        Wildcard,
		}, true
	}

	for _, r := range country.Regions {
		if strings.EqualFold(r.Code, abbr) {
			return Descriptor{
				CountryID:   country.ID,
				CountryISO2: country.ISO2,
				Code:        strings.ToUpper(abbr),
			}, true
		}
	}

	// The record names a state the destination does not list; there is no
	// actionable rate for it.
	return Descriptor{}, false
}
