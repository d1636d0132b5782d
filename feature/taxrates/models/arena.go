package models

import "strings"

// Arena holds one run's reference-data snapshot as identifier-keyed lookups.
// It is built once per enrichment run, before any parallel map starts, and is
// read-only from then on.
type Arena struct {
	Countries   map[int]Country
	States      map[int]StateProvince
	Counties    map[int]County
	PostalCodes map[int]PostalCode
	Warehouses  map[int]Warehouse

	// Ordered lists preserve provider order so "first match wins" lookups
	// are deterministic.
	CountryList   []Country
	StateList     []StateProvince
	CountyList    []County
	CanonicalList []CanonicalPostalCode

	postalByCode map[string]int

	defaultWarehouseID int
}

// NewArena indexes the provider collections.
func NewArena(countries []Country, states []StateProvince, counties []County, postals []PostalCode, warehouses []Warehouse, canonical []CanonicalPostalCode) *Arena {
	a := &Arena{
		Countries:     make(map[int]Country, len(countries)),
		States:        make(map[int]StateProvince, len(states)),
		Counties:      make(map[int]County, len(counties)),
		PostalCodes:   make(map[int]PostalCode, len(postals)),
		Warehouses:    make(map[int]Warehouse, len(warehouses)),
		CountryList:   countries,
		StateList:     states,
		CountyList:    counties,
		CanonicalList: canonical,
		postalByCode:  make(map[string]int, len(postals)),
	}

	for _, c := range countries {
		a.Countries[c.ID] = c
	}
	for _, s := range states {
		a.States[s.ID] = s
	}
	for _, c := range counties {
		a.Counties[c.ID] = c
	}
	for _, w := range warehouses {
		a.Warehouses[w.ID] = w
	}
	for _, p := range postals {
		a.PostalCodes[p.ID] = p
		key := normalizePostal(p.Code)
		// First occurrence wins on duplicate codes
		if _, exists := a.postalByCode[key]; !exists && key != "" {
			a.postalByCode[key] = p.ID
		}
	}

	return a
}

// PostalByCode resolves a raw postal code string against the reference table.
func (a *Arena) PostalByCode(code string) (PostalCode, bool) {
	id, ok := a.postalByCode[normalizePostal(code)]
	if !ok {
		return PostalCode{}, false
	}
	return a.PostalCodes[id], true
}

// CountryByCode resolves a country abbreviation against the country list.
// Two-letter abbreviations compare against ISO2, three-letter against ISO3;
// any other length never matches.
func (a *Arena) CountryByCode(code string) (Country, bool) {
	code = strings.TrimSpace(code)
	switch len(code) {
	case 2:
		for _, c := range a.CountryList {
			if strings.EqualFold(c.ISO2, code) {
				return c, true
			}
		}
	case 3:
		for _, c := range a.CountryList {
			if strings.EqualFold(c.ISO3, code) {
				return c, true
			}
		}
	}
	return Country{}, false
}

// WarehouseValid reports whether id refers to a usable warehouse.
func (a *Arena) WarehouseValid(id int) bool {
	w, ok := a.Warehouses[id]
	return ok && w.Valid()
}

// EnsureDefaultWarehouse registers the caller-supplied fallback warehouse and
// returns its identifier. Calling it again returns the same identifier; there
// is no hidden mutation on read anywhere else.
func (a *Arena) EnsureDefaultWarehouse(description string) int {
	if a.defaultWarehouseID != 0 {
		return a.defaultWarehouseID
	}
	id := 1
	for wid := range a.Warehouses {
		if wid >= id {
			id = wid + 1
		}
	}
	a.Warehouses[id] = Warehouse{ID: id, Code: "DEFAULT", Description: description}
	a.defaultWarehouseID = id
	return id
}

// DefaultWarehouseID returns the fallback warehouse id, 0 if not registered.
func (a *Arena) DefaultWarehouseID() int { return a.defaultWarehouseID }

func normalizePostal(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
