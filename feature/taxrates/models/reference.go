package models

import "strings"

// Warehouse is a fulfillment warehouse referenced by geographic entities.
type Warehouse struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"column:code" json:"code"`
	Description string `gorm:"column:description" json:"description"`
}

// Valid reports whether the warehouse reference is usable: a non-zero
// identifier and a non-blank description.
func (w Warehouse) Valid() bool {
	return w.ID != 0 && strings.TrimSpace(w.Description) != ""
}

// Country is a reference country from the legacy system.
type Country struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"column:name" json:"name"`
	ISO2       string `gorm:"column:iso2" json:"iso2"`
	ISO3       string `gorm:"column:iso3" json:"iso3"`
	ISONumeric int    `gorm:"column:iso_numeric" json:"iso_numeric"`
	// WarehouseID is the country-level fulfillment warehouse, 0 if unset.
	WarehouseID int `gorm:"column:warehouse_id" json:"warehouse_id"`
}

// TableName maps to the legacy OMS table.
func (Country) TableName() string { return "ref_countries" }

// StateProvince is a reference state or province.
type StateProvince struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	CountryID    int    `gorm:"column:country_id" json:"country_id"`
	Name         string `gorm:"column:name" json:"name"`
	Abbreviation string `gorm:"column:abbreviation" json:"abbreviation"`
	WarehouseID  int    `gorm:"column:warehouse_id" json:"warehouse_id"`
}

func (StateProvince) TableName() string { return "ref_states" }

// County is a reference county within a state.
type County struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	StateID     int    `gorm:"column:state_id" json:"state_id"`
	Name        string `gorm:"column:name" json:"name"`
	Code        string `gorm:"column:code" json:"code"`
	WarehouseID int    `gorm:"column:warehouse_id" json:"warehouse_id"`
}

func (County) TableName() string { return "ref_counties" }

// PostalCode is a reference postal code from the legacy system. It carries
// its own foreign keys down the geographic chain.
type PostalCode struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"column:code" json:"code"`
	City        string `gorm:"column:city" json:"city"`
	CountryID   int    `gorm:"column:country_id" json:"country_id"`
	StateID     int    `gorm:"column:state_id" json:"state_id"`
	CountyID    int    `gorm:"column:county_id" json:"county_id"`
	WarehouseID int    `gorm:"column:warehouse_id" json:"warehouse_id"`
}

func (PostalCode) TableName() string { return "ref_postal_codes" }

func (Warehouse) TableName() string { return "ref_warehouses" }

// CanonicalPostalCode is one row of the external canonical postal-code
// table, used as the last lookup for city names.
type CanonicalPostalCode struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Code       string `gorm:"column:code" json:"code"`
	CountryISO string `gorm:"column:country_iso" json:"country_iso"`
	City       string `gorm:"column:city" json:"city"`
}

func (CanonicalPostalCode) TableName() string { return "canonical_postal_codes" }
