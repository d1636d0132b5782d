package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseRefs holds the warehouse assignment for each of the seven
// geographic levels a record is checked at. A zero identifier means
// unassigned.
type WarehouseRefs struct {
	Country       int `gorm:"column:wh_country" json:"country"`
	State         int `gorm:"column:wh_state" json:"state"`
	StateCountry  int `gorm:"column:wh_state_country" json:"state_country"`
	County        int `gorm:"column:wh_county" json:"county"`
	CountyState   int `gorm:"column:wh_county_state" json:"county_state"`
	CountyCountry int `gorm:"column:wh_county_country" json:"county_country"`
	PostalCode    int `gorm:"column:wh_postal_code" json:"postal_code"`
}

// ExportRecord is one flattened tax-rate observation from the legacy
// order-management system.
//
// Before enrichment only the raw string keys and the rate are trustworthy.
// Enrichment assigns the arena identifiers and normalizes the string fields
// from the matched reference entities (CountryCode becomes the ISO2 code,
// StateAbbr the reference abbreviation, and so on), so a cached record can
// be reconciled without re-deriving the joins.
type ExportRecord struct {
	Period time.Time `gorm:"column:period" json:"period"`

	// Raw keys as exported; normalized during enrichment.
	PostalCode  string `gorm:"column:postal_code" json:"postal_code"`
	CountryCode string `gorm:"column:country_code" json:"country_code"`
	StateAbbr   string `gorm:"column:state_abbr" json:"state_abbr"`
	CountyCode  string `gorm:"column:county_code" json:"county_code"`
	City        string `gorm:"column:city" json:"city"`

	Rate    decimal.Decimal `gorm:"column:rate;type:decimal(10,5)" json:"rate"`
	TaxCode string          `gorm:"column:tax_code" json:"tax_code"`

	// Arena identifiers, assigned by enrichment. 0 means unresolved.
	CountryID    int `gorm:"column:country_id" json:"country_id"`
	StateID      int `gorm:"column:state_id" json:"state_id"`
	CountyID     int `gorm:"column:county_id" json:"county_id"`
	PostalCodeID int `gorm:"column:postal_code_id" json:"postal_code_id"`

	Warehouses WarehouseRefs `gorm:"embedded" json:"warehouses"`

	SourceServerID      int `gorm:"column:source_server_id" json:"source_server_id"`
	DestinationServerID int `gorm:"column:destination_server_id" json:"destination_server_id"`
}

// TableName maps to the denormalized export view in the OMS database.
func (ExportRecord) TableName() string { return "tax_rate_export" }
