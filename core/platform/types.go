package platform

import "github.com/shopspring/decimal"

// TaxRate is one tax rate as the destination platform stores it.
// RegionCode is the state/province code; an empty code means the rate
// applies to the whole country. PostalCode may be the wildcard "*".
type TaxRate struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	ClassID    int             `json:"class_id"`
	CountryID  int             `json:"country_id"`
	RegionCode string          `json:"region_code"`
	PostalCode string          `json:"postal_code"`
	Rate       decimal.Decimal `json:"rate"`
	Priority   int             `json:"priority"`
}

// TaxRule links a tax rate to a tax class.
type TaxRule struct {
	ID        int `json:"id"`
	ClassID   int `json:"class_id"`
	TaxRateID int `json:"tax_rate_id"`
}

// TaxClass is a platform-side grouping of taxable products.
type TaxClass struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is a destination-side country with its available regions.
type Country struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	ISO2    string   `json:"iso2"`
	ISO3    string   `json:"iso3"`
	Regions []Region `json:"regions"`
}

// Region is a state or province the platform knows for a country.
type Region struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
