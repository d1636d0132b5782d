package source

import (
	"context"
	"fmt"

	"taxsync/feature/taxrates/models"

	"gorm.io/gorm"
)

// Provider loads export and reference data from the legacy system.
type Provider interface {
	// ExportRecords returns the raw denormalized tax export.
	ExportRecords(ctx context.Context) ([]models.ExportRecord, error)
	// Countries returns all reference countries.
	Countries(ctx context.Context) ([]models.Country, error)
	// States returns all reference states and provinces.
	States(ctx context.Context) ([]models.StateProvince, error)
	// Counties returns all reference counties.
	Counties(ctx context.Context) ([]models.County, error)
	// PostalCodes returns all reference postal codes.
	PostalCodes(ctx context.Context) ([]models.PostalCode, error)
	// CanonicalPostalCodes returns the external canonical postal-code table.
	CanonicalPostalCodes(ctx context.Context) ([]models.CanonicalPostalCode, error)
	// Warehouses returns all fulfillment warehouses.
	Warehouses(ctx context.Context) ([]models.Warehouse, error)
}

// GormProvider is the database-backed provider.
type GormProvider struct {
	db *gorm.DB
}

// NewGormProvider creates a database-backed provider.
func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

func (p *GormProvider) ExportRecords(ctx context.Context) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	if err := p.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load export records: %w", err)
	}
	return records, nil
}

func (p *GormProvider) Countries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := p.db.WithContext(ctx).Order("id").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}
	return countries, nil
}

func (p *GormProvider) States(ctx context.Context) ([]models.StateProvince, error) {
	var states []models.StateProvince
	if err := p.db.WithContext(ctx).Order("id").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}
	return states, nil
}

func (p *GormProvider) Counties(ctx context.Context) ([]models.County, error) {
	var counties []models.County
	if err := p.db.WithContext(ctx).Order("id").Find(&counties).Error; err != nil {
		return nil, fmt.Errorf("failed to load counties: %w", err)
	}
	return counties, nil
}

func (p *GormProvider) PostalCodes(ctx context.Context) ([]models.PostalCode, error) {
	var codes []models.PostalCode
	if err := p.db.WithContext(ctx).Order("id").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to load postal codes: %w", err)
	}
	return codes, nil
}

func (p *GormProvider) CanonicalPostalCodes(ctx context.Context) ([]models.CanonicalPostalCode, error) {
	var codes []models.CanonicalPostalCode
	if err := p.db.WithContext(ctx).Order("id").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to load canonical postal codes: %w", err)
	}
	return codes, nil
}

func (p *GormProvider) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := p.db.WithContext(ctx).Order("id").Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to load warehouses: %w", err)
	}
	return warehouses, nil
}

// LoadArena loads every reference table and assembles the lookup arena.
func LoadArena(ctx context.Context, p Provider) (*models.Arena, error) {
	countries, err := p.Countries(ctx)
	if err != nil {
		return nil, err
	}
	states, err := p.States(ctx)
	if err != nil {
		return nil, err
	}
	counties, err := p.Counties(ctx)
	if err != nil {
		return nil, err
	}
	postals, err := p.PostalCodes(ctx)
	if err != nil {
		return nil, err
	}
	canonical, err := p.CanonicalPostalCodes(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := p.Warehouses(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewArena(countries, states, counties, postals, warehouses, canonical), nil
}
