// Package mocks provides testify mocks for the source package interfaces.
package mocks

import (
	"context"

	"taxsync/feature/taxrates/models"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of source.Provider.
type Provider struct {
	mock.Mock
}

func (m *Provider) ExportRecords(ctx context.Context) ([]models.ExportRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExportRecord), args.Error(1)
}

func (m *Provider) Countries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *Provider) States(ctx context.Context) ([]models.StateProvince, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StateProvince), args.Error(1)
}

func (m *Provider) Counties(ctx context.Context) ([]models.County, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.County), args.Error(1)
}

func (m *Provider) PostalCodes(ctx context.Context) ([]models.PostalCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostalCode), args.Error(1)
}

func (m *Provider) CanonicalPostalCodes(ctx context.Context) ([]models.CanonicalPostalCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CanonicalPostalCode), args.Error(1)
}

func (m *Provider) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Warehouse), args.Error(1)
}
