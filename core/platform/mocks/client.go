package mocks

import (
	"context"

	"taxsync/core/platform"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of platform.Client
type Client struct {
	mock.Mock
}

func (m *Client) LoadTaxRates(ctx context.Context) ([]platform.TaxRate, error) {
	args := m.Called(ctx)
	if rates, ok := args.Get(0).([]platform.TaxRate); ok {
		return rates, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LoadTaxRules(ctx context.Context) ([]platform.TaxRule, error) {
	args := m.Called(ctx)
	if rules, ok := args.Get(0).([]platform.TaxRule); ok {
		return rules, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LoadTaxClasses(ctx context.Context) ([]platform.TaxClass, error) {
	args := m.Called(ctx)
	if classes, ok := args.Get(0).([]platform.TaxClass); ok {
		return classes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LoadCountries(ctx context.Context) ([]platform.Country, error) {
	args := m.Called(ctx)
	if countries, ok := args.Get(0).([]platform.Country); ok {
		return countries, args.Error(1)
	}
	return nil, args.Error(1)
}
