// Package mocks provides testify mocks for the cache package interfaces.
package mocks

import (
	"context"

	"taxsync/feature/taxrates/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of cache.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Latest(ctx context.Context) (*models.ExportCache, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportCache), args.Error(1)
}

func (m *Store) Entries(ctx context.Context, cacheID uuid.UUID) ([]models.ExportCacheEntry, error) {
	args := m.Called(ctx, cacheID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExportCacheEntry), args.Error(1)
}

func (m *Store) Count(ctx context.Context, cacheID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cacheID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) Replace(ctx context.Context, cache models.ExportCache, entries []models.ExportCacheEntry) error {
	args := m.Called(ctx, cache, entries)
	return args.Error(0)
}

func (m *Store) Purge(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
