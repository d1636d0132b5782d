package cache

import (
	"context"
	"errors"
	"fmt"

	"taxsync/feature/taxrates/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store persists cache windows and their entries.
type Store interface {
	// Latest returns the most recent cache window, or nil when none exists.
	Latest(ctx context.Context) (*models.ExportCache, error)
	// Entries returns all entries of the given cache window.
	Entries(ctx context.Context, cacheID uuid.UUID) ([]models.ExportCacheEntry, error)
	// Count returns the number of entries in the given cache window.
	Count(ctx context.Context, cacheID uuid.UUID) (int64, error)
	// Replace atomically installs a new cache window, dropping every
	// previous window and its entries.
	Replace(ctx context.Context, cache models.ExportCache, entries []models.ExportCacheEntry) error
	// Purge drops every cache window and all entries.
	Purge(ctx context.Context) error
}

// GormStore is the database-backed cache store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed cache store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Latest(ctx context.Context) (*models.ExportCache, error) {
	var c models.ExportCache
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest cache: %w", err)
	}
	return &c, nil
}

func (s *GormStore) Entries(ctx context.Context, cacheID uuid.UUID) ([]models.ExportCacheEntry, error) {
	var entries []models.ExportCacheEntry
	err := s.db.WithContext(ctx).
		Where("cache_id = ?", cacheID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cache entries: %w", err)
	}
	return entries, nil
}

func (s *GormStore) Count(ctx context.Context, cacheID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ExportCacheEntry{}).
		Where("cache_id = ?", cacheID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

func (s *GormStore) Replace(ctx context.Context, cache models.ExportCache, entries []models.ExportCacheEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ExportCacheEntry{}).Error; err != nil {
			return fmt.Errorf("failed to drop previous cache entries: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.ExportCache{}).Error; err != nil {
			return fmt.Errorf("failed to drop previous cache windows: %w", err)
		}
		if err := tx.Create(&cache).Error; err != nil {
			return fmt.Errorf("failed to create cache window: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("failed to create cache entries: %w", err)
		}
		return nil
	})
}

func (s *GormStore) Purge(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ExportCacheEntry{}).Error; err != nil {
			return fmt.Errorf("failed to drop cache entries: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.ExportCache{}).Error; err != nil {
			return fmt.Errorf("failed to drop cache windows: %w", err)
		}
		return nil
	})
}
