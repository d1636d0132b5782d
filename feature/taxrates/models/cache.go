package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportCache is one TTL window of enriched export records.
type ExportCache struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
}

func (ExportCache) TableName() string { return "export_caches" }

// NewExportCache creates a cache window starting at now with the given TTL.
func NewExportCache(now time.Time, ttl time.Duration) ExportCache {
	return ExportCache{
		ID:        uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the cache window has ended: now >= ExpiresAt.
func (c ExportCache) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ExportCacheEntry wraps one enriched export record inside a cache window.
// Entries are immutable once created; moving entries to another cache is a
// bulk rewrite producing new entry values.
type ExportCacheEntry struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	CacheID    uuid.UUID    `gorm:"type:char(36);index" json:"cache_id"`
	CapturedAt time.Time    `gorm:"column:captured_at" json:"captured_at"`
	Record     ExportRecord `gorm:"embedded" json:"record"`
}

func (ExportCacheEntry) TableName() string { return "export_cache_entries" }
