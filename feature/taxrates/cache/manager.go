package cache

import (
	"context"
	"fmt"
	"time"

	"taxsync/core/parallel"
	"taxsync/feature/taxrates/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// BuildFunc produces the records for a fresh cache window.
type BuildFunc func(ctx context.Context) ([]models.ExportRecord, error)

// Status describes the active cache window.
type Status struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
	Entries   int64     `json:"entries"`
}

// Manager coordinates reads and refreshes of the cache window.
type Manager struct {
	log      *zap.Logger
	store    Store
	snapshot *Snapshot
	ttl      time.Duration
	now      func() time.Time
	sf       singleflight.Group
}

// NewManager creates a cache manager. snapshot may be nil to disable the
// object storage mirror.
func NewManager(log *zap.Logger, store Store, snapshot *Snapshot, ttl time.Duration) *Manager {
	return &Manager{
		log:      log,
		store:    store,
		snapshot: snapshot,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Current returns the records of the active cache window. It reports a miss
// when no window exists, the window has expired, or the window is empty; an
// empty window means the last refresh captured nothing and must not be
// served as data.
func (m *Manager) Current(ctx context.Context) ([]models.ExportRecord, bool, error) {
	c, err := m.store.Latest(ctx)
	if err != nil {
		return nil, false, err
	}
	if c == nil || c.Expired(m.now()) {
		return nil, false, nil
	}

	entries, err := m.store.Entries(ctx, c.ID)
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}

	records := make([]models.ExportRecord, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	return records, true, nil
}

// Refresh builds a fresh window via build and installs it, replacing any
// previous window. Concurrent callers share a single build; all of them
// receive the same result.
func (m *Manager) Refresh(ctx context.Context, build BuildFunc) ([]models.ExportRecord, error) {
	result, err, _ := m.sf.Do("refresh", func() (interface{}, error) {
		records, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build cache window: %w", err)
		}

		window := models.NewExportCache(m.now(), m.ttl)
		entries, err := bindEntries(ctx, window, records)
		if err != nil {
			return nil, err
		}

		if err := m.store.Replace(ctx, window, entries); err != nil {
			return nil, err
		}

		if m.snapshot != nil {
			// The database copy is authoritative; a failed mirror write must
			// not fail the refresh.
			if err := m.snapshot.Write(ctx, window, entries); err != nil {
				m.log.Warn("Failed to write cache snapshot", zap.Error(err))
			}
		}

		m.log.Info("Cache window refreshed",
			zap.String("cache_id", window.ID.String()),
			zap.Int("entries", len(entries)),
			zap.Time("expires_at", window.ExpiresAt))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.ExportRecord), nil
}

// Invalidate drops every cache window and the snapshot mirror.
func (m *Manager) Invalidate(ctx context.Context) error {
	if err := m.store.Purge(ctx); err != nil {
		return err
	}
	if m.snapshot != nil {
		if err := m.snapshot.Remove(ctx); err != nil {
			m.log.Warn("Failed to remove cache snapshot", zap.Error(err))
		}
	}
	return nil
}

// Status reports the active window, or nil when no window exists.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	c, err := m.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	count, err := m.store.Count(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &Status{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
		Expired:   c.Expired(m.now()),
		Entries:   count,
	}, nil
}

// bindEntries projects records into entries of the given window. Entries are
// immutable, so adopting records into a new window always rewrites them in
// bulk rather than re-pointing old rows.
func bindEntries(ctx context.Context, window models.ExportCache, records []models.ExportRecord) ([]models.ExportCacheEntry, error) {
	return parallel.Map(ctx, records, func(_ context.Context, rec models.ExportRecord) (models.ExportCacheEntry, bool, error) {
		return models.ExportCacheEntry{
			CacheID:    window.ID,
			CapturedAt: window.CreatedAt,
			Record:     rec,
		}, true, nil
	})
}
