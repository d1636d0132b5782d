package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	storagemocks "taxsync/core/storage/mocks"
	"taxsync/feature/taxrates/cache/mocks"
	"taxsync/feature/taxrates/models"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRecords() []models.ExportRecord {
	return []models.ExportRecord{
		{PostalCode: "90210", CountryCode: "US", StateAbbr: "CA", Rate: decimal.RequireFromString("0.0925")},
		{PostalCode: "10001", CountryCode: "US", StateAbbr: "NY", Rate: decimal.RequireFromString("0.08875")},
	}
}

func staticBuild(records []models.ExportRecord) BuildFunc {
	return func(context.Context) ([]models.ExportRecord, error) {
		return records, nil
	}
}

func TestManagerMissOnEmptyStore(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)

	records, ok, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, records)
}

func TestManagerRefreshThenHit(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)
	ctx := context.Background()

	built, err := m.Refresh(ctx, staticBuild(testRecords()))
	require.NoError(t, err)
	require.Len(t, built, 2)

	records, ok, err := m.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, "90210", records[0].PostalCode)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)
	ctx := context.Background()

	start := time.Now().Truncate(time.Second)
	m.now = func() time.Time { return start }

	_, err := m.Refresh(ctx, staticBuild(testRecords()))
	require.NoError(t, err)

	t.Run("Fresh Just Before Expiry", func(t *testing.T) {
		m.now = func() time.Time { return start.Add(time.Hour - time.Second) }
		_, ok, err := m.Current(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Expired At Expiry Instant", func(t *testing.T) {
		m.now = func() time.Time { return start.Add(time.Hour) }
		_, ok, err := m.Current(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "a window is expired the moment now reaches expires_at")
	})
}

func TestManagerEmptyWindowIsAMiss(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)
	ctx := context.Background()

	_, err := m.Refresh(ctx, staticBuild(nil))
	require.NoError(t, err)

	_, ok, err := m.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a fresh but empty window must not be served")
}

func TestManagerInvalidate(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)
	ctx := context.Background()

	_, err := m.Refresh(ctx, staticBuild(testRecords()))
	require.NoError(t, err)
	require.NoError(t, m.Invalidate(ctx))

	_, ok, err := m.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerRefreshBuildFailure(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)

	_, err := m.Refresh(context.Background(), func(context.Context) ([]models.ExportRecord, error) {
		return nil, errors.New("export unavailable")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export unavailable")
}

func TestManagerStatus(t *testing.T) {
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), nil, time.Hour)
	ctx := context.Background()

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, status)

	_, err = m.Refresh(ctx, staticBuild(testRecords()))
	require.NoError(t, err)

	status, err = m.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.False(t, status.Expired)
	assert.EqualValues(t, 2, status.Entries)
	assert.Equal(t, time.Hour, status.ExpiresAt.Sub(status.CreatedAt))
}

func TestManagerSnapshotFailureDoesNotFailRefresh(t *testing.T) {
	client := &storagemocks.Client{}
	client.On("BucketExists", mock.Anything, "taxsync").Return(false, errors.New("endpoint down"))

	snapshot := NewSnapshot(client, "taxsync", "cache/enriched-export.json")
	m := NewManager(zap.NewNop(), NewGormStore(testDB(t)), snapshot, time.Hour)

	records, err := m.Refresh(context.Background(), staticBuild(testRecords()))
	require.NoError(t, err, "a failed mirror write must not fail the refresh")
	require.Len(t, records, 2)
	client.AssertExpectations(t)
}

func TestManagerStoreFailure(t *testing.T) {
	store := &mocks.Store{}
	store.On("Latest", mock.Anything).Return(nil, errors.New("connection lost"))

	m := NewManager(zap.NewNop(), store, nil, time.Hour)

	_, _, err := m.Current(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")

	_, err = m.Status(context.Background())
	require.Error(t, err)
	store.AssertExpectations(t)
}

func TestSnapshotWrite(t *testing.T) {
	client := &storagemocks.Client{}
	client.On("BucketExists", mock.Anything, "taxsync").Return(true, nil)
	client.On("PutObject", mock.Anything, "taxsync", "cache/enriched-export.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	snapshot := NewSnapshot(client, "taxsync", "cache/enriched-export.json")
	window := models.NewExportCache(time.Now(), time.Hour)

	err := snapshot.Write(context.Background(), window, nil)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestSnapshotRemove(t *testing.T) {
	client := &storagemocks.Client{}
	client.On("RemoveObject", mock.Anything, "taxsync", "cache/enriched-export.json",
		mock.Anything).Return(nil)

	snapshot := NewSnapshot(client, "taxsync", "cache/enriched-export.json")
	require.NoError(t, snapshot.Remove(context.Background()))
	client.AssertExpectations(t)
}
