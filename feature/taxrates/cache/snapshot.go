package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"taxsync/core/storage"
	"taxsync/feature/taxrates/models"

	"github.com/minio/minio-go/v7"
)

// snapshotDocument is the JSON shape written to object storage.
type snapshotDocument struct {
	Cache   models.ExportCache       `json:"cache"`
	Entries []models.ExportCacheEntry `json:"entries"`
}

// Snapshot mirrors the active cache window into object storage.
type Snapshot struct {
	client storage.Client
	bucket string
	object string
}

// NewSnapshot creates a snapshot writer for the given bucket and object name.
func NewSnapshot(client storage.Client, bucket, object string) *Snapshot {
	return &Snapshot{client: client, bucket: bucket, object: object}
}

// Write uploads the cache window and its entries as one JSON object,
// creating the bucket if it does not exist yet.
func (s *Snapshot) Write(ctx context.Context, cache models.ExportCache, entries []models.ExportCacheEntry) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check snapshot bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create snapshot bucket: %w", err)
		}
	}

	payload, err := json.Marshal(snapshotDocument{Cache: cache, Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.object,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}

// Remove deletes the snapshot object. Removing a snapshot that does not
// exist is not an error.
func (s *Snapshot) Remove(ctx context.Context) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}
