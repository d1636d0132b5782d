// Package storage provides the object-store client used as the secondary
// store for the enriched-export cache.
//
// The cache's primary store is the OMS database; a JSON snapshot of each
// cache generation is additionally written to an S3-compatible bucket so
// other consumers can read the enriched export without database access.
// Refreshing the cache removes the snapshot together with the primary
// entries before a new generation is written.
//
// The Client interface wraps the MinIO SDK; a testify mock lives under
// storage/mocks for tests.
package storage
