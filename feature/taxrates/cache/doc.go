// Package cache manages the TTL'd enriched-export cache.
//
// A cache is one window of enriched export records with an expiry. The
// database is the primary store; a JSON snapshot in object storage is kept
// as a secondary copy for inspection and disaster recovery. Refreshing is a
// full replace: the previous window and its entries are dropped in the same
// transaction that installs the new ones, so readers never observe a mix of
// two windows.
package cache
