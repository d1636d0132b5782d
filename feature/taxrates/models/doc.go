// Package models defines the data shapes for the tax-rate synchronization
// pipeline.
//
// The legacy order-management system exports a flattened, denormalized view
// of its tax rates (ExportRecord). Reference entities (countries, states,
// counties, postal codes, warehouses) are loaded into an Arena: an
// identifier-keyed set of read-only lookups. Export records address reference
// entities through identifiers into the arena rather than nested owned
// copies, so "the postal code's country equals the record's country" holds
// structurally once enrichment has assigned the identifiers.
//
// ExportCache and ExportCacheEntry persist one enriched export generation
// under a TTL window. SyncRecord is the output unit consumed by the
// downstream apply step.
package models
