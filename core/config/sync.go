package config

// SyncConfig holds configuration for the synchronization pipeline.
type SyncConfig struct {
	// CacheTTLMinutes is the lifetime of one enriched-export cache window.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" default:"60"`
	// ExemptTaxCode marks platform tax classes whose rates are preserved.
	ExemptTaxCode string `mapstructure:"exempt_tax_code" default:"EXEMPT"`
	// OverrideExempt rewrites exempt rates like any other when true.
	OverrideExempt bool `mapstructure:"override_exempt" default:"false"`
	// SourceServerID is the identifier stamped on records for the OMS side.
	SourceServerID int `mapstructure:"source_server_id" default:"1"`
	// DestinationServerID is the identifier stamped on outgoing instructions.
	DestinationServerID int `mapstructure:"destination_server_id" default:"2"`
	// DefaultWarehouse is the description used when no reference warehouse matches.
	DefaultWarehouse string `mapstructure:"default_warehouse" default:"Main Warehouse"`
	// SnapshotObject is the object name of the cache snapshot in the bucket.
	SnapshotObject string `mapstructure:"snapshot_object" default:"cache/enriched-export.json"`
}
