package taxrates

import (
	"time"

	"taxsync/core/config"
	"taxsync/core/platform"
	"taxsync/core/storage"
	"taxsync/feature/taxrates/cache"
	"taxsync/feature/taxrates/enrich"
	"taxsync/feature/taxrates/reconcile"
	"taxsync/feature/taxrates/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the tax-rate synchronization feature.
func NewFeature(log *zap.Logger, db *gorm.DB, platformClient platform.Client, storageClient storage.Client, bucket string, sync config.SyncConfig) *Feature {
	svc := NewServiceFromConfig(log, db, platformClient, storageClient, bucket, sync)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// NewServiceFromConfig assembles a Service from the application configuration.
func NewServiceFromConfig(log *zap.Logger, db *gorm.DB, platformClient platform.Client, storageClient storage.Client, bucket string, sync config.SyncConfig) *Service {
	var snapshot *cache.Snapshot
	if storageClient != nil {
		snapshot = cache.NewSnapshot(storageClient, bucket, sync.SnapshotObject)
	}

	manager := cache.NewManager(log, cache.NewGormStore(db), snapshot,
		time.Duration(sync.CacheTTLMinutes)*time.Minute)
	pipeline := enrich.NewPipeline(log, sync.DefaultWarehouse, sync.SourceServerID)

	return NewService(log, source.NewGormProvider(db), platformClient, manager, pipeline, reconcile.Options{
		ExemptTaxCode:       sync.ExemptTaxCode,
		OverrideExempt:      sync.OverrideExempt,
		DestinationServerID: sync.DestinationServerID,
	})
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "taxrates"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
