package cmd

import (
	"context"
	"fmt"
	"os"

	"taxsync/core/config"
	"taxsync/core/database"
	"taxsync/core/logger"
	"taxsync/core/platform"
	"taxsync/core/storage"
	"taxsync/feature/taxrates"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	forceRefresh   bool
	dryRun         bool
	overrideExempt bool
)

// syncCmd runs one synchronization from the terminal.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one tax-rate synchronization",
	Long: `Enrich the legacy tax export (cached under a TTL) and diff it
against the destination platform's tax rates.

Examples:
  # Normal run, reusing a fresh cache window
  taxsync sync

  # Rebuild the cache window first
  taxsync sync --force-refresh

  # Compute without installing a cache window
  taxsync sync --dry-run

  # Rewrite exempt rates like any other
  taxsync sync --override-exempt`,
	Run: func(cmd *cobra.Command, args []string) {
		runSync(cmd.Context())
	},
}

func init() {
	syncCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "rebuild the cache window before reconciling")
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute without installing a cache window")
	syncCmd.Flags().BoolVar(&overrideExempt, "override-exempt", false, "rewrite exempt rates like any other")
	RootCmd.AddCommand(syncCmd)
}

// newSyncService assembles the service the same way the serve command does.
// Shared by the one-shot sync and cache commands.
func newSyncService() (*taxrates.Service, *zap.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to OMS database", zap.Error(err))
	}

	var store storage.Client
	if s, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Snapshot storage unavailable, continuing without mirror", zap.Error(err))
	} else {
		store = s
	}

	client := platform.NewClient(cfg.Platform)

	return taxrates.NewServiceFromConfig(logg, db, client, store, cfg.Storage.Bucket, cfg.Sync), logg
}

func runSync(ctx context.Context) {
	svc, logg := newSyncService()

	result, err := svc.Sync(ctx, taxrates.RunOptions{
		ForceRefresh:   forceRefresh,
		DryRun:         dryRun,
		OverrideExempt: overrideExempt,
	})
	if err != nil {
		logg.Fatal("Synchronization failed", zap.Error(err))
	}

	// Pretty Console Output
	fmt.Println("\n--- Synchronization Result ---")
	fmt.Printf("Cache Hit:      %v\n", result.CacheHit)
	fmt.Printf("Refreshed:      %v\n", result.Refreshed)
	fmt.Printf("Records:        %d\n", result.Records)
	fmt.Println("------------------------------")
	fmt.Printf("Creates:        %d\n", result.Creates)
	fmt.Printf("Updates:        %d\n", result.Updates)
	fmt.Printf("Deletes:        %d\n", result.Deletes)
}
