package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd is the parent command for cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the enriched-export cache",
}

// cacheStatusCmd reports the active cache window.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the active cache window",
	Run: func(cmd *cobra.Command, args []string) {
		runCacheStatus(cmd.Context())
	},
}

// cacheInvalidateCmd drops the cache window and its snapshot.
var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Drop the cache window and its snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		runCacheInvalidate(cmd.Context())
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	RootCmd.AddCommand(cacheCmd)
}

func runCacheStatus(ctx context.Context) {
	svc, _ := newSyncService()

	status, err := svc.CacheStatus(ctx)
	if err != nil {
		fmt.Printf("Failed to read cache status: %v\n", err)
		return
	}
	if status == nil {
		fmt.Println("No cache window.")
		return
	}

	state := "\033[32mFRESH\033[0m" // Green
	if status.Expired {
		state = "\033[31mEXPIRED\033[0m" // Red
	}

	fmt.Println("\n--- Cache Window ---")
	fmt.Printf("ID:         %s\n", status.ID)
	fmt.Printf("Created:    %s\n", status.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Expires:    %s\n", status.ExpiresAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Entries:    %d\n", status.Entries)
	fmt.Printf("State:      %s\n", state)
}

func runCacheInvalidate(ctx context.Context) {
	svc, logg := newSyncService()

	if err := svc.InvalidateCache(ctx); err != nil {
		logg.Fatal("Cache invalidation failed", zap.Error(err))
	}
	fmt.Println("Cache invalidated.")
}
