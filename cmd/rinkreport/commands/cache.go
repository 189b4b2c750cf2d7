package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coldrink/rinkreport/internal/predictions"
	"github.com/coldrink/rinkreport/internal/snapshot"
	"github.com/coldrink/rinkreport/pkg/config"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the snapshot cache",
	Long: `Inspects or clears the on-disk snapshot cache.

Subcommands:
  stats        - Show cached snapshot count
  purge        - Delete all cached snapshots
  predictions  - Summarize the prediction snapshot file

Example:
  go run ./cmd/rinkreport cache stats
  go run ./cmd/rinkreport cache purge
  go run ./cmd/rinkreport cache predictions`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached snapshot count",
	RunE:  runCacheStats,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all cached snapshots",
	RunE:  runCachePurge,
}

var cachePredictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "Summarize the prediction snapshot file",
	RunE:  runCachePredictions,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cachePredictionsCmd)
}

func openStore() (*snapshot.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := snapshot.Open(cfg.Snapshot.Path, cfg.Snapshot.TTL)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return store, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("cached snapshots: %d\n", count)
	return nil
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Purge(); err != nil {
		return err
	}
	fmt.Println("snapshot cache purged")
	return nil
}

func runCachePredictions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	preds, err := predictions.LoadFile(cfg.PredictionsFile)
	if err != nil {
		return err
	}

	fmt.Printf("file:        %s\n", cfg.PredictionsFile)
	fmt.Printf("predictions: %d\n", preds.Len())
	fmt.Printf("teams:       %s\n", strings.Join(preds.Teams(), ", "))
	return nil
}
