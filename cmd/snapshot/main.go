package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacex-dashboard/config"
	"spacex-dashboard/models"
	"spacex-dashboard/snapshot"
	"spacex-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Dashboard snapshot starting ===")
	logger.Info("Config: dashboard %s | concurrency: %d | rate: %dms | out: %s",
		cfg.DashboardURL, cfg.SnapshotConcurrency, cfg.RateLimitMs, cfg.SnapshotDir)

	client := &http.Client{Timeout: 15 * time.Second}
	sites, err := snapshot.FetchSites(ctx, client, cfg.DashboardURL)
	if err != nil {
		logger.Error("Could not read sites from the dashboard: %v", err)
		logger.Error("Make sure the dashboard is running at %s", cfg.DashboardURL)
		os.Exit(1)
	}

	targets, err := snapshot.Targets(cfg.DashboardURL, sites, models.DefaultPayloadRange())
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	results, err := snapshot.New(cfg, logger).Capture(ctx, targets)
	if err != nil {
		logger.Error("Snapshot failed: %v", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("Captured %d/%d views into %s", len(results)-failed, len(results), cfg.SnapshotDir)
	if failed > 0 {
		os.Exit(1)
	}
}
