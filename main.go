package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacex-dashboard/config"
	"spacex-dashboard/models"
	"spacex-dashboard/server"
	"spacex-dashboard/services"
	"spacex-dashboard/storage"
	"spacex-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== SpaceX Launch Dashboard starting ===")
	logger.Info("Config: dataset %s (%s) | addr: %s | session ttl: %s",
		cfg.DatasetPath, cfg.DatasetSource, cfg.HTTPAddr, cfg.SessionTTL)

	var store *storage.Store
	if cfg.StoreEnabled() {
		var err error
		store, err = storage.OpenStore(ctx, cfg.StoreDriver, cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Failed to open %s store: %v", cfg.StoreDriver, err)
			if cfg.StoreDriver == "postgres" {
				logger.Error("Make sure Docker is running: docker compose up -d")
			}
			os.Exit(1)
		}
		defer store.Close()
	}

	ds, err := loadDataset(cfg, store, logger)
	if err != nil {
		var loadErr *models.DataLoadError
		if errors.As(err, &loadErr) {
			logger.Error("Dataset %s is unusable: %v", loadErr.Path, loadErr)
		} else {
			logger.Error("Dataset could not be loaded: %v", err)
		}
		os.Exit(1)
	}
	logger.Info("Dataset ready: %d launches across %d sites", ds.Len(), len(ds.Sites())-1)

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(os.Stdout, reportSvc.Generate(ds))

	sessions := services.NewSessions(ds, cfg.SessionTTL, logger)
	go sessions.Run(ctx, time.Minute)

	srv, err := server.New(ds, sessions, logger)
	if err != nil {
		logger.Error("Failed to build server: %v", err)
		os.Exit(1)
	}
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Dashboard stopped")
}

// loadDataset reads the launch table from the configured source. When a
// store is open and the source is the file, the store is refreshed with
// the file's contents.
func loadDataset(cfg *config.Config, store *storage.Store, logger *utils.Logger) (*services.Dataset, error) {
	if cfg.DatasetSource == config.SourceStore {
		if store == nil {
			return nil, errors.New("DATASET_SOURCE=store requires STORE_DRIVER")
		}
		records, err := store.FetchAll()
		if err != nil {
			return nil, &models.DataLoadError{Path: store.Source(), Reason: "fetch from store", Err: err}
		}
		return services.NewDataset(store.Source(), records)
	}

	reader, err := storage.Open(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	ds, err := services.LoadDataset(reader, services.NewCleaner(logger))
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.ReplaceAll(ds.Records()); err != nil {
			logger.Warn("Store mirror failed: %v", err)
		} else {
			logger.Info("Mirrored %d launches into %s", ds.Len(), store.Source())
		}
	}
	return ds, nil
}
