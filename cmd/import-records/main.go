package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"occdis-data/internal/config"
	"occdis-data/internal/database"
	"occdis-data/internal/logger"
	"occdis-data/internal/repository"
	"occdis-data/internal/service"
	"occdis-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "occdis-import")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close(db)

	// Summary publishing is optional; without Redis the run just logs.
	var kv store.KV
	if cfg.Redis.Addr != "" {
		kv = store.NewRedisKV(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	}

	// External cancellation aborts the transaction; the prior dataset stays
	// authoritative.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewImportService(
		repository.NewPostgresDictionariesRepo(db),
		repository.NewPostgresRecordsRepo(db),
		kv,
		log,
	)

	summary, err := svc.Run(ctx, cfg.Import.Source, cfg.Import.Sheet)
	if err != nil {
		log.Error("Import failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Successfully imported records", zap.Int("count", summary.Imported))
}
