package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gig-discovery/internal/catalog"
	"gig-discovery/internal/common/config"
	"gig-discovery/internal/common/database"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/common/observability"
	"gig-discovery/internal/ranking"
	"gig-discovery/internal/recommend"
	"gig-discovery/internal/server"
	"gig-discovery/internal/textproc"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting discovery server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("discovery-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Text processing vocabulary ---
	vocab := textproc.DefaultVocabulary()
	if path := cfg.Discovery.VocabularyPath; path != "" {
		vocab, err = textproc.LoadVocabulary(path)
		if err != nil {
			zapLog.Fatal("vocabulary load failed", zap.Error(err))
		}
		zapLog.Info("Vocabulary loaded", zap.String("path", path))
	}
	proc := textproc.NewProcessor(vocab)

	// --- Discovery engine ---
	store := catalog.NewStore(pg, log)
	cache := catalog.NewResultCache(rdb,
		time.Duration(cfg.Discovery.ResultCacheTTL)*time.Second, log)
	ranker := ranking.NewRanker(proc, log, cfg.Discovery.SimilarityThreshold)
	idx := recommend.NewIndex(cfg.Discovery, log)

	rebuild := func() {
		snapshot, err := store.Snapshot(ctx)
		if err != nil {
			log.Error("index rebuild skipped, catalog read failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		idx.Rebuild(snapshot)
	}

	// Initial population with retry: the catalog may still be warming up.
	err = retryWithBackoff(func() error {
		snapshot, err := store.Snapshot(ctx)
		if err != nil {
			return err
		}
		idx.Rebuild(snapshot)
		return nil
	}, 5, 2*time.Second, zapLog, "Initial index build")
	if err != nil {
		zapLog.Fatal("initial index build failed after retries", zap.Error(err))
	}

	// Periodic rebuild bounds how stale the ranked views can get.
	rebuildInterval := time.Duration(cfg.Discovery.RebuildInterval) * time.Second
	ticker := time.NewTicker(rebuildInterval)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			rebuild()
		}
	}()
	zapLog.Info("Index rebuild loop started", zap.Duration("interval", rebuildInterval))

	// --- HTTP API ---
	srv := server.New(cfg.Server, cfg.Discovery, log, store, cache, idx, ranker, obs)
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Discovery server stopped gracefully")
}
