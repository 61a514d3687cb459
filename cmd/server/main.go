package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/neighborfit/backend/config"
	httpDelivery "github.com/neighborfit/backend/internal/delivery/http"
	"github.com/neighborfit/backend/internal/domain"
	"github.com/neighborfit/backend/internal/infrastructure/cache"
	"github.com/neighborfit/backend/internal/infrastructure/catalog"
	"github.com/neighborfit/backend/internal/logger"
	"github.com/neighborfit/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("starting NeighborFit backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	items, closeCatalog, err := loadCatalog(ctx, cfg.Catalog, zl)
	if err != nil {
		return err
	}
	defer closeCatalog()

	cat, err := domain.NewCatalog(items)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	zl.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("neighborhoods", cat.Len()))

	rankingCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()
	zl.Info("cache ready", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", cfg.Cache.TTL))

	// Initialize usecase layer
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		Workers:            cfg.Matching.Workers,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	}, zl.Named("matching"))

	rankingService := usecase.NewRankingService(cat, matcher, rankingCache, usecase.RankingServiceConfig{
		CacheTTL:     cfg.Cache.TTL,
		DefaultLimit: cfg.Matching.DefaultLimit,
	}, zl.Named("ranking"))

	handler := httpDelivery.NewHandler(rankingService, zl.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler, zl.Named("http"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadCatalog reads the catalog from the configured source. The sqlite
// source is seeded from the catalog file the first time it is opened.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig, zl *zap.Logger) ([]domain.Neighborhood, func(), error) {
	file := catalog.NewFileRepository(cfg.Path, cfg.ValidateSchema)

	if cfg.Source != "sqlite" {
		items, err := file.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		return items, func() {}, nil
	}

	store, err := catalog.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog store: %w", err)
	}
	closeStore := func() { _ = store.Close() }

	if err := store.EnsureSchema(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("catalog schema: %w", err)
	}

	if cfg.Path != "" {
		seeded, err := store.Seed(ctx, file)
		if err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
		if seeded > 0 {
			zl.Info("seeded catalog store", zap.String("from", cfg.Path), zap.Int("neighborhoods", seeded))
		}
	}

	items, err := store.List(ctx)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return items, closeStore, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	if cfg.Type == "redis" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, "neighborfit:")
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, func() { _ = rc.Close() }, nil
	}

	mc := cache.NewMemoryCache(time.Minute)
	return mc, func() { _ = mc.Close() }, nil
}
