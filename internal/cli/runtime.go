package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/SAP-F-2025/participation-service/internal/events"
	"github.com/SAP-F-2025/participation-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/pkg"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the connections shared by the subcommands
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *gorm.DB
	redis     *redis.Client
	zap       *zap.Logger
	publisher events.EventPublisher
	services  *services.ServiceManager
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{
		cfg:    cfg,
		logger: utils.NewLogger(cfg.Environment),
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	rt.db = db

	// The service runs without a cache when redis is unreachable
	var cacheService cache.CacheService
	rt.zap = newZapLogger(cfg)
	client, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		rt.logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		rt.redis = client
		cacheService = cache.NewRedisCache(client, rt.zap)
	}

	publisher, err := cfg.Events.CreateEventPublisher(rt.logger)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	rt.publisher = publisher

	rt.services = services.NewServiceManager(postgres.NewRepository(db), cacheService, publisher, rt.logger, services.ManagerConfig{
		CacheTTL:        cfg.CacheTTL,
		SearchMinLength: cfg.SearchMinLength,
	})
	return rt, nil
}

func newZapLogger(cfg *config.Config) *zap.Logger {
	build := zap.NewDevelopment
	if cfg.IsProduction() {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("cache")
}

func (rt *runtime) Close() {
	if rt.publisher != nil {
		if err := rt.publisher.Close(); err != nil {
			rt.logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if rt.redis != nil {
		rt.redis.Close()
	}
	if rt.zap != nil {
		_ = rt.zap.Sync()
	}
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
