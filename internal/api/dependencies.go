package api

import (
	"fmt"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/config"
	"stellar-experiment/admiralty/internal/db"
	"stellar-experiment/admiralty/internal/db/repositories"
	"stellar-experiment/admiralty/internal/logging"
	"stellar-experiment/admiralty/internal/metrics"
	"stellar-experiment/admiralty/internal/services"
)

type Repositories struct {
	Ships *repositories.ShipRepository
}

type Services struct {
	Cache common.CacheInterface
	Ships *services.ShipService
	Stats *services.FleetStatsService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services onto the database
// handles opened at boot.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Ships: repositories.NewShipRepository(db.PgDB, metricsReg),
	}

	var cacheSvc common.CacheInterface
	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := common.NewRedisCacheService(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cacheSvc = redisCache
		logging.Info("Cache backend: redis", "addr", cfg.Redis.Addr())
	default:
		cacheSvc = common.NewCacheService(300, 600)
		logging.Info("Cache backend: in-memory")
	}

	svcs := &Services{
		Cache: cacheSvc,
		Ships: services.NewShipService(repos.Ships, cacheSvc, metricsReg),
		Stats: services.NewFleetStatsService(db.DB, cacheSvc, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
