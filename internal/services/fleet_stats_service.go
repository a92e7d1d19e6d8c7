package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/constants"
	"stellar-experiment/admiralty/internal/metrics"
	"stellar-experiment/admiralty/internal/models/dtos"
)

// fleetStatsTTL is deliberately short: stats are cheap to recompute and
// clients poll them for dashboards.
const fleetStatsTTL = 30 * time.Second

// FleetStatsService serves register-wide aggregates straight off the
// database, bypassing the ORM.
type FleetStatsService struct {
	db         *sqlx.DB
	cache      common.CacheInterface
	metricsReg *metrics.MetricsRegistry
}

func NewFleetStatsService(db *sqlx.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *FleetStatsService {
	return &FleetStatsService{
		db:         db,
		cache:      cache,
		metricsReg: metricsReg,
	}
}

// Overview returns current fleet statistics, cached for a short window.
func (s *FleetStatsService) Overview(ctx context.Context) (*dtos.FleetStats, error) {
	if s.cache == nil {
		return s.loadStats(ctx)
	}

	val, err := s.cache.GetOrSet(string(constants.CachePrefixFleetStats), fleetStatsTTL, func() (any, error) {
		return s.loadStats(ctx)
	})
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case *dtos.FleetStats:
		copied := *v
		return &copied, nil
	case string:
		// Redis-backed caches hand back raw JSON.
		var stats dtos.FleetStats
		if err := json.Unmarshal([]byte(v), &stats); err == nil {
			return &stats, nil
		}
	}
	return s.loadStats(ctx)
}

// loadStats runs the three aggregate queries concurrently and merges the
// results.
func (s *FleetStatsService) loadStats(ctx context.Context) (*dtos.FleetStats, error) {
	var totals struct {
		Total     int64   `db:"total"`
		Used      int64   `db:"used"`
		AvgSpeed  float64 `db:"avg_speed"`
		AvgRating float64 `db:"avg_rating"`
	}
	var typeCounts []struct {
		ShipType string `db:"ship_type"`
		Count    int64  `db:"count"`
	}
	var crew struct {
		MinCrew   int64 `db:"min_crew"`
		MaxCrew   int64 `db:"max_crew"`
		TotalCrew int64 `db:"total_crew"`
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.GetContext(gctx, &totals, constants.QueryFleetTotals)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &typeCounts, constants.QueryFleetTypeCounts)
	})
	g.Go(func() error {
		return s.db.GetContext(gctx, &crew, constants.QueryFleetCrewSpan)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load fleet stats: %w", err)
	}

	byType := make(map[string]int64, len(typeCounts))
	for _, tc := range typeCounts {
		byType[tc.ShipType] = tc.Count
	}

	s.metricsReg.SetFleetSize(totals.Total)

	return &dtos.FleetStats{
		TotalShips:    totals.Total,
		UsedShips:     totals.Used,
		NewShips:      totals.Total - totals.Used,
		ShipsByType:   byType,
		AverageSpeed:  Round2(totals.AvgSpeed),
		AverageRating: Round2(totals.AvgRating),
		MinCrewSize:   crew.MinCrew,
		MaxCrewSize:   crew.MaxCrew,
		TotalCrew:     crew.TotalCrew,
	}, nil
}
