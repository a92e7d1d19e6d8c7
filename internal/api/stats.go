package api

import (
	"context"
	"net/http"
	"time"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/models/dtos"
)

// FleetRegistry is the aggregate surface the stats handler consumes.
type FleetRegistry interface {
	Overview(ctx context.Context) (*dtos.FleetStats, error)
}

// FleetStatsHandler handles GET /api/v1/fleet/stats
func FleetStatsHandler(svc FleetRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := svc.Overview(r.Context())
		if err != nil {
			common.RespondError(w, initTime, nil, "Failed to load fleet stats", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fleet stats fetched successfully", stats)
	}
}
