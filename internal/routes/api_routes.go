package routes

import (
	"github.com/go-chi/chi/v5"

	"stellar-experiment/admiralty/internal/api"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	ships := deps.Services.Ships

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/ships", api.ListShipsHandler(ships))
		v1.Post("/ships", api.CreateShipHandler(ships))
		v1.Get("/ships/count", api.CountShipsHandler(ships))

		v1.Get("/ships/{id}", api.GetShipHandler(ships))
		v1.Post("/ships/{id}", api.UpdateShipHandler(ships))
		v1.Delete("/ships/{id}", api.DeleteShipHandler(ships))

		v1.Get("/fleet/stats", api.FleetStatsHandler(deps.Services.Stats))
	})
}
