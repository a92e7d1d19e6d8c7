package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/logging"
	"stellar-experiment/admiralty/internal/models/dtos"
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
	"stellar-experiment/admiralty/internal/services"
)

// ShipRegistry is the service surface the ship handlers consume.
type ShipRegistry interface {
	Create(ctx context.Context, fields services.ShipFields) (*entities.Ship, error)
	GetByID(ctx context.Context, id int64) (*entities.Ship, error)
	Update(ctx context.Context, id int64, fields services.ShipFields) (*entities.Ship, error)
	DeleteByID(ctx context.Context, id int64) error
	List(ctx context.Context, filter services.ShipFilter, page query.PageRequest) (*query.Page[entities.Ship], error)
	Count(ctx context.Context, filter services.ShipFilter) (int64, error)
}

// ListShipsHandler handles GET /api/v1/ships
func ListShipsHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter, err := parseShipFilter(r.URL.Query())
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid filter", http.StatusBadRequest)
			return
		}
		page, err := parsePageRequest(r.URL.Query())
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid page request", http.StatusBadRequest)
			return
		}

		result, err := svc.List(r.Context(), filter, page)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ships fetched successfully", dtos.NewShipPageResponse(result))
	}
}

// CountShipsHandler handles GET /api/v1/ships/count
func CountShipsHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter, err := parseShipFilter(r.URL.Query())
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid filter", http.StatusBadRequest)
			return
		}

		count, err := svc.Count(r.Context(), filter)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ships counted successfully", count)
	}
}

// CreateShipHandler handles POST /api/v1/ships
func CreateShipHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		fields, err := decodeShipRequest(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		ship, err := svc.Create(r.Context(), fields)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ship created successfully", dtos.NewShipResponse(ship), http.StatusCreated)
	}
}

// GetShipHandler handles GET /api/v1/ships/{id}
func GetShipHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := parseShipID(r)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		ship, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ship fetched successfully", dtos.NewShipResponse(ship))
	}
}

// UpdateShipHandler handles POST /api/v1/ships/{id}
func UpdateShipHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := parseShipID(r)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		fields, err := decodeShipRequest(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		ship, err := svc.Update(r.Context(), id, fields)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ship updated successfully", dtos.NewShipResponse(ship))
	}
}

// DeleteShipHandler handles DELETE /api/v1/ships/{id}
func DeleteShipHandler(svc ShipRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := parseShipID(r)
		if err != nil {
			respondShipError(w, initTime, err)
			return
		}

		if err := svc.DeleteByID(r.Context(), id); err != nil {
			respondShipError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Ship deleted successfully", nil)
	}
}

// decodeShipRequest maps the JSON body onto service fields, converting
// epoch milliseconds into UTC timestamps.
func decodeShipRequest(r *http.Request) (services.ShipFields, error) {
	var req dtos.ShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return services.ShipFields{}, err
	}

	fields := services.ShipFields{
		Name:     req.Name,
		Planet:   req.Planet,
		IsUsed:   req.IsUsed,
		Speed:    req.Speed,
		CrewSize: req.CrewSize,
	}
	if req.ShipType != nil {
		shipType := entities.ShipType(*req.ShipType)
		fields.ShipType = &shipType
	}
	if req.ProdDate != nil {
		prodDate := time.UnixMilli(*req.ProdDate).UTC()
		fields.ProdDate = &prodDate
	}
	return fields, nil
}

// respondShipError maps service errors onto HTTP statuses: bad input is a
// 400, a missing record a 404, anything else a 500.
func respondShipError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		common.RespondError(w, initTime, err, "Ship not found", http.StatusNotFound)
	case services.IsValidationError(err):
		common.RespondError(w, initTime, err, "Invalid ship payload", http.StatusBadRequest)
	default:
		logging.Error("Ship request failed", "error", err)
		common.RespondError(w, initTime, nil, "Internal server error", http.StatusInternalServerError)
	}
}
