package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stellar-experiment/admiralty/internal/constants"
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
	"stellar-experiment/admiralty/internal/services"
)

// parseShipID reads the {id} route parameter. Anything non-numeric is
// treated like a non-positive id.
func parseShipID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, services.ErrInvalidID
	}
	return id, nil
}

// parseShipFilter turns list/count query parameters into a filter.
// Malformed values are rejected rather than silently dropped.
func parseShipFilter(values url.Values) (services.ShipFilter, error) {
	filter := services.ShipFilter{}

	if v := values.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := values.Get("planet"); v != "" {
		filter.Planet = &v
	}
	if v := values.Get("shipType"); v != "" {
		shipType, ok := entities.ParseShipType(v)
		if !ok {
			return filter, fmt.Errorf("invalid shipType %q", v)
		}
		filter.ShipType = &shipType
	}

	after, err := queryMillis(values, "after")
	if err != nil {
		return filter, err
	}
	filter.After = after

	before, err := queryMillis(values, "before")
	if err != nil {
		return filter, err
	}
	filter.Before = before

	if v := values.Get("isUsed"); v != "" {
		isUsed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid isUsed %q", v)
		}
		filter.IsUsed = &isUsed
	}

	if filter.MinSpeed, err = queryFloat(values, "minSpeed"); err != nil {
		return filter, err
	}
	if filter.MaxSpeed, err = queryFloat(values, "maxSpeed"); err != nil {
		return filter, err
	}
	if filter.MinCrewSize, err = queryInt(values, "minCrewSize"); err != nil {
		return filter, err
	}
	if filter.MaxCrewSize, err = queryInt(values, "maxCrewSize"); err != nil {
		return filter, err
	}
	if filter.MinRating, err = queryFloat(values, "minRating"); err != nil {
		return filter, err
	}
	if filter.MaxRating, err = queryFloat(values, "maxRating"); err != nil {
		return filter, err
	}

	return filter, nil
}

// parsePageRequest reads pagination and ordering parameters. Defaults are
// applied later by the service; only malformed input fails here.
func parsePageRequest(values url.Values) (query.PageRequest, error) {
	page := query.PageRequest{}

	if v := values.Get("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, fmt.Errorf("invalid pageNumber %q", v)
		}
		page.PageIndex = n
	}
	if v := values.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, fmt.Errorf("invalid pageSize %q", v)
		}
		page.PageSize = n
	}

	if v := values.Get("order"); v != "" {
		field, err := sortFieldFor(v)
		if err != nil {
			return page, err
		}
		page.SortField = field
	}

	switch v := strings.ToLower(values.Get("direction")); v {
	case "", "asc":
	case "desc":
		page.Descending = true
	default:
		return page, fmt.Errorf("invalid direction %q", v)
	}

	return page, nil
}

func sortFieldFor(order string) (string, error) {
	switch strings.ToUpper(order) {
	case constants.OrderID:
		return entities.FieldID, nil
	case constants.OrderSpeed:
		return entities.FieldSpeed, nil
	case constants.OrderDate:
		return entities.FieldProdDate, nil
	case constants.OrderRating:
		return entities.FieldRating, nil
	}
	return "", fmt.Errorf("invalid order %q", order)
}

func queryMillis(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	t := time.UnixMilli(millis).UTC()
	return &t, nil
}

func queryFloat(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &f, nil
}

func queryInt(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &n, nil
}
