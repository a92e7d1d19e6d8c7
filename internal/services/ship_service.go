package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/constants"
	"stellar-experiment/admiralty/internal/metrics"
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

// shipCacheTTL bounds staleness for cached single-ship reads. Mutations
// evict eagerly, so the TTL only covers out-of-band writes.
const shipCacheTTL = 5 * time.Minute

// ShipStorage is the persistence surface the ship service depends on.
// Lookups for absent ids return (nil, nil); errors are reserved for
// storage failures.
type ShipStorage interface {
	FindByID(ctx context.Context, id int64) (*entities.Ship, error)
	Save(ctx context.Context, ship *entities.Ship) (*entities.Ship, error)
	Delete(ctx context.Context, ship *entities.Ship) error
	FindAll(ctx context.Context, spec *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error)
	Count(ctx context.Context, spec *query.Spec) (int64, error)
}

// ShipFields carries the client-supplied fields of a ship. Create
// requires everything except IsUsed, which defaults to false; Update
// treats nil fields as "leave unchanged". Rating is deliberately absent,
// it is always derived.
type ShipFields struct {
	Name     *string
	Planet   *string
	ShipType *entities.ShipType
	ProdDate *time.Time
	IsUsed   *bool
	Speed    *float64
	CrewSize *int
}

// ShipService implements the ship record lifecycle: validation, rating,
// persistence and per-ship caching.
type ShipService struct {
	storage    ShipStorage
	cache      common.CacheInterface
	metricsReg *metrics.MetricsRegistry
}

// NewShipService wires the service. cache and metricsReg may be nil, in
// which case reads always hit storage and no metrics are recorded.
func NewShipService(storage ShipStorage, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *ShipService {
	return &ShipService{
		storage:    storage,
		cache:      cache,
		metricsReg: metricsReg,
	}
}

// Create validates candidate fields, derives the rating and persists a
// new ship. Every field except IsUsed must be present and valid.
func (s *ShipService) Create(ctx context.Context, fields ShipFields) (*entities.Ship, error) {
	if err := ValidateName(fields.Name); err != nil {
		return nil, err
	}
	if err := ValidatePlanet(fields.Planet); err != nil {
		return nil, err
	}
	if err := ValidateShipType(fields.ShipType); err != nil {
		return nil, err
	}
	if err := ValidateProdDate(fields.ProdDate); err != nil {
		return nil, err
	}
	if err := ValidateSpeed(fields.Speed); err != nil {
		return nil, err
	}
	if err := ValidateCrewSize(fields.CrewSize); err != nil {
		return nil, err
	}

	isUsed := false
	if fields.IsUsed != nil {
		isUsed = *fields.IsUsed
	}

	ship := &entities.Ship{
		Name:     *fields.Name,
		Planet:   *fields.Planet,
		ShipType: *fields.ShipType,
		ProdDate: *fields.ProdDate,
		IsUsed:   isUsed,
		Speed:    Round2(*fields.Speed),
		CrewSize: *fields.CrewSize,
	}
	ship.Rating = ComputeRating(ship.ProdYear(), ship.Speed, ship.IsUsed)

	saved, err := s.storage.Save(ctx, ship)
	if err != nil {
		return nil, fmt.Errorf("failed to save ship: %w", err)
	}

	s.metricsReg.ShipCreated()
	return saved, nil
}

// GetByID returns the ship stored under id, consulting the cache first.
// Returns ErrInvalidID for non-positive ids and ErrNotFound when no such
// ship exists.
func (s *ShipService) GetByID(ctx context.Context, id int64) (*entities.Ship, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	if ship, ok := s.cachedShip(id); ok {
		s.metricsReg.CacheHit(string(constants.CachePrefixShip))
		return ship, nil
	}
	s.metricsReg.CacheMiss(string(constants.CachePrefixShip))

	ship, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheShip(ship)
	return ship, nil
}

// Update loads the ship under id and applies the present fields, each
// validated in isolation. The rating is recomputed unconditionally, so a
// change to prodDate, speed or isUsed is reflected even when the others
// stay untouched.
func (s *ShipService) Update(ctx context.Context, id int64, fields ShipFields) (*entities.Ship, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	ship, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		if err := ValidateName(fields.Name); err != nil {
			return nil, err
		}
		ship.Name = *fields.Name
	}
	if fields.Planet != nil {
		if err := ValidatePlanet(fields.Planet); err != nil {
			return nil, err
		}
		ship.Planet = *fields.Planet
	}
	if fields.ShipType != nil {
		if err := ValidateShipType(fields.ShipType); err != nil {
			return nil, err
		}
		ship.ShipType = *fields.ShipType
	}
	if fields.ProdDate != nil {
		if err := ValidateProdDate(fields.ProdDate); err != nil {
			return nil, err
		}
		ship.ProdDate = *fields.ProdDate
	}
	if fields.IsUsed != nil {
		ship.IsUsed = *fields.IsUsed
	}
	if fields.Speed != nil {
		if err := ValidateSpeed(fields.Speed); err != nil {
			return nil, err
		}
		ship.Speed = Round2(*fields.Speed)
	}
	if fields.CrewSize != nil {
		if err := ValidateCrewSize(fields.CrewSize); err != nil {
			return nil, err
		}
		ship.CrewSize = *fields.CrewSize
	}

	ship.Rating = ComputeRating(ship.ProdYear(), ship.Speed, ship.IsUsed)

	saved, err := s.storage.Save(ctx, ship)
	if err != nil {
		return nil, fmt.Errorf("failed to save ship: %w", err)
	}

	s.evictShip(id)
	s.metricsReg.ShipUpdated()
	return saved, nil
}

// DeleteByID removes the ship stored under id. Returns ErrInvalidID for
// non-positive ids and ErrNotFound when no such ship exists.
func (s *ShipService) DeleteByID(ctx context.Context, id int64) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	ship, err := s.findExisting(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, ship); err != nil {
		return fmt.Errorf("failed to delete ship: %w", err)
	}

	s.evictShip(id)
	s.metricsReg.ShipDeleted()
	return nil
}

// List returns one page of ships matching the filter. Page requests are
// clamped to sane bounds before hitting storage; listing never fails on
// an empty match, it returns an empty page.
func (s *ShipService) List(ctx context.Context, filter ShipFilter, page query.PageRequest) (*query.Page[entities.Ship], error) {
	page.Normalize(constants.DefaultPageSize, constants.MaxPageSize, entities.FieldID)

	result, err := s.storage.FindAll(ctx, filter.Spec(), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}
	return result, nil
}

// Count returns the number of ships matching the filter, ignoring
// pagination.
func (s *ShipService) Count(ctx context.Context, filter ShipFilter) (int64, error) {
	n, err := s.storage.Count(ctx, filter.Spec())
	if err != nil {
		return 0, fmt.Errorf("failed to count ships: %w", err)
	}
	return n, nil
}

// findExisting fetches straight from storage, mapping an absent row to
// ErrNotFound. Mutations go through here rather than the cache so they
// always see current state.
func (s *ShipService) findExisting(ctx context.Context, id int64) (*entities.Ship, error) {
	ship, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ship: %w", err)
	}
	if ship == nil {
		return nil, ErrNotFound
	}
	return ship, nil
}

func shipCacheKey(id int64) string {
	return string(constants.CachePrefixShip) + strconv.FormatInt(id, 10)
}

// cachedShip decodes a cache entry. The in-memory backend hands back the
// stored *entities.Ship, the Redis backend a JSON string.
func (s *ShipService) cachedShip(id int64) (*entities.Ship, bool) {
	if s.cache == nil {
		return nil, false
	}

	val, found := s.cache.Get(shipCacheKey(id))
	if !found {
		return nil, false
	}

	switch v := val.(type) {
	case *entities.Ship:
		copied := *v
		return &copied, true
	case string:
		var ship entities.Ship
		if err := json.Unmarshal([]byte(v), &ship); err == nil {
			return &ship, true
		}
	}
	return nil, false
}

func (s *ShipService) cacheShip(ship *entities.Ship) {
	if s.cache == nil {
		return
	}
	copied := *ship
	s.cache.Set(shipCacheKey(ship.ID), &copied, shipCacheTTL)
}

func (s *ShipService) evictShip(id int64) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(shipCacheKey(id))
}
