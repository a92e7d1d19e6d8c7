package repositories

import (
	"context"
	"sort"
	"sync"

	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

// MemoryShipRepository keeps ships in a mutex-guarded map. It evaluates
// specs in process and backs tests and local development without a
// database.
type MemoryShipRepository struct {
	mu     sync.RWMutex
	ships  map[int64]entities.Ship
	nextID int64
}

func NewMemoryShipRepository() *MemoryShipRepository {
	return &MemoryShipRepository{ships: make(map[int64]entities.Ship)}
}

func (r *MemoryShipRepository) FindByID(_ context.Context, id int64) (*entities.Ship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ship, ok := r.ships[id]
	if !ok {
		return nil, nil
	}
	return &ship, nil
}

func (r *MemoryShipRepository) Save(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ship.ID == 0 {
		r.nextID++
		ship.ID = r.nextID
	}
	r.ships[ship.ID] = *ship

	saved := *ship
	return &saved, nil
}

func (r *MemoryShipRepository) Delete(_ context.Context, ship *entities.Ship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.ships, ship.ID)
	return nil
}

func (r *MemoryShipRepository) FindAll(_ context.Context, spec *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error) {
	r.mu.RLock()
	matches := r.matching(spec)
	r.mu.RUnlock()

	sortShips(matches, page)

	start := page.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + page.PageSize
	if end > len(matches) {
		end = len(matches)
	}

	return &query.Page[entities.Ship]{
		Items:     matches[start:end],
		PageIndex: page.PageIndex,
		PageSize:  page.PageSize,
		Total:     int64(len(matches)),
	}, nil
}

func (r *MemoryShipRepository) Count(_ context.Context, spec *query.Spec) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(spec))), nil
}

// matching must be called with the lock held. The returned slice holds
// copies, safe to use after the lock is released.
func (r *MemoryShipRepository) matching(spec *query.Spec) []entities.Ship {
	matches := make([]entities.Ship, 0, len(r.ships))
	for _, ship := range r.ships {
		if spec.Matches(shipFieldValue(ship)) {
			matches = append(matches, ship)
		}
	}
	return matches
}

func shipFieldValue(s entities.Ship) func(field string) any {
	return func(field string) any {
		switch field {
		case entities.FieldID:
			return s.ID
		case entities.FieldName:
			return s.Name
		case entities.FieldPlanet:
			return s.Planet
		case entities.FieldShipType:
			return s.ShipType
		case entities.FieldProdDate:
			return s.ProdDate
		case entities.FieldIsUsed:
			return s.IsUsed
		case entities.FieldSpeed:
			return s.Speed
		case entities.FieldCrewSize:
			return s.CrewSize
		case entities.FieldRating:
			return s.Rating
		}
		return nil
	}
}

// sortShips orders by the requested field with ID as tiebreaker, mirroring
// the deterministic ordering a primary-keyed table gives.
func sortShips(ships []entities.Ship, page query.PageRequest) {
	less := func(a, b entities.Ship) bool {
		switch page.SortField {
		case entities.FieldName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case entities.FieldPlanet:
			if a.Planet != b.Planet {
				return a.Planet < b.Planet
			}
		case entities.FieldProdDate:
			if !a.ProdDate.Equal(b.ProdDate) {
				return a.ProdDate.Before(b.ProdDate)
			}
		case entities.FieldSpeed:
			if a.Speed != b.Speed {
				return a.Speed < b.Speed
			}
		case entities.FieldCrewSize:
			if a.CrewSize != b.CrewSize {
				return a.CrewSize < b.CrewSize
			}
		case entities.FieldRating:
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
		}
		return a.ID < b.ID
	}

	sort.Slice(ships, func(i, j int) bool {
		if page.Descending {
			return less(ships[j], ships[i])
		}
		return less(ships[i], ships[j])
	})
}
