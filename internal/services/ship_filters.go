package services

import (
	"time"

	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

// ShipFilter carries the optional list/count criteria. A nil field means
// "no constraint on this dimension"; populated fields are combined with
// AND. Zero values are legitimate criteria, which is why everything is a
// pointer.
type ShipFilter struct {
	Name        *string
	Planet      *string
	ShipType    *entities.ShipType
	After       *time.Time
	Before      *time.Time
	IsUsed      *bool
	MinSpeed    *float64
	MaxSpeed    *float64
	MinCrewSize *int
	MaxCrewSize *int
	MinRating   *float64
	MaxRating   *float64
}

// Spec assembles the filter into a conjunction of conditions. An empty
// filter yields an empty spec, which matches every ship.
func (f ShipFilter) Spec() *query.Spec {
	return query.NewSpec().
		Add(FilterByName(f.Name)).
		Add(FilterByPlanet(f.Planet)).
		Add(FilterByShipType(f.ShipType)).
		Add(FilterByProdDate(f.After, f.Before)).
		Add(FilterByUsage(f.IsUsed)).
		Add(FilterBySpeed(f.MinSpeed, f.MaxSpeed)).
		Add(FilterByCrewSize(f.MinCrewSize, f.MaxCrewSize)).
		Add(FilterByRating(f.MinRating, f.MaxRating))
}

// FilterByName matches ships whose name contains the given substring,
// case-sensitively. Nil means no name constraint.
func FilterByName(name *string) *query.Condition {
	if name == nil {
		return nil
	}
	return query.Contains(entities.FieldName, *name)
}

// FilterByPlanet matches ships whose planet contains the given substring,
// case-sensitively. Nil means no planet constraint.
func FilterByPlanet(planet *string) *query.Condition {
	if planet == nil {
		return nil
	}
	return query.Contains(entities.FieldPlanet, *planet)
}

// FilterByShipType matches ships of exactly the given type.
func FilterByShipType(t *entities.ShipType) *query.Condition {
	if t == nil {
		return nil
	}
	return query.Equals(entities.FieldShipType, *t)
}

// FilterByProdDate bounds the production date. Both bounds are inclusive;
// either may be nil.
func FilterByProdDate(after, before *time.Time) *query.Condition {
	switch {
	case after == nil && before == nil:
		return nil
	case after == nil:
		return query.LTE(entities.FieldProdDate, *before)
	case before == nil:
		return query.GTE(entities.FieldProdDate, *after)
	default:
		return query.Between(entities.FieldProdDate, *after, *before)
	}
}

// FilterByUsage matches ships by their used flag. Nil matches both new
// and used ships.
func FilterByUsage(isUsed *bool) *query.Condition {
	if isUsed == nil {
		return nil
	}
	return query.Equals(entities.FieldIsUsed, *isUsed)
}

// FilterBySpeed bounds the speed, inclusively on both ends.
func FilterBySpeed(min, max *float64) *query.Condition {
	switch {
	case min == nil && max == nil:
		return nil
	case min == nil:
		return query.LTE(entities.FieldSpeed, *max)
	case max == nil:
		return query.GTE(entities.FieldSpeed, *min)
	default:
		return query.Between(entities.FieldSpeed, *min, *max)
	}
}

// FilterByCrewSize bounds the crew size, inclusively on both ends.
func FilterByCrewSize(min, max *int) *query.Condition {
	switch {
	case min == nil && max == nil:
		return nil
	case min == nil:
		return query.LTE(entities.FieldCrewSize, *max)
	case max == nil:
		return query.GTE(entities.FieldCrewSize, *min)
	default:
		return query.Between(entities.FieldCrewSize, *min, *max)
	}
}

// FilterByRating bounds the computed rating, inclusively on both ends.
func FilterByRating(min, max *float64) *query.Condition {
	switch {
	case min == nil && max == nil:
		return nil
	case min == nil:
		return query.LTE(entities.FieldRating, *max)
	case max == nil:
		return query.GTE(entities.FieldRating, *min)
	default:
		return query.Between(entities.FieldRating, *min, *max)
	}
}
