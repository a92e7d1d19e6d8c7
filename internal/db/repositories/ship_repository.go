package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stellar-experiment/admiralty/internal/metrics"
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

// shipColumns whitelists the fields that may appear in WHERE and ORDER BY
// clauses. Field names double as column names.
var shipColumns = map[string]string{
	entities.FieldID:       "id",
	entities.FieldName:     "name",
	entities.FieldPlanet:   "planet",
	entities.FieldShipType: "ship_type",
	entities.FieldProdDate: "prod_date",
	entities.FieldIsUsed:   "is_used",
	entities.FieldSpeed:    "speed",
	entities.FieldCrewSize: "crew_size",
	entities.FieldRating:   "rating",
}

// ShipRepository persists ships using GORM
type ShipRepository struct {
	db         *gorm.DB
	metricsReg *metrics.MetricsRegistry
}

// NewShipRepository creates a new GORM-based ship repository. metricsReg
// may be nil, in which case no query metrics are recorded.
func NewShipRepository(db *gorm.DB, metricsReg *metrics.MetricsRegistry) *ShipRepository {
	return &ShipRepository{db: db, metricsReg: metricsReg}
}

// observe records one timed query execution; meant to be deferred with
// the operation's start time.
func (r *ShipRepository) observe(queryType string, start time.Time) {
	r.metricsReg.ObserveDBQuery(queryType, time.Since(start).Seconds())
}

// FindByID retrieves a ship by its ID. Absent rows yield (nil, nil).
func (r *ShipRepository) FindByID(ctx context.Context, id int64) (*entities.Ship, error) {
	defer r.observe("ship_find_by_id", time.Now())

	var ship entities.Ship

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ship).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ship: %w", err)
	}

	return &ship, nil
}

// Save inserts the ship when its ID is zero and updates it otherwise.
// The returned ship carries the assigned ID.
func (r *ShipRepository) Save(ctx context.Context, ship *entities.Ship) (*entities.Ship, error) {
	defer r.observe("ship_save", time.Now())

	if err := r.db.WithContext(ctx).Save(ship).Error; err != nil {
		return nil, fmt.Errorf("failed to save ship: %w", err)
	}
	return ship, nil
}

// Delete removes the ship row
func (r *ShipRepository) Delete(ctx context.Context, ship *entities.Ship) error {
	defer r.observe("ship_delete", time.Now())

	if err := r.db.WithContext(ctx).Delete(ship).Error; err != nil {
		return fmt.Errorf("failed to delete ship: %w", err)
	}
	return nil
}

// FindAll returns one page of ships matching the spec together with the
// total match count, so callers can page without a second round trip.
func (r *ShipRepository) FindAll(ctx context.Context, spec *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error) {
	defer r.observe("ship_find_all", time.Now())

	total, err := r.Count(ctx, spec)
	if err != nil {
		return nil, err
	}

	tx, err := r.applySpec(r.db.WithContext(ctx).Model(&entities.Ship{}), spec)
	if err != nil {
		return nil, err
	}

	var ships []entities.Ship
	err = tx.Order(orderClause(page)).
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&ships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	return &query.Page[entities.Ship]{
		Items:     ships,
		PageIndex: page.PageIndex,
		PageSize:  page.PageSize,
		Total:     total,
	}, nil
}

// Count returns the number of ships matching the spec
func (r *ShipRepository) Count(ctx context.Context, spec *query.Spec) (int64, error) {
	defer r.observe("ship_count", time.Now())

	tx, err := r.applySpec(r.db.WithContext(ctx).Model(&entities.Ship{}), spec)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count ships: %w", err)
	}
	return total, nil
}

// applySpec translates spec conditions into WHERE clauses. Fields are
// resolved through the column whitelist, never interpolated raw.
func (r *ShipRepository) applySpec(tx *gorm.DB, spec *query.Spec) (*gorm.DB, error) {
	for _, cond := range spec.Conditions() {
		col, ok := shipColumns[cond.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported filter field %q", cond.Field)
		}

		switch cond.Op {
		case query.OpContains:
			tx = tx.Where(col+" LIKE ?", fmt.Sprintf("%%%v%%", cond.Value))
		case query.OpEquals:
			tx = tx.Where(col+" = ?", cond.Value)
		case query.OpGTE:
			tx = tx.Where(col+" >= ?", cond.Value)
		case query.OpLTE:
			tx = tx.Where(col+" <= ?", cond.Value)
		case query.OpBetween:
			tx = tx.Where(col+" BETWEEN ? AND ?", cond.Value, cond.Upper)
		default:
			return nil, fmt.Errorf("unsupported filter op %q", cond.Op)
		}
	}
	return tx, nil
}

func orderClause(page query.PageRequest) string {
	col, ok := shipColumns[page.SortField]
	if !ok {
		col = "id"
	}
	if page.Descending {
		return col + " DESC"
	}
	return col
}
