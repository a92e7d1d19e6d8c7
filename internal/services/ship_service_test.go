package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

type mockShipStorage struct {
	findByIDFn func(ctx context.Context, id int64) (*entities.Ship, error)
	saveFn     func(ctx context.Context, ship *entities.Ship) (*entities.Ship, error)
	deleteFn   func(ctx context.Context, ship *entities.Ship) error
	findAllFn  func(ctx context.Context, spec *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error)
	countFn    func(ctx context.Context, spec *query.Spec) (int64, error)

	findByIDCalls int
	saveCalls     int
}

func (m *mockShipStorage) FindByID(ctx context.Context, id int64) (*entities.Ship, error) {
	m.findByIDCalls++
	return m.findByIDFn(ctx, id)
}

func (m *mockShipStorage) Save(ctx context.Context, ship *entities.Ship) (*entities.Ship, error) {
	m.saveCalls++
	return m.saveFn(ctx, ship)
}

func (m *mockShipStorage) Delete(ctx context.Context, ship *entities.Ship) error {
	return m.deleteFn(ctx, ship)
}

func (m *mockShipStorage) FindAll(ctx context.Context, spec *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error) {
	return m.findAllFn(ctx, spec, page)
}

func (m *mockShipStorage) Count(ctx context.Context, spec *query.Spec) (int64, error) {
	return m.countFn(ctx, spec)
}

func validFields() ShipFields {
	prodDate := time.Date(3000, time.April, 2, 0, 0, 0, 0, time.UTC)
	return ShipFields{
		Name:     ptr("Dauntless"),
		Planet:   ptr("Mars"),
		ShipType: ptr(entities.ShipTypeMilitary),
		ProdDate: &prodDate,
		Speed:    ptr(0.99),
		CrewSize: ptr(400),
	}
}

func seedShip() *entities.Ship {
	return &entities.Ship{
		ID:       7,
		Name:     "Dauntless",
		Planet:   "Mars",
		ShipType: entities.ShipTypeMilitary,
		ProdDate: time.Date(3000, time.April, 2, 0, 0, 0, 0, time.UTC),
		IsUsed:   false,
		Speed:    0.99,
		CrewSize: 400,
		Rating:   3.96,
	}
}

func TestCreateComputesRatingAndDefaultsUsage(t *testing.T) {
	storage := &mockShipStorage{
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			if ship.ID != 0 {
				t.Errorf("expected unsaved ship, got id %d", ship.ID)
			}
			saved := *ship
			saved.ID = 1
			return &saved, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	ship, err := svc.Create(context.Background(), validFields())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ship.ID != 1 {
		t.Errorf("id = %d, want 1", ship.ID)
	}
	if ship.IsUsed {
		t.Error("isUsed should default to false")
	}
	if ship.Rating != 3.96 {
		t.Errorf("rating = %v, want 3.96", ship.Rating)
	}
}

func TestCreateRoundsSpeedBeforeRating(t *testing.T) {
	storage := &mockShipStorage{
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			return ship, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	fields := validFields()
	fields.Speed = ptr(0.985)

	ship, err := svc.Create(context.Background(), fields)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ship.Speed != 0.99 {
		t.Errorf("speed = %v, want 0.99 after rounding", ship.Speed)
	}
	if ship.Rating != ComputeRating(3000, 0.99, false) {
		t.Errorf("rating = %v, want it derived from the rounded speed", ship.Rating)
	}
}

func TestCreateRejectsInvalidFieldBeforeSaving(t *testing.T) {
	storage := &mockShipStorage{
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			return ship, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	fields := validFields()
	fields.Planet = nil

	_, err := svc.Create(context.Background(), fields)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != entities.FieldPlanet {
		t.Errorf("error = %v, want FieldError on planet", err)
	}
	if storage.saveCalls != 0 {
		t.Error("storage must not be touched when validation fails")
	}
}

func TestGetByIDRejectsNonPositiveID(t *testing.T) {
	svc := NewShipService(&mockShipStorage{}, nil, nil)

	for _, id := range []int64{0, -3} {
		if _, err := svc.GetByID(context.Background(), id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("GetByID(%d) error = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestGetByIDMapsAbsentRowToNotFound(t *testing.T) {
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			return nil, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	if _, err := svc.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetByIDServesSecondReadFromCache(t *testing.T) {
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			return seedShip(), nil
		},
	}
	svc := NewShipService(storage, common.NewCacheService(60, 600), nil)

	for i := 0; i < 2; i++ {
		ship, err := svc.GetByID(context.Background(), 7)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if ship.Name != "Dauntless" {
			t.Errorf("name = %q", ship.Name)
		}
	}

	if storage.findByIDCalls != 1 {
		t.Errorf("storage reads = %d, want 1 (second read cached)", storage.findByIDCalls)
	}
}

func TestUpdateRecomputesRatingFromPartialPatch(t *testing.T) {
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			return seedShip(), nil
		},
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			return ship, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	ship, err := svc.Update(context.Background(), 7, ShipFields{IsUsed: ptr(true)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !ship.IsUsed {
		t.Error("isUsed not applied")
	}
	if ship.Name != "Dauntless" || ship.CrewSize != 400 {
		t.Error("untouched fields must survive a partial update")
	}
	if ship.Rating != 1.98 {
		t.Errorf("rating = %v, want 1.98 after usage flip", ship.Rating)
	}
}

func TestUpdateWithIdenticalFieldsKeepsRating(t *testing.T) {
	current := seedShip()
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			copied := *current
			return &copied, nil
		},
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			return ship, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	ship, err := svc.Update(context.Background(), 7, ShipFields{
		Name:     &current.Name,
		Planet:   &current.Planet,
		ShipType: &current.ShipType,
		ProdDate: &current.ProdDate,
		IsUsed:   &current.IsUsed,
		Speed:    &current.Speed,
		CrewSize: &current.CrewSize,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ship.Rating != current.Rating {
		t.Errorf("rating = %v, want unchanged %v", ship.Rating, current.Rating)
	}
}

func TestUpdateRejectsInvalidPatchedField(t *testing.T) {
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			return seedShip(), nil
		},
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			return ship, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	_, err := svc.Update(context.Background(), 7, ShipFields{Speed: ptr(1.5)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if storage.saveCalls != 0 {
		t.Error("invalid patch must not reach storage")
	}
}

func TestUpdateEvictsCachedShip(t *testing.T) {
	current := seedShip()
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			copied := *current
			return &copied, nil
		},
		saveFn: func(_ context.Context, ship *entities.Ship) (*entities.Ship, error) {
			current = ship
			return ship, nil
		},
	}
	svc := NewShipService(storage, common.NewCacheService(60, 600), nil)

	if _, err := svc.GetByID(context.Background(), 7); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if _, err := svc.Update(context.Background(), 7, ShipFields{Name: ptr("Relentless")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	ship, err := svc.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if ship.Name != "Relentless" {
		t.Errorf("name = %q, stale cache entry survived the update", ship.Name)
	}
}

func TestDeleteByID(t *testing.T) {
	deleted := false
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, id int64) (*entities.Ship, error) {
			if deleted {
				return nil, nil
			}
			return seedShip(), nil
		},
		deleteFn: func(_ context.Context, _ *entities.Ship) error {
			deleted = true
			return nil
		},
	}
	svc := NewShipService(storage, common.NewCacheService(60, 600), nil)

	if _, err := svc.GetByID(context.Background(), 7); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if err := svc.DeleteByID(context.Background(), 7); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}

	if _, err := svc.GetByID(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound after delete (cache must not resurrect)", err)
	}

	if err := svc.DeleteByID(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestListNormalizesPageRequest(t *testing.T) {
	var got query.PageRequest
	storage := &mockShipStorage{
		findAllFn: func(_ context.Context, _ *query.Spec, page query.PageRequest) (*query.Page[entities.Ship], error) {
			got = page
			return &query.Page[entities.Ship]{Items: []entities.Ship{}, PageIndex: page.PageIndex, PageSize: page.PageSize}, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	if _, err := svc.List(context.Background(), ShipFilter{}, query.PageRequest{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if got.PageIndex != 0 || got.PageSize != 3 || got.SortField != entities.FieldID {
		t.Errorf("normalized page = %+v, want index 0, size 3, sort by id", got)
	}
}

func TestCountAssemblesFilterSpec(t *testing.T) {
	var got *query.Spec
	storage := &mockShipStorage{
		countFn: func(_ context.Context, spec *query.Spec) (int64, error) {
			got = spec
			return 5, nil
		},
	}
	svc := NewShipService(storage, nil, nil)

	n, err := svc.Count(context.Background(), ShipFilter{
		Name:     ptr("less"),
		MinSpeed: ptr(0.3),
		MaxSpeed: ptr(0.9),
	})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
	if len(got.Conditions()) != 2 {
		t.Errorf("spec carries %d conditions, want 2 (name + speed range)", len(got.Conditions()))
	}
}

func TestStorageFailureIsWrapped(t *testing.T) {
	broken := errors.New("connection reset")
	storage := &mockShipStorage{
		findByIDFn: func(_ context.Context, _ int64) (*entities.Ship, error) {
			return nil, broken
		},
	}
	svc := NewShipService(storage, nil, nil)

	_, err := svc.GetByID(context.Background(), 7)
	if !errors.Is(err, broken) {
		t.Errorf("error = %v, want wrapped storage failure", err)
	}
	if IsValidationError(err) {
		t.Error("storage failures must not classify as validation errors")
	}
}
