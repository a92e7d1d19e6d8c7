package services

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stellar-experiment/admiralty/internal/common"
	"stellar-experiment/admiralty/internal/models/entities"
)

func setupStatsDB(t *testing.T, fleet []entities.Ship) (*sqlx.DB, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to unwrap sql.DB: %v", err)
	}
	// One shared connection, otherwise each pooled connection gets its
	// own empty :memory: database under concurrent queries.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&entities.Ship{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	for i := range fleet {
		if err := gdb.Create(&fleet[i]).Error; err != nil {
			t.Fatalf("Failed to seed ship: %v", err)
		}
	}

	return sqlx.NewDb(sqlDB, "sqlite3"), gdb
}

func statsFleet() []entities.Ship {
	date := func(year int) time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return []entities.Ship{
		{Name: "Dauntless", Planet: "Mars", ShipType: entities.ShipTypeMilitary, ProdDate: date(3000), IsUsed: false, Speed: 0.99, CrewSize: 400, Rating: 3.96},
		{Name: "Starfall", Planet: "Earth", ShipType: entities.ShipTypeTransport, ProdDate: date(2900), IsUsed: true, Speed: 0.5, CrewSize: 1200, Rating: 0.17},
		{Name: "dusty hauler", Planet: "Venus", ShipType: entities.ShipTypeMerchant, ProdDate: date(3010), IsUsed: true, Speed: 0.2, CrewSize: 10, Rating: 0.8},
		{Name: "Starlight", Planet: "Mars", ShipType: entities.ShipTypeTransport, ProdDate: date(3019), IsUsed: false, Speed: 0.75, CrewSize: 60, Rating: 60.0},
	}
}

func TestFleetStatsOverview(t *testing.T) {
	xdb, _ := setupStatsDB(t, statsFleet())
	svc := NewFleetStatsService(xdb, nil, nil)

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if stats.TotalShips != 4 || stats.UsedShips != 2 || stats.NewShips != 2 {
		t.Errorf("counts = %d/%d/%d, want 4/2/2", stats.TotalShips, stats.UsedShips, stats.NewShips)
	}
	if stats.ShipsByType["TRANSPORT"] != 2 || stats.ShipsByType["MILITARY"] != 1 || stats.ShipsByType["MERCHANT"] != 1 {
		t.Errorf("byType = %v", stats.ShipsByType)
	}
	if stats.AverageSpeed != 0.61 {
		t.Errorf("avg speed = %v, want 0.61", stats.AverageSpeed)
	}
	if stats.AverageRating != 16.23 {
		t.Errorf("avg rating = %v, want 16.23", stats.AverageRating)
	}
	if stats.MinCrewSize != 10 || stats.MaxCrewSize != 1200 || stats.TotalCrew != 1670 {
		t.Errorf("crew span = %d/%d/%d, want 10/1200/1670", stats.MinCrewSize, stats.MaxCrewSize, stats.TotalCrew)
	}
}

func TestFleetStatsOverviewEmptyRegister(t *testing.T) {
	xdb, _ := setupStatsDB(t, nil)
	svc := NewFleetStatsService(xdb, nil, nil)

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if stats.TotalShips != 0 || stats.AverageSpeed != 0 || stats.MaxCrewSize != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.ShipsByType) != 0 {
		t.Errorf("byType = %v, want empty", stats.ShipsByType)
	}
}

func TestFleetStatsOverviewServesCachedWindow(t *testing.T) {
	xdb, gdb := setupStatsDB(t, statsFleet())
	svc := NewFleetStatsService(xdb, common.NewCacheService(60, 600), nil)

	first, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	// Drop a ship behind the cache's back; the cached window should
	// still serve the old totals.
	if err := gdb.Exec("DELETE FROM ships WHERE name = ?", "Starlight").Error; err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	second, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if second.TotalShips != first.TotalShips {
		t.Errorf("total = %d, want cached %d", second.TotalShips, first.TotalShips)
	}
}
