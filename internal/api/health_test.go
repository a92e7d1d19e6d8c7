package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stellar-experiment/admiralty/internal/models/entities"
)

func TestHealthCheckHandlerPingsBothConnections(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to unwrap sql.DB: %v", err)
	}
	xdb := sqlx.NewDb(sqlDB, "sqlite3")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthCheck", nil)
	HealthCheckHandler(xdb, gdb, time.Now().Add(-time.Minute))(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp entities.HealthCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Services["postgres"].Status != "ok" {
		t.Errorf("postgres = %+v, want ok", resp.Services["postgres"])
	}
	if resp.Services["gorm"].Status != "ok" {
		t.Errorf("gorm = %+v, want ok", resp.Services["gorm"])
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
}
