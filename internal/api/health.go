package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"stellar-experiment/admiralty/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck. Both database handles are
// pinged: the sqlx pool behind the stats reads and the GORM handle behind
// the ship repository.
func HealthCheckHandler(db *sqlx.DB, orm *gorm.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		// Check postgres
		pgstatus := "ok"
		pgDetails := "Postgres Connected"
		if err := db.Ping(); err != nil {
			pgstatus = "down"
			pgDetails = err.Error()
		}
		services["postgres"] = entities.ServiceStatus{
			Status:  pgstatus,
			Details: pgDetails,
		}

		// Check the ORM connection
		ormStatus := "ok"
		ormDetails := "GORM Connected"
		if sqlDB, err := orm.DB(); err != nil {
			ormStatus = "down"
			ormDetails = err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			ormStatus = "down"
			ormDetails = err.Error()
		}
		services["gorm"] = entities.ServiceStatus{
			Status:  ormStatus,
			Details: ormDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
