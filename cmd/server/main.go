package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stellar-experiment/admiralty/internal/config"
	"stellar-experiment/admiralty/internal/db"
	"stellar-experiment/admiralty/internal/logging"
	"stellar-experiment/admiralty/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Admiralty starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	cfg, err := config.NewConfig()
	if err != nil {
		logging.Fatal("Failed to load config", "error", err.Error())
	}

	dsn := cfg.Postgres.DSN()

	// Connect to DB with sqlx
	if err := db.InitPostgres(dsn); err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	gormDB, err := db.InitPostgresORM(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}

	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err.Error())
	}
	logging.Info("Schema migrated")

	upSince := time.Now()

	// Initialize router with Chi
	// Note: metricsReg is created in RegisterRoutes and applied as global middleware
	router, err := routes.RegisterRoutes(cfg, upSince)
	if err != nil {
		logging.Fatal("Failed to initialize routes", "error", err.Error())
	}

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	logging.Info("Server starting",
		"addr", addr,
		"environment", appEnv,
	)

	log.Fatal(http.ListenAndServe(addr, mux))
}
