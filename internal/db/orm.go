package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stellar-experiment/admiralty/internal/logging"
	"stellar-experiment/admiralty/internal/models/entities"
)

var PgDB *gorm.DB

// InitPostgresORM opens the GORM handle used by the ship repository.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates or updates the ships table to match the entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Ship{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
