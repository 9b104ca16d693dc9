package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}

// OpenInMemory opens a private, migrated SQLite database that lives as long
// as the returned handle. Every call gets its own database.
func OpenInMemory() (*gorm.DB, error) {
	cfg := config.Default()
	cfg.GinMode = "release"
	cfg.DBDriver = "sqlite"
	cfg.DBDSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
