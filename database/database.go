package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lewishowell/yacht-provisioning/models"
)

// Connect opens a database handle. A postgres:// URL selects the PostgreSQL
// driver; anything else is treated as a sqlite path. An empty URL falls back
// to a local sqlite file so the server runs with zero configuration.
func Connect(databaseURL string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		dialector = postgres.Open(databaseURL)
	case databaseURL == "":
		dialector = sqlite.Open("provisioning.db")
	default:
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Meal{},
		&models.MealIngredient{},
		&models.MealPlan{},
		&models.PlannedMeal{},
		&models.ProvisioningList{},
		&models.ProvisioningListItem{},
	)
}
