package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lewishowell/yacht-provisioning/database"
	"github.com/lewishowell/yacht-provisioning/models"
)

var testDBSeq atomic.Int64

// testDB opens a fresh in-memory sqlite database with the full schema. Each
// call gets its own named database so tests stay isolated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testUser(t *testing.T, db *gorm.DB, googleID string) *models.User {
	t.Helper()

	user := &models.User{
		GoogleID: googleID,
		Email:    googleID + "@example.com",
		Name:     "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createItem(t *testing.T, db *gorm.DB, userID, name string, category models.Category, qty, target float64, unit string) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		UserID:         userID,
		Name:           name,
		Category:       category,
		Quantity:       qty,
		TargetQuantity: target,
		Unit:           unit,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func createMeal(t *testing.T, db *gorm.DB, userID, name string, ingredients ...models.MealIngredient) *models.Meal {
	t.Helper()

	meal := &models.Meal{
		UserID:      userID,
		Name:        name,
		Servings:    2,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}

func createList(t *testing.T, db *gorm.DB, userID, name string, items ...models.ProvisioningListItem) *models.ProvisioningList {
	t.Helper()

	list := &models.ProvisioningList{
		UserID: userID,
		Name:   name,
		Status: models.ListStatusDraft,
		Items:  items,
	}
	require.NoError(t, db.Create(list).Error)
	return list
}
