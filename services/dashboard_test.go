package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewishowell/yacht-provisioning/models"
)

func TestLowStockItems(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "low-stock")
	p := NewProvisioner(db, "")

	createItem(t, db, user.ID, "Lemons", models.CategoryFood, 5, 10, "pcs")
	createItem(t, db, user.ID, "Olive Oil", models.CategoryFood, 3, 2, "bottles")
	createItem(t, db, user.ID, "Sea Salt", models.CategoryFood, 0, 0, "kg")

	low, err := p.LowStockItems(user.ID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Lemons", low[0].Name)
}

func TestDashboardRollups(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "dashboard")
	p := NewProvisioner(db, "")

	createItem(t, db, user.ID, "Lemons", models.CategoryFood, 5, 10, "pcs")
	createItem(t, db, user.ID, "Butter", models.CategoryFood, 1, 2, "kg")
	createItem(t, db, user.ID, "Olive Oil", models.CategoryFood, 3, 2, "bottles")
	createItem(t, db, user.ID, "Sea Salt", models.CategoryFood, 1, 0, "kg")

	expiring := createItem(t, db, user.ID, "Milk", models.CategoryBeverages, 2, 0, "L")
	soon := time.Now().UTC().Add(48 * time.Hour)
	require.NoError(t, db.Model(expiring).Update("expiry_date", soon).Error)
	farOut := createItem(t, db, user.ID, "Canned Beans", models.CategoryFood, 10, 0, "cans")
	require.NoError(t, db.Model(farOut).Update("expiry_date", time.Now().UTC().Add(90*24*time.Hour)).Error)

	createList(t, db, user.ID, "Active Run")
	require.NoError(t, db.Model(&models.ProvisioningList{}).
		Where("user_id = ?", user.ID).Update("status", models.ListStatusActive).Error)
	createList(t, db, user.ID, "Draft Run")

	createMeal(t, db, user.ID, "Lemonade",
		ing("Lemons", models.CategoryFood, 3, "pcs"),
	)
	createMeal(t, db, user.ID, "Feast",
		ing("Lemons", models.CategoryFood, 3, "pcs"),
		ing("Caviar", models.CategoryFood, 1, "kg"),
	)
	createMeal(t, db, user.ID, "Unplanned")

	stats, err := p.Dashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalItems)
	assert.Equal(t, 2, stats.LowStockCount)
	// Shortfalls: Lemons 5 + Butter 1.
	assert.Equal(t, 6.0, stats.ItemsNeeded)
	// One of three targeted items is at or above target.
	assert.Equal(t, 33, stats.InventoryPct)

	require.Len(t, stats.ExpiringSoon, 1)
	assert.Equal(t, "Milk", stats.ExpiringSoon[0].Name)

	assert.Equal(t, 1, stats.ActiveLists)
	assert.Len(t, stats.RecentLists, 2)

	assert.Equal(t, 3, stats.TotalMeals)
	// Lemonade is covered by on-hand lemons; Feast is missing caviar and
	// ingredient-less meals never count.
	assert.Equal(t, 1, stats.MealsStocked)
}

func TestDashboardNoTargetsIsFullyStocked(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "dashboard-empty")
	p := NewProvisioner(db, "")

	createItem(t, db, user.ID, "Sea Salt", models.CategoryFood, 1, 0, "kg")

	stats, err := p.Dashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.InventoryPct)
	assert.Zero(t, stats.LowStockCount)
	assert.Zero(t, stats.ItemsNeeded)
}

func TestDashboardIsolatedPerUser(t *testing.T) {
	db := testDB(t)
	alice := testUser(t, db, "dash-alice")
	bob := testUser(t, db, "dash-bob")
	p := NewProvisioner(db, "")

	createItem(t, db, bob.ID, "Butter", models.CategoryFood, 0, 2, "kg")

	stats, err := p.Dashboard(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalItems)
	assert.Zero(t, stats.LowStockCount)
}
