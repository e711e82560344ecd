package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewishowell/yacht-provisioning/models"
)

func TestSeedDemoData(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "seed")
	p := NewProvisioner(db, "")

	require.NoError(t, p.SeedDemoData(user.ID))

	var itemCount int64
	require.NoError(t, db.Model(&models.InventoryItem{}).
		Where("user_id = ?", user.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(16), itemCount)

	var lists []models.ProvisioningList
	require.NoError(t, db.Preload("Items").Where("user_id = ?", user.ID).Find(&lists).Error)
	require.Len(t, lists, 2)

	// The demo data includes live shortfalls so the generator has work to do.
	low, err := p.LowStockItems(user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, low)
}

func TestClearUserData(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db, "seed-clear")
	other := testUser(t, db, "seed-keep")
	p := NewProvisioner(db, "")

	require.NoError(t, p.SeedDemoData(user.ID))
	createItem(t, db, other.ID, "Butter", models.CategoryFood, 1, 2, "kg")

	require.NoError(t, p.ClearUserData(user.ID))

	var itemCount, listCount, lineCount int64
	require.NoError(t, db.Model(&models.InventoryItem{}).
		Where("user_id = ?", user.ID).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.ProvisioningList{}).
		Where("user_id = ?", user.ID).Count(&listCount).Error)
	require.NoError(t, db.Model(&models.ProvisioningListItem{}).Count(&lineCount).Error)
	assert.Zero(t, itemCount)
	assert.Zero(t, listCount)
	assert.Zero(t, lineCount)

	// The other user's inventory survives.
	var kept int64
	require.NoError(t, db.Model(&models.InventoryItem{}).
		Where("user_id = ?", other.ID).Count(&kept).Error)
	assert.Equal(t, int64(1), kept)
}
