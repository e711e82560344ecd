package services

import (
	"time"

	"github.com/lewishowell/yacht-provisioning/models"
)

// DashboardStats is the read-only rollup behind the dashboard. It is
// recomputed on every request.
type DashboardStats struct {
	TotalItems    int                       `json:"totalItems"`
	InventoryPct  int                       `json:"inventoryPct"`
	LowStockCount int                       `json:"lowStockCount"`
	ItemsNeeded   float64                   `json:"itemsNeeded"`
	LowStockItems []models.InventoryItem    `json:"lowStockItems"`
	ExpiringSoon  []models.InventoryItem    `json:"expiringSoon"`
	ActiveLists   int                       `json:"activeLists"`
	MealsStocked  int                       `json:"mealsStocked"`
	TotalMeals    int                       `json:"totalMeals"`
	RecentLists   []models.ProvisioningList `json:"recentLists"`
}

const expiryLookahead = 7 * 24 * time.Hour

// LowStockItems returns the user's below-target inventory.
func (p *Provisioner) LowStockItems(userID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := p.db.Where("user_id = ? AND target_quantity > 0", userID).Find(&items).Error; err != nil {
		return nil, err
	}

	low := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.BelowTarget() {
			low = append(low, item)
		}
	}
	return low, nil
}

func (p *Provisioner) Dashboard(userID string) (*DashboardStats, error) {
	var allItems []models.InventoryItem
	if err := p.db.Where("user_id = ?", userID).Find(&allItems).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	horizon := now.Add(expiryLookahead)
	var expiring []models.InventoryItem
	if err := p.db.Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
		userID, now, horizon).
		Order("expiry_date ASC").Limit(10).Find(&expiring).Error; err != nil {
		return nil, err
	}

	var activeLists int64
	if err := p.db.Model(&models.ProvisioningList{}).
		Where("user_id = ? AND status = ?", userID, models.ListStatusActive).
		Count(&activeLists).Error; err != nil {
		return nil, err
	}

	var recentLists []models.ProvisioningList
	if err := p.db.Preload("Items").Where("user_id = ?", userID).
		Order("updated_at DESC").Limit(5).Find(&recentLists).Error; err != nil {
		return nil, err
	}

	var meals []models.Meal
	if err := p.db.Preload("Ingredients").Where("user_id = ?", userID).Find(&meals).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalItems:   len(allItems),
		ExpiringSoon: expiring,
		ActiveLists:  int(activeLists),
		TotalMeals:   len(meals),
		RecentLists:  recentLists,
	}

	// Inventory status: share of targeted items at or above target. No
	// targets at all counts as fully stocked.
	targeted, stocked := 0, 0
	stats.LowStockItems = make([]models.InventoryItem, 0)
	var needed float64
	for _, item := range allItems {
		if item.TargetQuantity <= 0 {
			continue
		}
		targeted++
		if item.BelowTarget() {
			stats.LowStockItems = append(stats.LowStockItems, item)
			needed += Shortfall(item.TargetQuantity, item.Quantity)
		} else {
			stocked++
		}
	}
	stats.LowStockCount = len(stats.LowStockItems)
	stats.ItemsNeeded = Round2(needed)
	if targeted > 0 {
		stats.InventoryPct = int(float64(stocked)/float64(targeted)*100 + 0.5)
	} else {
		stats.InventoryPct = 100
	}

	// Meals stocked: every ingredient covered by on-hand inventory, matched
	// by exact identity in this view. Meals without ingredients don't count.
	onHand := make(map[Identity]float64, len(allItems))
	for _, item := range allItems {
		onHand[InventoryIdentity(item)] += item.Quantity
	}
	for _, meal := range meals {
		if len(meal.Ingredients) == 0 {
			continue
		}
		fullyStocked := true
		for _, ing := range meal.Ingredients {
			if onHand[IngredientIdentity(ing)] < ing.Quantity {
				fullyStocked = false
				break
			}
		}
		if fullyStocked {
			stats.MealsStocked++
		}
	}

	return stats, nil
}
