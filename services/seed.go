package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func str(s string) *string { return &s }

// SeedDemoData populates a first-time user with a representative yacht
// inventory and two provisioning lists so the dashboard has something to
// show before onboarding is done.
func (p *Provisioner) SeedDemoData(userID string) error {
	now := time.Now().UTC()

	inventory := []models.InventoryItem{
		{Name: "Olive Oil", Category: models.CategoryFood, Quantity: 3, TargetQuantity: 2, Unit: "bottles", ExpiryDate: date(2026, time.June, 15)},
		{Name: "Fresh Salmon", Category: models.CategoryFood, Quantity: 2, TargetQuantity: 1, Unit: "kg", ExpiryDate: date(2026, time.February, 18)},
		{Name: "Prosecco", Category: models.CategoryBeverages, Quantity: 12, TargetQuantity: 6, Unit: "bottles"},
		{Name: "Still Water", Category: models.CategoryBeverages, Quantity: 24, TargetQuantity: 12, Unit: "bottles"},
		{Name: "All-Purpose Cleaner", Category: models.CategoryCleaning, Quantity: 2, TargetQuantity: 3, Unit: "bottles"},
		{Name: "Deck Soap", Category: models.CategoryCleaning, Quantity: 1, TargetQuantity: 2, Unit: "bottles"},
		{Name: "Hand Towels", Category: models.CategoryToiletries, Quantity: 20, TargetQuantity: 10, Unit: "pcs"},
		{Name: "Sunscreen SPF50", Category: models.CategoryToiletries, Quantity: 4, TargetQuantity: 3, Unit: "bottles"},
		{Name: "Dock Lines", Category: models.CategoryDeckSupplies, Quantity: 6, TargetQuantity: 4, Unit: "pcs"},
		{Name: "Fenders", Category: models.CategoryDeckSupplies, Quantity: 8, TargetQuantity: 4, Unit: "pcs"},
		{Name: "Chef Knife Set", Category: models.CategoryGalley, Quantity: 1, TargetQuantity: 1, Unit: "pcs"},
		{Name: "Cutting Boards", Category: models.CategoryGalley, Quantity: 3, TargetQuantity: 2, Unit: "pcs"},
		{Name: "First Aid Kit", Category: models.CategorySafety, Quantity: 2, TargetQuantity: 1, Unit: "pcs"},
		{Name: "Flares", Category: models.CategorySafety, Quantity: 6, TargetQuantity: 4, Unit: "pcs"},
		{Name: "Lemons", Category: models.CategoryFood, Quantity: 5, TargetQuantity: 10, Unit: "pcs", ExpiryDate: date(2026, time.February, 20)},
		{Name: "Butter", Category: models.CategoryFood, Quantity: 1, TargetQuantity: 2, Unit: "kg", ExpiryDate: date(2026, time.March, 1)},
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		for i := range inventory {
			inventory[i].UserID = userID
			if err := tx.Create(&inventory[i]).Error; err != nil {
				return err
			}
		}

		weekly := models.ProvisioningList{
			UserID:      userID,
			Name:        "Weekly Galley Restock",
			Description: str("Regular weekly provisions for the galley"),
			Status:      models.ListStatusActive,
			Items: []models.ProvisioningListItem{
				{Name: "Fresh Bread", Category: models.CategoryFood, Quantity: 4, Unit: "loaves"},
				{Name: "Eggs", Category: models.CategoryFood, Quantity: 3, Unit: "dozen"},
				{Name: "Milk", Category: models.CategoryBeverages, Quantity: 6, Unit: "L", Purchased: true, PurchasedAt: &now},
				{Name: "Orange Juice", Category: models.CategoryBeverages, Quantity: 4, Unit: "L"},
				{Name: "Paper Towels", Category: models.CategoryCleaning, Quantity: 6, Unit: "rolls", Purchased: true, PurchasedAt: &now},
			},
		}
		if err := tx.Create(&weekly).Error; err != nil {
			return err
		}

		charter := models.ProvisioningList{
			UserID:      userID,
			Name:        "Guest Charter Prep",
			Description: str("Provisions for upcoming 7-day charter with 8 guests"),
			Status:      models.ListStatusDraft,
			Items: []models.ProvisioningListItem{
				{Name: "Champagne", Category: models.CategoryBeverages, Quantity: 6, Unit: "bottles"},
				{Name: "Wagyu Steak", Category: models.CategoryFood, Quantity: 4, Unit: "kg"},
				{Name: "Lobster Tails", Category: models.CategoryFood, Quantity: 16, Unit: "pcs"},
				{Name: "Premium Gin", Category: models.CategoryBeverages, Quantity: 2, Unit: "bottles"},
				{Name: "Guest Amenity Kits", Category: models.CategoryToiletries, Quantity: 8, Unit: "pcs"},
				{Name: "Pool Towels", Category: models.CategoryDeckSupplies, Quantity: 16, Unit: "pcs"},
			},
		}
		return tx.Create(&charter).Error
	})
}

// ClearUserData removes the user's provisioning lists and inventory,
// used to drop the demo data once real records exist.
func (p *Provisioner) ClearUserData(userID string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var listIDs []string
		if err := tx.Model(&models.ProvisioningList{}).
			Where("user_id = ?", userID).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).
				Delete(&models.ProvisioningListItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProvisioningList{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.InventoryItem{}).Error
	})
}
