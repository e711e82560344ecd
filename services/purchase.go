package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/config"
	"github.com/lewishowell/yacht-provisioning/models"
)

// Purchase marks a list item purchased and folds its quantity back into the
// inventory ledger as one transaction: an exact-identity inventory row is
// incremented in place, otherwise a fresh untracked row is created. An item
// that is missing, on someone else's list, or already purchased is rejected
// without mutation.
func (p *Provisioner) Purchase(userID, listID, itemID string) (*models.ProvisioningListItem, error) {
	var purchased *models.ProvisioningListItem

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var list models.ProvisioningList
		err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var item models.ProvisioningListItem
		err = tx.Where("id = ? AND list_id = ?", itemID, listID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if item.Purchased {
			return ErrNotFound
		}

		now := time.Now().UTC()
		item.Purchased = true
		item.PurchasedAt = &now
		if err := tx.Model(&item).Updates(map[string]interface{}{
			"purchased":    true,
			"purchased_at": now,
		}).Error; err != nil {
			return err
		}

		if p.syncScope == config.SyncScopeRestock && item.ItemType != models.ItemTypeRestock {
			purchased = &item
			return nil
		}

		var existing models.InventoryItem
		err = tx.Where("user_id = ? AND name = ? AND category = ? AND unit = ?",
			userID, item.Name, item.Category, item.Unit).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := models.InventoryItem{
				UserID:   userID,
				Name:     item.Name,
				Category: item.Category,
				Quantity: item.Quantity,
				Unit:     item.Unit,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		default:
			return err
		}

		purchased = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchased, nil
}
