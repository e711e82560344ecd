package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	UserID         string     `gorm:"index;not null;size:36" json:"userId"`
	Name           string     `gorm:"not null" json:"name"`
	Category       Category   `gorm:"not null" json:"category"`
	Quantity       float64    `gorm:"not null;default:0" json:"quantity"`
	TargetQuantity float64    `gorm:"not null;default:0" json:"targetQuantity"`
	Unit           string     `gorm:"not null" json:"unit"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	// ReorderThreshold is the legacy low-stock signal. It is persisted and
	// editable but target quantities drive all shortfall computation.
	ReorderThreshold float64   `gorm:"not null;default:0" json:"reorderThreshold"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// BelowTarget reports whether the item has a target and sits under it.
// Untracked items (target 0) are never below target.
func (i *InventoryItem) BelowTarget() bool {
	return i.TargetQuantity > 0 && i.Quantity < i.TargetQuantity
}
