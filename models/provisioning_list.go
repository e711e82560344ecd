package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListStatus is user-driven; no transition rules are enforced.
type ListStatus string

const (
	ListStatusDraft     ListStatus = "DRAFT"
	ListStatusActive    ListStatus = "ACTIVE"
	ListStatusCompleted ListStatus = "COMPLETED"
	ListStatusArchived  ListStatus = "ARCHIVED"
)

func (s ListStatus) Valid() bool {
	switch s {
	case ListStatusDraft, ListStatusActive, ListStatusCompleted, ListStatusArchived:
		return true
	}
	return false
}

// ItemType records how a line item landed on a list: derived from an
// inventory shortfall (restock) or added for a shopping trip (trip), which
// covers both manual entries and meal-derived needs.
type ItemType string

const (
	ItemTypeRestock ItemType = "restock"
	ItemTypeTrip    ItemType = "trip"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeRestock || t == ItemTypeTrip
}

type ProvisioningList struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                 `gorm:"index;not null;size:36" json:"userId"`
	Name        string                 `gorm:"not null" json:"name"`
	Description *string                `json:"description"`
	Status      ListStatus             `gorm:"not null;default:DRAFT" json:"status"`
	Items       []ProvisioningListItem `gorm:"foreignKey:ListID" json:"items"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func (l *ProvisioningList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = ListStatusDraft
	}
	return nil
}

type ProvisioningListItem struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ListID      string     `gorm:"index;not null;size:36" json:"listId"`
	Name        string     `gorm:"not null" json:"name"`
	Category    Category   `gorm:"not null" json:"category"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	Unit        string     `gorm:"not null" json:"unit"`
	ItemType    ItemType   `gorm:"not null;default:trip" json:"itemType"`
	Purchased   bool       `gorm:"not null;default:false" json:"purchased"`
	PurchasedAt *time.Time `json:"purchasedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (i *ProvisioningListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.ItemType == "" {
		i.ItemType = ItemTypeTrip
	}
	return nil
}
