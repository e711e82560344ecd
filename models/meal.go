package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Meal struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	UserID      string           `gorm:"index;not null;size:36" json:"userId"`
	Name        string           `gorm:"not null" json:"name"`
	Description *string          `json:"description"`
	Servings    int              `gorm:"not null;default:2" json:"servings"`
	Ingredients []MealIngredient `gorm:"foreignKey:MealID" json:"ingredients"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type MealIngredient struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MealID    string    `gorm:"index;not null;size:36" json:"mealId"`
	Name      string    `gorm:"not null" json:"name"`
	Category  Category  `gorm:"not null" json:"category"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"not null" json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *MealIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
