package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot places a planned meal within a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

func (s Slot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

type MealPlan struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	UserID       string        `gorm:"index;not null;size:36" json:"userId"`
	Name         string        `gorm:"not null" json:"name"`
	StartDate    time.Time     `gorm:"not null" json:"startDate"`
	EndDate      time.Time     `gorm:"not null" json:"endDate"`
	PlannedMeals []PlannedMeal `gorm:"foreignKey:MealPlanID" json:"plannedMeals"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PlannedMeal assigns one meal to one date and slot. Several meals may share
// a date and slot.
type PlannedMeal struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	MealPlanID string    `gorm:"index;not null;size:36" json:"mealPlanId"`
	MealID     string    `gorm:"index;not null;size:36" json:"mealId"`
	Meal       *Meal     `gorm:"foreignKey:MealID" json:"meal,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`
	Slot       Slot      `gorm:"not null" json:"slot"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (p *PlannedMeal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
