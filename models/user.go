package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	GoogleID          string    `gorm:"uniqueIndex;not null" json:"-"`
	Email             string    `gorm:"not null" json:"email"`
	Name              string    `gorm:"not null" json:"name"`
	AvatarURL         *string   `json:"avatarUrl"`
	HasSeenOnboarding bool      `gorm:"not null;default:false" json:"hasSeenOnboarding"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
