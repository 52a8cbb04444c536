package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"column:username;size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"column:email;size:255;not null" json:"email"`
	IsStaff   bool      `gorm:"column:is_staff;not null;default:false" json:"is_staff"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Actor is the verified identity descriptor the auth boundary hands to the
// engines. Engines never see tokens or transport details.
type Actor struct {
	ID      uuid.UUID
	IsStaff bool
}
