package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the application profile bridged from an auth identity; its id is
// the identity id.
type User struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Email       string    `gorm:"index" json:"email"`
	Username    string    `gorm:"not null" json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
