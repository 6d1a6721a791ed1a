package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type List struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (List) TableName() string {
	return "lists"
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type ListItem struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ListID    string    `gorm:"type:uuid;not null;index" json:"list_id"`
	Title     string    `gorm:"not null" json:"title"`
	MediaType string    `json:"media_type"`
	Creator   string    `json:"creator"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ListItem) TableName() string {
	return "list_items"
}

func (i *ListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
