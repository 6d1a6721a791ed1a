package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PoolStatus string

const (
	PoolStatusOpen     PoolStatus = "open"
	PoolStatusResolved PoolStatus = "resolved"
)

// OriginType separates system-curated pools from user-generated ones.
type OriginType string

const (
	OriginTypeConsumed OriginType = "consumed"
	OriginTypeUser     OriginType = "user_generated"
)

type PredictionPool struct {
	ID           string                      `gorm:"type:uuid;primary_key" json:"id"`
	OriginUserID *string                     `gorm:"type:uuid;index" json:"origin_user_id"`
	Question     string                      `gorm:"type:text;not null" json:"question"`
	Options      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"options"`
	Status       PoolStatus                  `gorm:"type:varchar(20);default:'open';index" json:"status"`
	OriginType   OriginType                  `gorm:"type:varchar(20);default:'consumed'" json:"origin_type"`
	CreatedAt    time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (PredictionPool) TableName() string {
	return "prediction_pools"
}

func (p *PredictionPool) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// UserPrediction is one vote; (user_id, pool_id) is unique.
type UserPrediction struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	PoolID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_prediction_user_pool" json:"pool_id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_prediction_user_pool" json:"user_id"`
	Prediction string    `gorm:"not null" json:"prediction"`
	CreatedAt  time.Time `json:"created_at"`
}

func (UserPrediction) TableName() string {
	return "user_predictions"
}

func (p *UserPrediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
