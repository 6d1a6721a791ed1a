package entity

import "time"

const (
	PoolStatusOpen     = "open"
	OriginTypeConsumed = "consumed"
)

type PredictionPool struct {
	ID string
	// OriginUserID is empty for system-curated pools.
	OriginUserID string
	Question     string
	Options      []string
	Status       string
	OriginType   string
	CreatedAt    time.Time
}

type Vote struct {
	PoolID string
	UserID string
	Option string
}
