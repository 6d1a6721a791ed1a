package entity

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrProfileBootstrap = errors.New("failed to resolve user profile")
	ErrPostNotFound     = errors.New("post not found")
	ErrPoolNotFound     = errors.New("prediction pool not found")
	ErrPoolClosed       = errors.New("prediction pool is not open")
	ErrInvalidOption    = errors.New("option is not part of this prediction pool")
	ErrAlreadyVoted     = errors.New("user already voted on this prediction pool")
)
