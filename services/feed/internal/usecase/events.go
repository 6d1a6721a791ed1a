package usecase

import (
	"context"

	"consumed/pkg/queue"
)

// EventPublisher is satisfied by *queue.Client. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.Event) error
}

// MediaResolver turns stored media references into URLs the client can load.
// Satisfied by *s3.Client.
type MediaResolver interface {
	ResolveURL(ref string) (string, error)
}
