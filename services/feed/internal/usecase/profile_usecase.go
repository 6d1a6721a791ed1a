package usecase

import (
	"context"
	"fmt"
	"strings"

	"consumed/pkg/logger"
	"consumed/pkg/queue"
	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/repo/persistent"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultProfileCacheSize = 1024

type ProfileUseCase interface {
	// EnsureProfile returns the application profile for the identity,
	// creating it on first access.
	EnsureProfile(ctx context.Context, identity entity.Identity) (*entity.AppUser, error)
}

type profileUseCase struct {
	userRepo  persistent.UserRepository
	known     *lru.Cache[string, entity.AppUser]
	publisher EventPublisher
	logger    *logger.Logger
}

func NewProfileUseCase(userRepo persistent.UserRepository, publisher EventPublisher, cacheSize int, logger *logger.Logger) (ProfileUseCase, error) {
	if cacheSize <= 0 {
		cacheSize = defaultProfileCacheSize
	}
	known, err := lru.New[string, entity.AppUser](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}

	return &profileUseCase{
		userRepo:  userRepo,
		known:     known,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (uc *profileUseCase) EnsureProfile(ctx context.Context, identity entity.Identity) (*entity.AppUser, error) {
	if identity.UserID == "" {
		return nil, entity.ErrUnauthorized
	}

	if user, ok := uc.known.Get(identity.UserID); ok {
		return &user, nil
	}

	username := DefaultUsername(identity.Email, identity.UserID)
	created, err := uc.userRepo.EnsureUser(ctx, entity.AppUser{
		ID:          identity.UserID,
		Email:       identity.Email,
		Username:    username,
		DisplayName: username,
	})
	if err != nil {
		// A concurrent request may still have created the row.
		uc.logger.Warn("Failed to create profile for %s: %v", identity.UserID, err)
	}

	user, getErr := uc.userRepo.GetByID(ctx, identity.UserID)
	if getErr != nil {
		if err == nil {
			err = getErr
		}
		uc.logger.Error("Failed to resolve profile for %s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrProfileBootstrap, err)
	}

	uc.known.Add(identity.UserID, *user)

	if created {
		uc.logger.Info("Created profile %s (%s)", user.ID, user.Username)
		uc.publish(ctx, queue.Event{
			Type:       queue.EventProfileCreated,
			UserID:     user.ID,
			Attributes: map[string]string{"username": user.Username},
		})
	}

	return user, nil
}

func (uc *profileUseCase) publish(ctx context.Context, event queue.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish %s event: %v", event.Type, err)
	}
}

// DefaultUsername derives a username from the email local-part, falling back
// to a prefix of the identity id when there is no usable email.
func DefaultUsername(email, userID string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.TrimSpace(local)
	if local != "" {
		return local
	}

	id := strings.ReplaceAll(userID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "user_" + id
}
