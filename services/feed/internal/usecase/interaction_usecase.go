package usecase

import (
	"context"
	"fmt"
	"slices"

	"consumed/pkg/logger"
	"consumed/pkg/queue"
	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/repo/persistent"
)

type InteractionUseCase interface {
	ToggleLike(ctx context.Context, userID, postID string) (liked bool, likes int, err error)
	SubmitPrediction(ctx context.Context, userID, poolID, option string) error
}

type interactionUseCase struct {
	interactionRepo persistent.InteractionRepository
	publisher       EventPublisher
	logger          *logger.Logger
}

func NewInteractionUseCase(interactionRepo persistent.InteractionRepository, publisher EventPublisher, logger *logger.Logger) InteractionUseCase {
	return &interactionUseCase{
		interactionRepo: interactionRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

func (uc *interactionUseCase) ToggleLike(ctx context.Context, userID, postID string) (bool, int, error) {
	post, err := uc.interactionRepo.GetPost(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	liked, likes, err := uc.interactionRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		uc.logger.Error("Failed to toggle like on %s: %v", postID, err)
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	if liked && post.AuthorID != userID {
		uc.publish(ctx, queue.Event{
			Type:   queue.EventPostLiked,
			UserID: post.AuthorID,
			Attributes: map[string]string{
				"liker_id": userID,
				"post_id":  postID,
			},
		})
	}

	return liked, likes, nil
}

func (uc *interactionUseCase) SubmitPrediction(ctx context.Context, userID, poolID, option string) error {
	pool, err := uc.interactionRepo.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.Status != entity.PoolStatusOpen {
		return entity.ErrPoolClosed
	}
	if !slices.Contains(pool.Options, option) {
		return entity.ErrInvalidOption
	}

	created, err := uc.interactionRepo.CreateVote(ctx, entity.Vote{PoolID: poolID, UserID: userID, Option: option})
	if err != nil {
		uc.logger.Error("Failed to record prediction on %s: %v", poolID, err)
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	if !created {
		return entity.ErrAlreadyVoted
	}

	uc.publish(ctx, queue.Event{
		Type:   queue.EventPredictionVoted,
		UserID: userID,
		Attributes: map[string]string{
			"pool_id": poolID,
			"option":  option,
		},
	})
	return nil
}

func (uc *interactionUseCase) publish(ctx context.Context, event queue.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish %s event: %v", event.Type, err)
	}
}
