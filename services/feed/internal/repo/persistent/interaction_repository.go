package persistent

import (
	"context"
	"errors"

	"consumed/pkg/models"
	"consumed/services/feed/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository interface {
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	// ToggleLike flips the (post, user) like and returns the new state and
	// the post's like counter.
	ToggleLike(ctx context.Context, userID, postID string) (liked bool, likes int, err error)
	GetPool(ctx context.Context, poolID string) (*entity.PredictionPool, error)
	// CreateVote returns false when the user already has a vote on the pool.
	CreateVote(ctx context.Context, vote entity.Vote) (bool, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	var postModel models.SocialPost
	if err := r.db.WithContext(ctx).Where("id = ?", postID).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPostNotFound
		}
		return nil, err
	}
	post := ToPostEntity(&postModel)
	return &post, nil
}

func (r *interactionRepository) ToggleLike(ctx context.Context, userID, postID string) (bool, int, error) {
	var liked bool
	var likes int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("social_post_id = ? AND user_id = ?", postID, userID).Delete(&models.SocialPostLike{})
		if removed.Error != nil {
			return removed.Error
		}

		delta := 0
		if removed.RowsAffected > 0 {
			delta = -int(removed.RowsAffected)
		} else {
			inserted := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.SocialPostLike{SocialPostID: postID, UserID: userID})
			if inserted.Error != nil {
				return inserted.Error
			}
			liked = true
			delta = int(inserted.RowsAffected)
		}

		if delta != 0 {
			err := tx.Model(&models.SocialPost{}).
				Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count + ?, 0)", delta)).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&models.SocialPost{}).
			Select("likes_count").
			Where("id = ?", postID).
			Scan(&likes).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likes, nil
}

func (r *interactionRepository) GetPool(ctx context.Context, poolID string) (*entity.PredictionPool, error) {
	var poolModel models.PredictionPool
	if err := r.db.WithContext(ctx).Where("id = ?", poolID).First(&poolModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPoolNotFound
		}
		return nil, err
	}
	pool := ToPoolEntity(&poolModel)
	return &pool, nil
}

func (r *interactionRepository) CreateVote(ctx context.Context, vote entity.Vote) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pool_id"}},
			DoNothing: true,
		}).
		Create(ToVoteModel(vote))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
