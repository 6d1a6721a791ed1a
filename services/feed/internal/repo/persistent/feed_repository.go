package persistent

import (
	"context"

	"consumed/pkg/models"
	"consumed/services/feed/internal/entity"

	"gorm.io/gorm"
)

// FeedRepository is the read side of the feed. Every method is a single
// batched query; callers join the results in memory.
type FeedRepository interface {
	ListRecentPosts(ctx context.Context, limit int) ([]entity.Post, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]entity.AppUser, error)
	GetLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
	ListRecentListItems(ctx context.Context, listIDs []string, limit int) ([]entity.ListItem, error)
	ListOpenPools(ctx context.Context, limit int) ([]entity.PredictionPool, error)
	GetVotesForPools(ctx context.Context, poolIDs []string) ([]entity.Vote, error)
	GetVotedPoolIDs(ctx context.Context, userID string, poolIDs []string) ([]string, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) ListRecentPosts(ctx context.Context, limit int) ([]entity.Post, error) {
	var postModels []models.SocialPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *feedRepository) GetUsersByIDs(ctx context.Context, userIDs []string) ([]entity.AppUser, error) {
	if len(userIDs) == 0 {
		return []entity.AppUser{}, nil
	}

	var userModels []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]entity.AppUser, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *feedRepository) GetLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return []string{}, nil
	}

	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.SocialPostLike{}).
		Where("user_id = ? AND social_post_id IN ?", userID, postIDs).
		Pluck("social_post_id", &liked).Error
	return liked, err
}

func (r *feedRepository) ListRecentListItems(ctx context.Context, listIDs []string, limit int) ([]entity.ListItem, error) {
	if len(listIDs) == 0 {
		return []entity.ListItem{}, nil
	}

	var itemModels []models.ListItem
	err := r.db.WithContext(ctx).
		Where("list_id IN ?", listIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}

	items := make([]entity.ListItem, len(itemModels))
	for i := range itemModels {
		items[i] = ToListItemEntity(&itemModels[i])
	}
	return items, nil
}

func (r *feedRepository) ListOpenPools(ctx context.Context, limit int) ([]entity.PredictionPool, error) {
	var poolModels []models.PredictionPool
	err := r.db.WithContext(ctx).
		Where("status = ?", models.PoolStatusOpen).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&poolModels).Error
	if err != nil {
		return nil, err
	}

	pools := make([]entity.PredictionPool, len(poolModels))
	for i := range poolModels {
		pools[i] = ToPoolEntity(&poolModels[i])
	}
	return pools, nil
}

func (r *feedRepository) GetVotesForPools(ctx context.Context, poolIDs []string) ([]entity.Vote, error) {
	if len(poolIDs) == 0 {
		return []entity.Vote{}, nil
	}

	var voteModels []models.UserPrediction
	err := r.db.WithContext(ctx).
		Select("pool_id", "user_id", "prediction").
		Where("pool_id IN ?", poolIDs).
		Find(&voteModels).Error
	if err != nil {
		return nil, err
	}

	votes := make([]entity.Vote, len(voteModels))
	for i := range voteModels {
		votes[i] = ToVoteEntity(&voteModels[i])
	}
	return votes, nil
}

func (r *feedRepository) GetVotedPoolIDs(ctx context.Context, userID string, poolIDs []string) ([]string, error) {
	if len(poolIDs) == 0 {
		return []string{}, nil
	}

	var voted []string
	err := r.db.WithContext(ctx).
		Model(&models.UserPrediction{}).
		Where("user_id = ? AND pool_id IN ?", userID, poolIDs).
		Pluck("pool_id", &voted).Error
	return voted, err
}
