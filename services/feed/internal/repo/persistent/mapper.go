package persistent

import (
	"consumed/pkg/models"
	"consumed/services/feed/internal/entity"
)

func ToUserEntity(m *models.User) entity.AppUser {
	return entity.AppUser{
		ID:          m.ID,
		Email:       m.Email,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		Avatar:      m.Avatar,
	}
}

func ToUserModel(e entity.AppUser) *models.User {
	return &models.User{
		ID:          e.ID,
		Email:       e.Email,
		Username:    e.Username,
		DisplayName: e.DisplayName,
		Avatar:      e.Avatar,
	}
}

func ToPostEntity(m *models.SocialPost) entity.Post {
	post := entity.Post{
		ID:               m.ID,
		AuthorID:         m.UserID,
		Content:          m.Content,
		Type:             string(m.PostType),
		Rating:           m.Rating,
		Progress:         m.Progress,
		LikesCount:       m.LikesCount,
		CommentsCount:    m.CommentsCount,
		ContainsSpoilers: m.ContainsSpoilers,
		ListID:           deref(m.ListID),
		CreatedAt:        m.CreatedAt,
	}

	if m.MediaTitle != nil || m.MediaType != nil || m.MediaCreator != nil ||
		m.ImageURL != nil || m.MediaExternalID != nil || m.MediaExternalSource != nil {
		post.Media = &entity.MediaRef{
			Title:          deref(m.MediaTitle),
			MediaType:      deref(m.MediaType),
			Creator:        deref(m.MediaCreator),
			ImageURL:       deref(m.ImageURL),
			ExternalID:     deref(m.MediaExternalID),
			ExternalSource: deref(m.MediaExternalSource),
		}
	}

	return post
}

func ToListItemEntity(m *models.ListItem) entity.ListItem {
	return entity.ListItem{
		ID:        m.ID,
		ListID:    m.ListID,
		Title:     m.Title,
		MediaType: m.MediaType,
		Creator:   m.Creator,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func ToPoolEntity(m *models.PredictionPool) entity.PredictionPool {
	options := make([]string, len(m.Options))
	copy(options, m.Options)

	return entity.PredictionPool{
		ID:           m.ID,
		OriginUserID: deref(m.OriginUserID),
		Question:     m.Question,
		Options:      options,
		Status:       string(m.Status),
		OriginType:   string(m.OriginType),
		CreatedAt:    m.CreatedAt,
	}
}

func ToVoteEntity(m *models.UserPrediction) entity.Vote {
	return entity.Vote{
		PoolID: m.PoolID,
		UserID: m.UserID,
		Option: m.Prediction,
	}
}

func ToVoteModel(e entity.Vote) *models.UserPrediction {
	return &models.UserPrediction{
		PoolID:     e.PoolID,
		UserID:     e.UserID,
		Prediction: e.Option,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
