package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostType string

const (
	PostTypeUpdate   PostType = "update"
	PostTypeRating   PostType = "rating"
	PostTypeProgress PostType = "progress"
	PostTypeList     PostType = "list"
)

type SocialPost struct {
	ID                  string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID              string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content             string    `gorm:"type:text" json:"content"`
	PostType            PostType  `gorm:"type:varchar(20);default:'update'" json:"post_type"`
	MediaTitle          *string   `json:"media_title"`
	MediaType           *string   `json:"media_type"`
	MediaCreator        *string   `json:"media_creator"`
	ImageURL            *string   `json:"image_url"`
	MediaExternalID     *string   `json:"media_external_id"`
	MediaExternalSource *string   `json:"media_external_source"`
	Rating              *float64  `json:"rating"`
	Progress            *int      `json:"progress"`
	LikesCount          int       `gorm:"default:0" json:"likes_count"`
	CommentsCount       int       `gorm:"default:0" json:"comments_count"`
	ContainsSpoilers    bool      `gorm:"default:false" json:"contains_spoilers"`
	ListID              *string   `gorm:"type:uuid;index" json:"list_id"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (SocialPost) TableName() string {
	return "social_posts"
}

func (p *SocialPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type SocialPostLike struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	SocialPostID string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_user" json:"social_post_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SocialPostLike) TableName() string {
	return "social_post_likes"
}

func (l *SocialPostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
