package entity

import "time"

const FeedItemTypePrediction = "prediction"

type FeedUser struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type MediaItem struct {
	Title          string `json:"title"`
	MediaType      string `json:"mediaType"`
	Creator        string `json:"creator"`
	ImageURL       string `json:"imageUrl"`
	ExternalID     string `json:"externalId"`
	ExternalSource string `json:"externalSource"`
}

type ListPreviewItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	MediaType string `json:"mediaType"`
	Creator   string `json:"creator"`
	ImageURL  string `json:"imageUrl"`
}

type OptionVote struct {
	Option     string `json:"option"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type InvitedFriend struct {
	Username string `json:"username"`
}

// PostDetails holds the fields only post items carry.
type PostDetails struct {
	MediaItems       []MediaItem       `json:"mediaItems"`
	Rating           *float64          `json:"rating,omitempty"`
	Progress         *int              `json:"progress,omitempty"`
	ContainsSpoilers bool              `json:"containsSpoilers"`
	ListID           string            `json:"listId,omitempty"`
	ListPreview      []ListPreviewItem `json:"listPreview,omitempty"`
}

// PredictionDetails holds the fields only prediction items carry.
type PredictionDetails struct {
	PoolID           string        `json:"poolId"`
	Question         string        `json:"question"`
	Options          []string      `json:"options"`
	OptionVotes      []OptionVote  `json:"optionVotes"`
	ParticipantCount int           `json:"participantCount"`
	UserHasAnswered  bool          `json:"userHasAnswered"`
	InvitedFriend    InvitedFriend `json:"invitedFriend"`
	OriginType       string        `json:"originType"`
	Status           string        `json:"status"`
}

// FeedItem is the viewer-annotated shape of either a post or a prediction
// pool. Exactly one of the embedded detail pointers is set; its fields are
// flattened into the JSON object.
type FeedItem struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	User               FeedUser  `json:"user"`
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	Likes              int       `json:"likes"`
	Comments           int       `json:"comments"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser"`

	*PostDetails
	*PredictionDetails
}
