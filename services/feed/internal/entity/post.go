package entity

import "time"

const PostTypeUpdate = "update"

type MediaRef struct {
	Title          string
	MediaType      string
	Creator        string
	ImageURL       string
	ExternalID     string
	ExternalSource string
}

type Post struct {
	ID               string
	AuthorID         string
	Content          string
	Type             string
	Media            *MediaRef
	Rating           *float64
	Progress         *int
	LikesCount       int
	CommentsCount    int
	ContainsSpoilers bool
	ListID           string
	CreatedAt        time.Time
}

type ListItem struct {
	ID        string
	ListID    string
	Title     string
	MediaType string
	Creator   string
	ImageURL  string
	CreatedAt time.Time
}
