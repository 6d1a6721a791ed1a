package main

import (
	"errors"
	"fmt"
	"time"

	"consumed/pkg/config"
	"consumed/pkg/database"
	"consumed/pkg/logger"
	"consumed/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	email       string
	username    string
	displayName string
}

type seedMedia struct {
	title     string
	mediaType string
	creator   string
	imageURL  string
}

var testUsers = []seedUser{
	{"alice@test.com", "alice", "Alice Reads"},
	{"bob@test.com", "bob", "Bob Watches"},
	{"charlie@test.com", "charlie", "Charlie"},
	{"diana@test.com", "diana", "Diana Listens"},
}

var catalog = []seedMedia{
	{"Dune", "book", "Frank Herbert", "https://covers.openlibrary.org/b/id/11481354-L.jpg"},
	{"Severance", "tv", "Dan Erickson", "https://image.tmdb.org/t/p/w500/severance.jpg"},
	{"Oppenheimer", "movie", "Christopher Nolan", "https://image.tmdb.org/t/p/w500/oppenheimer.jpg"},
	{"Blonde", "music", "Frank Ocean", "https://covers.example.com/blonde.jpg"},
	{"The Bear", "tv", "Christopher Storer", "https://image.tmdb.org/t/p/w500/the-bear.jpg"},
	{"Project Hail Mary", "book", "Andy Weir", "https://covers.openlibrary.org/b/id/10389354-L.jpg"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	userIDs := make([]string, 0, len(testUsers))
	for _, userData := range testUsers {
		id, err := ensureUser(db, userData, log)
		if err != nil {
			return err
		}
		userIDs = append(userIDs, id)
	}

	var existing int64
	if err := db.Model(&models.SocialPost{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if existing > 0 {
		log.Info("Posts already seeded (%d), skipping content", existing)
		return nil
	}

	// Spread timestamps so the merged feed interleaves posts and pools.
	now := time.Now().UTC()
	at := func(hoursAgo int) time.Time {
		return now.Add(-time.Duration(hoursAgo) * time.Hour)
	}

	listID, err := createList(db, userIDs[0], "Sci-fi essentials", catalog[0], catalog[5], catalog[2], catalog[1], catalog[4])
	if err != nil {
		return err
	}

	posts := []*models.SocialPost{
		{UserID: userIDs[0], Content: "Finally started Dune. The worldbuilding is unreal.", PostType: models.PostTypeProgress, Progress: intPtr(35), CreatedAt: at(1)},
		{UserID: userIDs[1], Content: "Season two was worth the wait.", PostType: models.PostTypeRating, Rating: floatPtr(4.5), ContainsSpoilers: true, CreatedAt: at(3)},
		{UserID: userIDs[0], Content: "Made a list for anyone getting into sci-fi.", PostType: models.PostTypeList, ListID: &listID, CreatedAt: at(5)},
		{UserID: userIDs[2], Content: "Three hours went by in a flash.", PostType: models.PostTypeRating, Rating: floatPtr(5), CreatedAt: at(9)},
		{UserID: userIDs[3], Content: "On repeat all week.", PostType: models.PostTypeUpdate, CreatedAt: at(14)},
	}
	media := []*seedMedia{&catalog[0], &catalog[1], nil, &catalog[2], &catalog[3]}

	for i, post := range posts {
		if m := media[i]; m != nil {
			post.MediaTitle = &m.title
			post.MediaType = &m.mediaType
			post.MediaCreator = &m.creator
			post.ImageURL = &m.imageURL
			source := "seed"
			externalID := uuid.NewString()
			post.MediaExternalSource = &source
			post.MediaExternalID = &externalID
		}
		if err := post.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate post ID: %w", err)
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		log.Info("Created %s post by %s", post.PostType, post.UserID)
	}

	if err := createLikes(db, posts, userIDs); err != nil {
		return err
	}

	pools := []*models.PredictionPool{
		{Question: "Will Dune: Part Three win Best Picture?", Options: datatypes.JSONSlice[string]{"Yes", "No"}, Status: models.PoolStatusOpen, OriginType: models.OriginTypeConsumed, CreatedAt: at(2)},
		{OriginUserID: &userIDs[1], Question: "Who survives the Severance finale?", Options: datatypes.JSONSlice[string]{"Mark", "Helly", "Irving", "Dylan"}, Status: models.PoolStatusOpen, OriginType: models.OriginTypeUser, CreatedAt: at(7)},
		{Question: "Which book tops the charts this summer?", Options: datatypes.JSONSlice[string]{"Fiction", "Non-fiction"}, Status: models.PoolStatusResolved, OriginType: models.OriginTypeConsumed, CreatedAt: at(30)},
	}
	for _, pool := range pools {
		if err := pool.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate pool ID: %w", err)
		}
		if err := db.Create(pool).Error; err != nil {
			return fmt.Errorf("failed to create prediction pool: %w", err)
		}
		log.Info("Created prediction pool: %s", pool.Question)
	}

	for i, userID := range userIDs {
		for _, pool := range pools[:2] {
			vote := &models.UserPrediction{
				PoolID:     pool.ID,
				UserID:     userID,
				Prediction: pool.Options[i%len(pool.Options)],
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(vote).Error; err != nil {
				log.Error("Failed to create prediction for %s: %v", userID, err)
			}
		}
	}

	log.Info("Created test predictions")
	return nil
}

func ensureUser(db *gorm.DB, userData seedUser, log *logger.Logger) (string, error) {
	var existingUser models.User
	err := db.Where("email = ?", userData.email).First(&existingUser).Error
	if err == nil {
		log.Info("User %s already exists, skipping", userData.username)
		return existingUser.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up user %s: %w", userData.username, err)
	}

	user := &models.User{
		Email:       userData.email,
		Username:    userData.username,
		DisplayName: userData.displayName,
	}
	if err := db.Create(user).Error; err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", userData.username, err)
	}

	log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user.ID, nil
}

func createList(db *gorm.DB, ownerID, title string, items ...seedMedia) (string, error) {
	list := &models.List{UserID: ownerID, Title: title}
	if err := db.Create(list).Error; err != nil {
		return "", fmt.Errorf("failed to create list: %w", err)
	}

	created := time.Now().UTC().Add(-time.Duration(len(items)) * time.Minute)
	for i, m := range items {
		item := &models.ListItem{
			ListID:    list.ID,
			Title:     m.title,
			MediaType: m.mediaType,
			Creator:   m.creator,
			ImageURL:  m.imageURL,
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(item).Error; err != nil {
			return "", fmt.Errorf("failed to create list item %s: %w", m.title, err)
		}
	}
	return list.ID, nil
}

func createLikes(db *gorm.DB, posts []*models.SocialPost, userIDs []string) error {
	for i, post := range posts {
		likers := userIDs[:(i%len(userIDs))+1]
		for _, userID := range likers {
			like := &models.SocialPostLike{SocialPostID: post.ID, UserID: userID}
			if err := db.Create(like).Error; err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}
		if err := db.Model(post).UpdateColumn("likes_count", len(likers)).Error; err != nil {
			return fmt.Errorf("failed to update like count: %w", err)
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
