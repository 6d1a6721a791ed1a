package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"consumed/pkg/database"
	"consumed/pkg/models"
	"consumed/services/feed/internal/entity"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const migrationsDir = "../../../../../migrations"

// startPostgres runs a throwaway postgres, applies the migrations and returns
// a gorm handle to it.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "user",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "consumed",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		_ = postgresC.Terminate(context.Background())
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)
	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s user=user password=password dbname=consumed port=%s sslmode=disable", host, port.Port())

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, migrationsDir))

	db, err := database.Open(dsn, 10, 5)
	require.NoError(t, err)
	t.Cleanup(func() {
		if raw, err := db.DB(); err == nil {
			_ = raw.Close()
		}
	})
	return db
}

func TestRepositories_Postgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	feedRepo := NewFeedRepository(db)
	userRepo := NewUserRepository(db)
	interactionRepo := NewInteractionRepository(db)

	author := &models.User{Email: "alice@example.com", Username: "alice", DisplayName: "Alice"}
	require.NoError(t, db.Create(author).Error)

	list := &models.List{UserID: author.ID, Title: "Favorites"}
	require.NoError(t, db.Create(list).Error)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&models.ListItem{
			ListID:    list.ID,
			Title:     fmt.Sprintf("Item %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	var posts []*models.SocialPost
	for i := 0; i < 3; i++ {
		post := &models.SocialPost{
			UserID:    author.ID,
			Content:   fmt.Sprintf("post %d", i),
			PostType:  models.PostTypeUpdate,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if i == 0 {
			post.ListID = &list.ID
			post.PostType = models.PostTypeList
		}
		require.NoError(t, db.Create(post).Error)
		posts = append(posts, post)
	}

	openPool := &models.PredictionPool{
		OriginUserID: &author.ID,
		Question:     "Who wins?",
		Options:      datatypes.JSONSlice[string]{"A", "B"},
		Status:       models.PoolStatusOpen,
		OriginType:   models.OriginTypeUser,
		CreatedAt:    base.Add(90 * time.Minute),
	}
	resolvedPool := &models.PredictionPool{
		Question:   "Old question",
		Options:    datatypes.JSONSlice[string]{"X"},
		Status:     models.PoolStatusResolved,
		OriginType: models.OriginTypeConsumed,
		CreatedAt:  base.Add(3 * time.Hour),
	}
	require.NoError(t, db.Create(openPool).Error)
	require.NoError(t, db.Create(resolvedPool).Error)

	viewerID := uuid.NewString()

	t.Run("EnsureUser is idempotent", func(t *testing.T) {
		user := entity.AppUser{ID: viewerID, Email: "viewer@example.com", Username: "viewer", DisplayName: "viewer"}

		created, err := userRepo.EnsureUser(ctx, user)
		require.NoError(t, err)
		assert.True(t, created)

		user.Username = "renamed"
		created, err = userRepo.EnsureUser(ctx, user)
		require.NoError(t, err)
		assert.False(t, created)

		stored, err := userRepo.GetByID(ctx, viewerID)
		require.NoError(t, err)
		assert.Equal(t, "viewer", stored.Username)

		_, err = userRepo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("EnsureUser concurrent first access", func(t *testing.T) {
		id := uuid.NewString()
		var wg sync.WaitGroup
		var mu sync.Mutex
		createdCount := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := userRepo.EnsureUser(ctx, entity.AppUser{ID: id, Username: "racer"})
				assert.NoError(t, err)
				if created {
					mu.Lock()
					createdCount++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, createdCount)
		var count int64
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ListRecentPosts newest first", func(t *testing.T) {
		recent, err := feedRepo.ListRecentPosts(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, posts[2].ID, recent[0].ID)
		assert.Equal(t, posts[1].ID, recent[1].ID)
	})

	t.Run("GetUsersByIDs", func(t *testing.T) {
		users, err := feedRepo.GetUsersByIDs(ctx, []string{author.ID, uuid.NewString()})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)

		users, err = feedRepo.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("ListRecentListItems", func(t *testing.T) {
		items, err := feedRepo.ListRecentListItems(ctx, []string{list.ID}, 200)
		require.NoError(t, err)
		require.Len(t, items, 6)
		assert.Equal(t, "Item 5", items[0].Title)
	})

	t.Run("ToggleLike flips state and counter", func(t *testing.T) {
		postID := posts[1].ID

		liked, likes, err := interactionRepo.ToggleLike(ctx, viewerID, postID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, 1, likes)

		likedIDs, err := feedRepo.GetLikedPostIDs(ctx, viewerID, []string{posts[0].ID, postID})
		require.NoError(t, err)
		assert.Equal(t, []string{postID}, likedIDs)

		liked, likes, err = interactionRepo.ToggleLike(ctx, viewerID, postID)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, 0, likes)

		likedIDs, err = feedRepo.GetLikedPostIDs(ctx, viewerID, []string{postID})
		require.NoError(t, err)
		assert.Empty(t, likedIDs)
	})

	t.Run("GetPost and GetPool not found", func(t *testing.T) {
		_, err := interactionRepo.GetPost(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entity.ErrPostNotFound)

		_, err = interactionRepo.GetPool(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entity.ErrPoolNotFound)

		pool, err := interactionRepo.GetPool(ctx, openPool.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, pool.Options)
	})

	t.Run("ListOpenPools skips resolved", func(t *testing.T) {
		pools, err := feedRepo.ListOpenPools(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pools, 1)
		assert.Equal(t, openPool.ID, pools[0].ID)
		assert.Equal(t, author.ID, pools[0].OriginUserID)
	})

	t.Run("CreateVote once per user", func(t *testing.T) {
		created, err := interactionRepo.CreateVote(ctx, entity.Vote{PoolID: openPool.ID, UserID: viewerID, Option: "A"})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = interactionRepo.CreateVote(ctx, entity.Vote{PoolID: openPool.ID, UserID: viewerID, Option: "B"})
		require.NoError(t, err)
		assert.False(t, created)

		votes, err := feedRepo.GetVotesForPools(ctx, []string{openPool.ID})
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, "A", votes[0].Option)

		voted, err := feedRepo.GetVotedPoolIDs(ctx, viewerID, []string{openPool.ID, resolvedPool.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{openPool.ID}, voted)
	})
}
