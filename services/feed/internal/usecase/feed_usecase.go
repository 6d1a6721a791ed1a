package usecase

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"consumed/pkg/logger"
	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/repo/persistent"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	// listItemFetchLimit caps the list items loaded for all previews of one page.
	listItemFetchLimit = 200
	listPreviewSize    = 4

	unknownUsername  = "Unknown"
	curatedUsername  = "consumed"
	everyoneUsername = "everyone"
)

var tracer = otel.Tracer("consumed/services/feed/usecase")

type FeedUseCase interface {
	// GetFeed returns items [offset, offset+limit) of the viewer's merged
	// feed, newest first.
	GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]entity.FeedItem, error)
}

type feedUseCase struct {
	feedRepo persistent.FeedRepository
	media    MediaResolver
	logger   *logger.Logger
}

func NewFeedUseCase(feedRepo persistent.FeedRepository, media MediaResolver, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		feedRepo: feedRepo,
		media:    media,
		logger:   logger,
	}
}

func (uc *feedUseCase) GetFeed(ctx context.Context, viewerID string, limit, offset int) ([]entity.FeedItem, error) {
	ctx, span := tracer.Start(ctx, "FeedUseCase.GetFeed", trace.WithAttributes(
		attribute.Int("feed.limit", limit),
		attribute.Int("feed.offset", offset),
	))
	defer span.End()

	if limit <= 0 {
		return []entity.FeedItem{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	if offset > math.MaxInt-limit {
		return []entity.FeedItem{}, nil
	}
	// Both sources are over-fetched from the start: the page boundary is only
	// known after merging.
	window := offset + limit

	var postItems, predictionItems []entity.FeedItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := uc.collectPosts(gctx, viewerID, window)
		postItems = items
		return err
	})
	g.Go(func() error {
		items, err := uc.collectPredictions(gctx, viewerID, window)
		predictionItems = items
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	page := MergeFeed(postItems, predictionItems, offset, limit)
	span.SetAttributes(attribute.Int("feed.items", len(page)))
	return page, nil
}

// MergeFeed concatenates both sources, orders them newest first (id
// descending on equal timestamps) and returns [offset, offset+limit) of the
// combined sequence.
func MergeFeed(posts, predictions []entity.FeedItem, offset, limit int) []entity.FeedItem {
	all := make([]entity.FeedItem, 0, len(posts)+len(predictions))
	all = append(all, posts...)
	all = append(all, predictions...)

	slices.SortStableFunc(all, func(a, b entity.FeedItem) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if offset >= len(all) {
		return []entity.FeedItem{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

func (uc *feedUseCase) collectPosts(ctx context.Context, viewerID string, window int) ([]entity.FeedItem, error) {
	ctx, span := tracer.Start(ctx, "FeedUseCase.collectPosts")
	defer span.End()

	posts, err := uc.feedRepo.ListRecentPosts(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	if len(posts) == 0 {
		return []entity.FeedItem{}, nil
	}

	authorIDs := make([]string, 0, len(posts))
	postIDs := make([]string, 0, len(posts))
	listIDs := make([]string, 0)
	for _, post := range posts {
		authorIDs = append(authorIDs, post.AuthorID)
		postIDs = append(postIDs, post.ID)
		if post.ListID != "" {
			listIDs = append(listIDs, post.ListID)
		}
	}

	authors, err := uc.feedRepo.GetUsersByIDs(ctx, distinct(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post authors: %w", err)
	}
	authorByID := indexUsers(authors)

	likedIDs, err := uc.feedRepo.GetLikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}
	liked := toSet(likedIDs)

	previews := map[string][]entity.ListPreviewItem{}
	if len(listIDs) > 0 {
		items, err := uc.feedRepo.ListRecentListItems(ctx, distinct(listIDs), listItemFetchLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch list items: %w", err)
		}
		previews = uc.groupListPreviews(items)
	}

	feedItems := make([]entity.FeedItem, 0, len(posts))
	for _, post := range posts {
		feedItems = append(feedItems, uc.postToFeedItem(post, authorByID, liked, previews))
	}
	return feedItems, nil
}

func (uc *feedUseCase) collectPredictions(ctx context.Context, viewerID string, window int) ([]entity.FeedItem, error) {
	ctx, span := tracer.Start(ctx, "FeedUseCase.collectPredictions")
	defer span.End()

	pools, err := uc.feedRepo.ListOpenPools(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prediction pools: %w", err)
	}
	if len(pools) == 0 {
		return []entity.FeedItem{}, nil
	}

	poolIDs := make([]string, 0, len(pools))
	creatorIDs := make([]string, 0, len(pools))
	for _, pool := range pools {
		poolIDs = append(poolIDs, pool.ID)
		if pool.OriginUserID != "" {
			creatorIDs = append(creatorIDs, pool.OriginUserID)
		}
	}

	votes, err := uc.feedRepo.GetVotesForPools(ctx, poolIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prediction votes: %w", err)
	}
	tally := make(map[string]map[string]int, len(pools))
	for _, vote := range votes {
		if tally[vote.PoolID] == nil {
			tally[vote.PoolID] = map[string]int{}
		}
		tally[vote.PoolID][vote.Option]++
	}

	votedIDs, err := uc.feedRepo.GetVotedPoolIDs(ctx, viewerID, poolIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch viewer predictions: %w", err)
	}
	answered := toSet(votedIDs)

	creatorByID := map[string]entity.AppUser{}
	if len(creatorIDs) > 0 {
		creators, err := uc.feedRepo.GetUsersByIDs(ctx, distinct(creatorIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch prediction creators: %w", err)
		}
		creatorByID = indexUsers(creators)
	}

	feedItems := make([]entity.FeedItem, 0, len(pools))
	for _, pool := range pools {
		feedItems = append(feedItems, uc.poolToFeedItem(pool, tally[pool.ID], answered[pool.ID], creatorByID))
	}
	return feedItems, nil
}

func (uc *feedUseCase) postToFeedItem(post entity.Post, authors map[string]entity.AppUser, liked map[string]bool, previews map[string][]entity.ListPreviewItem) entity.FeedItem {
	postType := post.Type
	if postType == "" {
		postType = entity.PostTypeUpdate
	}

	details := &entity.PostDetails{
		MediaItems:       []entity.MediaItem{},
		Rating:           post.Rating,
		Progress:         post.Progress,
		ContainsSpoilers: post.ContainsSpoilers,
		ListID:           post.ListID,
	}
	if post.Media != nil {
		details.MediaItems = append(details.MediaItems, entity.MediaItem{
			Title:          post.Media.Title,
			MediaType:      post.Media.MediaType,
			Creator:        post.Media.Creator,
			ImageURL:       uc.resolveMedia(post.Media.ImageURL),
			ExternalID:     post.Media.ExternalID,
			ExternalSource: post.Media.ExternalSource,
		})
	}
	if post.ListID != "" {
		details.ListPreview = previews[post.ListID]
	}

	return entity.FeedItem{
		ID:                 post.ID,
		Type:               postType,
		User:               uc.feedUser(post.AuthorID, authors),
		Content:            post.Content,
		Timestamp:          post.CreatedAt,
		Likes:              post.LikesCount,
		Comments:           post.CommentsCount,
		LikedByCurrentUser: liked[post.ID],
		PostDetails:        details,
	}
}

func (uc *feedUseCase) poolToFeedItem(pool entity.PredictionPool, counts map[string]int, answered bool, creators map[string]entity.AppUser) entity.FeedItem {
	optionVotes, total := TallyOptions(pool.Options, counts)

	user := entity.FeedUser{Username: curatedUsername, DisplayName: curatedUsername}
	if pool.OriginUserID != "" {
		user = uc.feedUser(pool.OriginUserID, creators)
	}

	return entity.FeedItem{
		ID:        pool.ID,
		Type:      entity.FeedItemTypePrediction,
		User:      user,
		Content:   pool.Question,
		Timestamp: pool.CreatedAt,
		PredictionDetails: &entity.PredictionDetails{
			PoolID:           pool.ID,
			Question:         pool.Question,
			Options:          pool.Options,
			OptionVotes:      optionVotes,
			ParticipantCount: total,
			UserHasAnswered:  answered,
			InvitedFriend:    entity.InvitedFriend{Username: everyoneUsername},
			OriginType:       pool.OriginType,
			Status:           pool.Status,
		},
	}
}

// TallyOptions returns per-option counts and rounded percentages in option
// order, plus the total the percentages are relative to.
func TallyOptions(options []string, counts map[string]int) ([]entity.OptionVote, int) {
	total := 0
	for _, option := range options {
		total += counts[option]
	}

	optionVotes := make([]entity.OptionVote, len(options))
	for i, option := range options {
		count := counts[option]
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(100 * float64(count) / float64(total)))
		}
		optionVotes[i] = entity.OptionVote{Option: option, Count: count, Percentage: percentage}
	}
	return optionVotes, total
}

func (uc *feedUseCase) feedUser(userID string, users map[string]entity.AppUser) entity.FeedUser {
	user, ok := users[userID]
	if !ok {
		return entity.FeedUser{ID: userID, Username: unknownUsername, DisplayName: unknownUsername}
	}

	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Username
	}
	return entity.FeedUser{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: displayName,
		Avatar:      uc.resolveMedia(user.Avatar),
	}
}

func (uc *feedUseCase) groupListPreviews(items []entity.ListItem) map[string][]entity.ListPreviewItem {
	previews := make(map[string][]entity.ListPreviewItem)
	for _, item := range items {
		if len(previews[item.ListID]) >= listPreviewSize {
			continue
		}
		previews[item.ListID] = append(previews[item.ListID], entity.ListPreviewItem{
			ID:        item.ID,
			Title:     item.Title,
			MediaType: item.MediaType,
			Creator:   item.Creator,
			ImageURL:  uc.resolveMedia(item.ImageURL),
		})
	}
	return previews
}

func (uc *feedUseCase) resolveMedia(ref string) string {
	if uc.media == nil || ref == "" {
		return ref
	}
	url, err := uc.media.ResolveURL(ref)
	if err != nil {
		uc.logger.Warn("Failed to resolve media %q: %v", ref, err)
		return ref
	}
	return url
}

func indexUsers(users []entity.AppUser) map[string]entity.AppUser {
	byID := make(map[string]entity.AppUser, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
