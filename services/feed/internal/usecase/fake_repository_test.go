package usecase

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/repo/persistent"
)

var errStore = errors.New("connection reset by peer")

type like struct {
	postID string
	userID string
}

// fakeFeedRepository keeps rows in memory and records how often each query
// runs. Setting failOn makes the named method return errStore.
type fakeFeedRepository struct {
	mu sync.Mutex

	users     map[string]entity.AppUser
	posts     []entity.Post
	likes     []like
	listItems []entity.ListItem
	pools     []entity.PredictionPool
	votes     []entity.Vote

	calls  map[string]int
	failOn string
}

var _ persistent.FeedRepository = (*fakeFeedRepository)(nil)

func newFakeFeedRepository() *fakeFeedRepository {
	return &fakeFeedRepository{
		users: map[string]entity.AppUser{},
		calls: map[string]int{},
	}
}

func (r *fakeFeedRepository) record(method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[method]++
	if r.failOn == method {
		return errStore
	}
	return nil
}

func (r *fakeFeedRepository) callCount(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

func (r *fakeFeedRepository) addUser(user entity.AppUser) {
	r.users[user.ID] = user
}

func (r *fakeFeedRepository) ListRecentPosts(_ context.Context, limit int) ([]entity.Post, error) {
	if err := r.record("ListRecentPosts"); err != nil {
		return nil, err
	}
	posts := slices.Clone(r.posts)
	slices.SortFunc(posts, func(a, b entity.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return posts[:min(limit, len(posts))], nil
}

func (r *fakeFeedRepository) GetUsersByIDs(_ context.Context, userIDs []string) ([]entity.AppUser, error) {
	if err := r.record("GetUsersByIDs"); err != nil {
		return nil, err
	}
	users := make([]entity.AppUser, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *fakeFeedRepository) GetLikedPostIDs(_ context.Context, userID string, postIDs []string) ([]string, error) {
	if err := r.record("GetLikedPostIDs"); err != nil {
		return nil, err
	}
	liked := []string{}
	for _, l := range r.likes {
		if l.userID == userID && slices.Contains(postIDs, l.postID) {
			liked = append(liked, l.postID)
		}
	}
	return liked, nil
}

func (r *fakeFeedRepository) ListRecentListItems(_ context.Context, listIDs []string, limit int) ([]entity.ListItem, error) {
	if err := r.record("ListRecentListItems"); err != nil {
		return nil, err
	}
	items := []entity.ListItem{}
	for _, item := range r.listItems {
		if slices.Contains(listIDs, item.ListID) {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b entity.ListItem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return items[:min(limit, len(items))], nil
}

func (r *fakeFeedRepository) ListOpenPools(_ context.Context, limit int) ([]entity.PredictionPool, error) {
	if err := r.record("ListOpenPools"); err != nil {
		return nil, err
	}
	pools := []entity.PredictionPool{}
	for _, pool := range r.pools {
		if pool.Status == entity.PoolStatusOpen {
			pools = append(pools, pool)
		}
	}
	slices.SortFunc(pools, func(a, b entity.PredictionPool) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return pools[:min(limit, len(pools))], nil
}

func (r *fakeFeedRepository) GetVotesForPools(_ context.Context, poolIDs []string) ([]entity.Vote, error) {
	if err := r.record("GetVotesForPools"); err != nil {
		return nil, err
	}
	votes := []entity.Vote{}
	for _, vote := range r.votes {
		if slices.Contains(poolIDs, vote.PoolID) {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}

func (r *fakeFeedRepository) GetVotedPoolIDs(_ context.Context, userID string, poolIDs []string) ([]string, error) {
	if err := r.record("GetVotedPoolIDs"); err != nil {
		return nil, err
	}
	voted := []string{}
	for _, vote := range r.votes {
		if vote.UserID == userID && slices.Contains(poolIDs, vote.PoolID) {
			voted = append(voted, vote.PoolID)
		}
	}
	return voted, nil
}

// fakeMediaResolver prefixes storage keys and passes absolute URLs through.
type fakeMediaResolver struct {
	err error
}

func (f fakeMediaResolver) ResolveURL(ref string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(ref) > 4 && ref[:4] == "http" {
		return ref, nil
	}
	return "https://cdn.test/" + ref + "?signed", nil
}
