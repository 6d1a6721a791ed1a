package usecase

import (
	"context"
	"sync"

	"consumed/pkg/queue"
	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, user entity.AppUser) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AppUser), args.Error(1)
}

type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockInteractionRepository) ToggleLike(ctx context.Context, userID, postID string) (bool, int, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockInteractionRepository) GetPool(ctx context.Context, poolID string) (*entity.PredictionPool, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PredictionPool), args.Error(1)
}

func (m *MockInteractionRepository) CreateVote(ctx context.Context, vote entity.Vote) (bool, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Error(1)
}

var (
	_ persistent.UserRepository        = (*MockUserRepository)(nil)
	_ persistent.InteractionRepository = (*MockInteractionRepository)(nil)
)

// recordingPublisher collects published events; err is returned from every call.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) published() []queue.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.Event(nil), p.events...)
}
