package mocks

import (
	"context"

	"pelada-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MatchRepository struct {
	mock.Mock
}

func (m *MatchRepository) Create(ctx context.Context, match *domain.Match, notif *domain.Notification) error {
	args := m.Called(ctx, match, notif)
	return args.Error(0)
}

func (m *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func (m *MatchRepository) CompareAndSwap(ctx context.Context, match *domain.Match, expectedVersion int, notif *domain.Notification) (bool, error) {
	args := m.Called(ctx, match, expectedVersion, notif)
	return args.Bool(0), args.Error(1)
}

func (m *MatchRepository) SetResult(ctx context.Context, match *domain.Match, goals []domain.Goal, expectedVersion int, notif *domain.Notification) (bool, error) {
	args := m.Called(ctx, match, goals, expectedVersion, notif)
	return args.Bool(0), args.Error(1)
}

func (m *MatchRepository) List(ctx context.Context, filter domain.MatchListFilter, params domain.PaginationParams) ([]domain.Match, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Match), args.Get(1).(int64), args.Error(2)
}

func (m *MatchRepository) GetGoals(ctx context.Context, matchID uuid.UUID) ([]domain.Goal, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).([]domain.Goal), args.Error(1)
}
