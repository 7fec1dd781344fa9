package mocks

import (
	"context"

	"pelada-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CourtRepository struct {
	mock.Mock
}

func (m *CourtRepository) Create(ctx context.Context, court *domain.Court) error {
	args := m.Called(ctx, court)
	return args.Error(0)
}

func (m *CourtRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *CourtRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Court, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Court), args.Error(1)
}

func (m *CourtRepository) List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Court, int64, error) {
	args := m.Called(ctx, city, params)
	return args.Get(0).([]domain.Court), args.Get(1).(int64), args.Error(2)
}

func (m *CourtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CourtRepository) TerritoryStandings(ctx context.Context) ([]domain.TerritoryStanding, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TerritoryStanding), args.Error(1)
}
