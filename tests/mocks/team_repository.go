package mocks

import (
	"context"

	"pelada-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *TeamRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Team, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Team, int64, error) {
	args := m.Called(ctx, city, params)
	return args.Get(0).([]domain.Team), args.Get(1).(int64), args.Error(2)
}

func (m *TeamRepository) SetCrestURL(ctx context.Context, id uuid.UUID, crestURL string) error {
	args := m.Called(ctx, id, crestURL)
	return args.Error(0)
}

func (m *TeamRepository) Standings(ctx context.Context, limit int) ([]domain.TeamStanding, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.TeamStanding), args.Error(1)
}
