package mocks

import (
	"context"

	"pelada-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *PostRepository) List(ctx context.Context, teamID *uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	args := m.Called(ctx, teamID, params)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
