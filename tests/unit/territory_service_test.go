package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/territory"
	"pelada-hub/tests/mocks"
)

func TestTerritoryService_Nearby_NoRedis(t *testing.T) {
	ctx := context.Background()
	courtRepo := new(mocks.CourtRepository)
	svc := territory.NewService(courtRepo, nil)

	_, err := svc.Nearby(ctx, -23.55, -46.63, 10, 20)

	assert.ErrorIs(t, err, territory.ErrGeoIndexUnavailable)
	courtRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestTerritoryService_Map_NoRedis(t *testing.T) {
	ctx := context.Background()
	courtRepo := new(mocks.CourtRepository)
	svc := territory.NewService(courtRepo, nil)

	standings := []domain.TerritoryStanding{
		{CourtID: uuid.New(), CourtName: "Quadra do Parque"},
	}
	courtRepo.On("TerritoryStandings", ctx).Return(standings, nil).Once()

	got, err := svc.Map(ctx)

	assert.NoError(t, err)
	assert.Equal(t, standings, got)
	courtRepo.AssertExpectations(t)
}

func TestTerritoryService_CreateCourt_NoRedis(t *testing.T) {
	ctx := context.Background()
	courtRepo := new(mocks.CourtRepository)
	svc := territory.NewService(courtRepo, nil)
	creatorID := uuid.New()

	courtRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	court, err := svc.CreateCourt(ctx, creatorID, domain.CreateCourtInput{
		Name:      "Arena Vila Nova",
		Address:   "Rua das Palmeiras, 120",
		City:      "São Paulo",
		Latitude:  -23.55,
		Longitude: -46.63,
	})

	assert.NoError(t, err)
	assert.Equal(t, creatorID, court.CreatedBy)
	assert.NotEqual(t, uuid.Nil, court.ID)
	courtRepo.AssertExpectations(t)
}

func TestTerritoryService_DeleteCourt(t *testing.T) {
	ctx := context.Background()

	t.Run("existing court", func(t *testing.T) {
		courtRepo := new(mocks.CourtRepository)
		svc := territory.NewService(courtRepo, nil)
		id := uuid.New()

		courtRepo.On("GetByID", ctx, id).Return(&domain.Court{ID: id}, nil).Once()
		courtRepo.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.DeleteCourt(ctx, id))
		courtRepo.AssertExpectations(t)
	})

	t.Run("unknown court", func(t *testing.T) {
		courtRepo := new(mocks.CourtRepository)
		svc := territory.NewService(courtRepo, nil)
		id := uuid.New()

		courtRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.DeleteCourt(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCourtNotFound)
		courtRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
