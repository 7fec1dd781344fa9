package unit_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/team"
	"pelada-hub/tests/mocks"
)

type teamFixture struct {
	teamRepo *mocks.TeamRepository
	userRepo *mocks.UserRepository
	svc      team.Service
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		teamRepo: new(mocks.TeamRepository),
		userRepo: new(mocks.UserRepository),
	}
	f.svc = team.NewService(f.teamRepo, f.userRepo, nil, nil, nil)
	return f
}

func TestTeamService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first team promotes the player to owner", func(t *testing.T) {
		f := newTeamFixture()
		ownerID := uuid.New()

		f.teamRepo.On("ExistsByName", ctx, "Unidos da Vila").Return(false, nil).Once()
		f.teamRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, ownerID).
			Return(&domain.User{ID: ownerID, Role: string(domain.RolePlayer)}, nil).Once()
		f.userRepo.On("AssignRole", ctx, ownerID, string(domain.RoleOwner)).Return(nil).Once()

		created, err := f.svc.Create(ctx, ownerID, domain.CreateTeamInput{
			Name: "Unidos da Vila",
			City: "São Paulo",
		})

		assert.NoError(t, err)
		assert.Equal(t, ownerID, created.OwnerID)
		assert.NotEqual(t, uuid.Nil, created.ID)
		f.teamRepo.AssertExpectations(t)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("existing owner keeps their role", func(t *testing.T) {
		f := newTeamFixture()
		ownerID := uuid.New()

		f.teamRepo.On("ExistsByName", ctx, "Galáticos FC").Return(false, nil).Once()
		f.teamRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, ownerID).
			Return(&domain.User{ID: ownerID, Role: string(domain.RoleOwner)}, nil).Once()

		_, err := f.svc.Create(ctx, ownerID, domain.CreateTeamInput{
			Name: "Galáticos FC",
			City: "Campinas",
		})

		assert.NoError(t, err)
		f.userRepo.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newTeamFixture()

		f.teamRepo.On("ExistsByName", ctx, "Unidos da Vila").Return(true, nil).Once()

		_, err := f.svc.Create(ctx, uuid.New(), domain.CreateTeamInput{
			Name: "Unidos da Vila",
			City: "São Paulo",
		})

		assert.ErrorIs(t, err, domain.ErrTeamNameTaken)
		f.teamRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTeamService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner may update", func(t *testing.T) {
		f := newTeamFixture()
		existing := &domain.Team{ID: uuid.New(), Name: "Unidos da Vila", OwnerID: uuid.New()}

		f.teamRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()

		_, err := f.svc.Update(ctx, existing.ID, uuid.New(), domain.UpdateTeamInput{
			City: stringPtr("Santos"),
		})

		assert.ErrorIs(t, err, domain.ErrNotTeamOwner)
		f.teamRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rename checks availability", func(t *testing.T) {
		f := newTeamFixture()
		ownerID := uuid.New()
		existing := &domain.Team{ID: uuid.New(), Name: "Unidos da Vila", OwnerID: ownerID}

		f.teamRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		f.teamRepo.On("ExistsByName", ctx, "Galáticos FC").Return(true, nil).Once()

		_, err := f.svc.Update(ctx, existing.ID, ownerID, domain.UpdateTeamInput{
			Name: stringPtr("Galáticos FC"),
		})

		assert.ErrorIs(t, err, domain.ErrTeamNameTaken)
	})
}

func TestTeamService_UploadCrest_NoStorage(t *testing.T) {
	ctx := context.Background()
	f := newTeamFixture()

	_, err := f.svc.UploadCrest(ctx, uuid.New(), uuid.New(), "crest.png", 1024, "image/png", strings.NewReader("png-bytes"))

	assert.ErrorIs(t, err, team.ErrStorageUnavailable)
	f.teamRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTeamService_Standings_NoRedis(t *testing.T) {
	ctx := context.Background()
	f := newTeamFixture()

	standings := []domain.TeamStanding{
		{TeamID: uuid.New(), TeamName: "Unidos da Vila", Wins: 5, Points: 16},
		{TeamID: uuid.New(), TeamName: "Galáticos FC", Wins: 4, Points: 13},
	}
	f.teamRepo.On("Standings", ctx, 10).Return(standings, nil).Once()

	got, err := f.svc.Standings(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, standings, got)
	f.teamRepo.AssertExpectations(t)
}
