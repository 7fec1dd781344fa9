package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/auth"
	"pelada-hub/tests/mocks"
)

type authFixture struct {
	userRepo    *mocks.UserRepository
	sessionRepo *mocks.SessionRepository
	svc         auth.Service
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    new(mocks.UserRepository),
		sessionRepo: new(mocks.SessionRepository),
	}
	f.svc = auth.NewService(f.userRepo, f.sessionRepo, nil, nil)
	return f
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update touches only the sent fields", func(t *testing.T) {
		f := newAuthFixture()
		userID := uuid.New()
		existing := &domain.User{ID: userID, FullName: "Carlos Silva", City: stringPtr("Santos")}

		f.userRepo.On("GetByID", ctx, userID).Return(existing, nil).Once()
		f.userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		nickname := stringPtr("Carlão")
		updated, err := f.svc.UpdateProfile(ctx, userID, domain.UpdateUserInput{
			Nickname: &nickname,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Carlão", *updated.Nickname)
		assert.Equal(t, "Carlos Silva", updated.FullName)
		assert.Equal(t, "Santos", *updated.City)
		f.sessionRepo.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
	})

	t.Run("password change revokes other sessions", func(t *testing.T) {
		f := newAuthFixture()
		userID := uuid.New()
		existing := &domain.User{ID: userID, FullName: "Carlos Silva"}

		f.userRepo.On("GetByID", ctx, userID).Return(existing, nil).Once()
		f.userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		f.sessionRepo.On("RevokeAllForUser", ctx, userID).Return(nil).Once()

		updated, err := f.svc.UpdateProfile(ctx, userID, domain.UpdateUserInput{
			Password: stringPtr("nova-senha-123"),
		})

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("nova-senha-123")))
		f.sessionRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()
		userID := uuid.New()

		f.userRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		_, err := f.svc.UpdateProfile(ctx, userID, domain.UpdateUserInput{})

		assert.ErrorIs(t, err, auth.ErrUserNotFound)
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthService_DeactivateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the user and revokes all sessions", func(t *testing.T) {
		f := newAuthFixture()
		userID := uuid.New()

		f.userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()
		f.userRepo.On("Delete", ctx, userID).Return(nil).Once()
		f.sessionRepo.On("RevokeAllForUser", ctx, userID).Return(nil).Once()

		assert.NoError(t, f.svc.DeactivateAccount(ctx, userID))
		f.userRepo.AssertExpectations(t)
		f.sessionRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()
		userID := uuid.New()

		f.userRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		err := f.svc.DeactivateAccount(ctx, userID)

		assert.ErrorIs(t, err, auth.ErrUserNotFound)
		f.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
