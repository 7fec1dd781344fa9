package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/notification"
	"pelada-hub/tests/mocks"
)

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("recipient marks their notification", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo)
		notifID := uuid.New()

		notifRepo.On("GetByID", ctx, notifID).
			Return(&domain.Notification{ID: notifID, UserID: userID}, nil).Once()
		notifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()

		assert.NoError(t, svc.MarkAsRead(ctx, notifID, userID))
		notifRepo.AssertExpectations(t)
	})

	t.Run("someone else's notification", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo)
		notifID := uuid.New()

		notifRepo.On("GetByID", ctx, notifID).
			Return(&domain.Notification{ID: notifID, UserID: uuid.New()}, nil).Once()

		err := svc.MarkAsRead(ctx, notifID, userID)

		assert.ErrorIs(t, err, notification.ErrNotRecipient)
		notifRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	})

	t.Run("unknown notification", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo)
		notifID := uuid.New()

		notifRepo.On("GetByID", ctx, notifID).Return(nil, nil).Once()

		err := svc.MarkAsRead(ctx, notifID, userID)
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	notifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(notifRepo)

	params := domain.PaginationParams{Page: 1, PageSize: 10}
	notifRepo.On("ListByUser", ctx, userID, true, params).
		Return([]domain.Notification{{ID: uuid.New(), UserID: userID}}, int64(1), nil).Once()

	resp, err := svc.List(ctx, userID, true, params)

	assert.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	notifRepo.AssertExpectations(t)
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	notifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(notifRepo)

	notifRepo.On("CountUnread", ctx, userID).Return(int64(7), nil).Once()

	count, err := svc.UnreadCount(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
