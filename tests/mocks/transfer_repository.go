package mocks

import (
	"context"

	"pelada-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TransferRepository struct {
	mock.Mock
}

func (m *TransferRepository) CreateListing(ctx context.Context, listing *domain.TransferListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *TransferRepository) GetListing(ctx context.Context, id uuid.UUID) (*domain.TransferListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferListing), args.Error(1)
}

func (m *TransferRepository) ListListings(ctx context.Context, status *domain.ListingStatus, params domain.PaginationParams) ([]domain.TransferListing, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.TransferListing), args.Get(1).(int64), args.Error(2)
}

func (m *TransferRepository) CloseListing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TransferRepository) CreateOffer(ctx context.Context, offer *domain.TransferOffer, notif *domain.Notification) error {
	args := m.Called(ctx, offer, notif)
	return args.Error(0)
}

func (m *TransferRepository) GetOffer(ctx context.Context, id uuid.UUID) (*domain.TransferOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferOffer), args.Error(1)
}

func (m *TransferRepository) ListOffers(ctx context.Context, listingID uuid.UUID) ([]domain.TransferOffer, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).([]domain.TransferOffer), args.Error(1)
}

func (m *TransferRepository) UpdateOfferStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus, notif *domain.Notification) (bool, error) {
	args := m.Called(ctx, id, status, notif)
	return args.Bool(0), args.Error(1)
}
