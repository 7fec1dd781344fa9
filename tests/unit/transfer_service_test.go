package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/transfer"
	"pelada-hub/tests/mocks"
)

type transferFixture struct {
	transferRepo *mocks.TransferRepository
	teamRepo     *mocks.TeamRepository
	userRepo     *mocks.UserRepository
	auditRepo    *mocks.AuditLogRepository
	svc          transfer.Service

	playerID uuid.UUID
	team     *domain.Team
}

func newTransferFixture() *transferFixture {
	f := &transferFixture{
		transferRepo: new(mocks.TransferRepository),
		teamRepo:     new(mocks.TeamRepository),
		userRepo:     new(mocks.UserRepository),
		auditRepo:    new(mocks.AuditLogRepository),
		playerID:     uuid.New(),
	}
	f.team = &domain.Team{ID: uuid.New(), Name: "Galáticos FC", OwnerID: uuid.New()}
	f.svc = transfer.NewService(f.transferRepo, f.teamRepo, f.userRepo, f.auditRepo, nil)
	return f
}

func (f *transferFixture) openListing() *domain.TransferListing {
	return &domain.TransferListing{
		ID:       uuid.New(),
		PlayerID: f.playerID,
		Position: "MEI",
		Status:   domain.ListingOpen,
	}
}

func TestTransferService_CreateListing(t *testing.T) {
	ctx := context.Background()
	f := newTransferFixture()

	f.transferRepo.On("CreateListing", ctx, mock.Anything).Return(nil).Once()
	f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	listing, err := f.svc.CreateListing(ctx, f.playerID, domain.CreateListingInput{
		Position: "ATA",
		Note:     stringPtr("Jogo aos sábados"),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ListingOpen, listing.Status)
	assert.Equal(t, f.playerID, listing.PlayerID)
	f.transferRepo.AssertExpectations(t)
}

func TestTransferService_MakeOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("offer notifies the listed player", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()

		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.team.ID).Return(f.team, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedNotif *domain.Notification
		f.transferRepo.On("CreateOffer", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedNotif = args.Get(2).(*domain.Notification)
			}).
			Return(nil).Once()

		offer, err := f.svc.MakeOffer(ctx, listing.ID, f.team.OwnerID, domain.CreateOfferInput{
			TeamID: f.team.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.OfferPending, offer.Status)
		assert.Equal(t, listing.ID, offer.ListingID)

		assert.NotNil(t, capturedNotif)
		assert.Equal(t, f.playerID, capturedNotif.UserID)
		assert.Equal(t, domain.NotifTransferOffer, capturedNotif.Type)

		f.transferRepo.AssertExpectations(t)
	})

	t.Run("closed listing takes no offers", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		listing.Status = domain.ListingClosed

		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()

		_, err := f.svc.MakeOffer(ctx, listing.ID, f.team.OwnerID, domain.CreateOfferInput{TeamID: f.team.ID})

		assert.ErrorIs(t, err, domain.ErrListingClosed)
		f.transferRepo.AssertNotCalled(t, "CreateOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only the team owner may offer", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()

		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.team.ID).Return(f.team, nil).Once()

		_, err := f.svc.MakeOffer(ctx, listing.ID, uuid.New(), domain.CreateOfferInput{TeamID: f.team.ID})

		assert.ErrorIs(t, err, domain.ErrNotTeamOwner)
	})
}

func TestTransferService_RespondToOffer(t *testing.T) {
	ctx := context.Background()

	setup := func(f *transferFixture, listing *domain.TransferListing, offer *domain.TransferOffer) {
		f.transferRepo.On("GetOffer", ctx, offer.ID).Return(offer, nil).Once()
		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()
	}

	t.Run("accept closes the listing", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		offer := &domain.TransferOffer{ID: uuid.New(), ListingID: listing.ID, TeamID: f.team.ID, Status: domain.OfferPending}

		setup(f, listing, offer)
		f.teamRepo.On("GetByID", ctx, f.team.ID).Return(f.team, nil).Once()
		f.userRepo.On("GetByID", ctx, f.playerID).
			Return(&domain.User{ID: f.playerID, FullName: "Carlão"}, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedNotif *domain.Notification
		f.transferRepo.On("UpdateOfferStatus", ctx, offer.ID, domain.OfferAccepted, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedNotif = args.Get(3).(*domain.Notification)
			}).
			Return(true, nil).Once()
		f.transferRepo.On("CloseListing", ctx, listing.ID).Return(nil).Once()

		updated, err := f.svc.RespondToOffer(ctx, offer.ID, f.playerID, true)

		assert.NoError(t, err)
		assert.Equal(t, domain.OfferAccepted, updated.Status)
		assert.Equal(t, f.team.OwnerID, capturedNotif.UserID)
		assert.Equal(t, domain.NotifTransferReply, capturedNotif.Type)
		f.transferRepo.AssertExpectations(t)
	})

	t.Run("decline leaves the listing open", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		offer := &domain.TransferOffer{ID: uuid.New(), ListingID: listing.ID, TeamID: f.team.ID, Status: domain.OfferPending}

		setup(f, listing, offer)
		f.teamRepo.On("GetByID", ctx, f.team.ID).Return(f.team, nil).Once()
		f.userRepo.On("GetByID", ctx, f.playerID).
			Return(&domain.User{ID: f.playerID, FullName: "Carlão"}, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.transferRepo.On("UpdateOfferStatus", ctx, offer.ID, domain.OfferDeclined, mock.Anything).
			Return(true, nil).Once()

		updated, err := f.svc.RespondToOffer(ctx, offer.ID, f.playerID, false)

		assert.NoError(t, err)
		assert.Equal(t, domain.OfferDeclined, updated.Status)
		f.transferRepo.AssertNotCalled(t, "CloseListing", mock.Anything, mock.Anything)
	})

	t.Run("only the listing owner may respond", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		offer := &domain.TransferOffer{ID: uuid.New(), ListingID: listing.ID, TeamID: f.team.ID, Status: domain.OfferPending}

		setup(f, listing, offer)

		_, err := f.svc.RespondToOffer(ctx, offer.ID, uuid.New(), true)

		assert.ErrorIs(t, err, domain.ErrNotListingOwner)
	})

	t.Run("answered offers stay answered", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		offer := &domain.TransferOffer{ID: uuid.New(), ListingID: listing.ID, TeamID: f.team.ID, Status: domain.OfferDeclined}

		setup(f, listing, offer)

		_, err := f.svc.RespondToOffer(ctx, offer.ID, f.playerID, true)

		assert.ErrorIs(t, err, domain.ErrOfferNotPending)
		f.transferRepo.AssertNotCalled(t, "UpdateOfferStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race on the status flip", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		offer := &domain.TransferOffer{ID: uuid.New(), ListingID: listing.ID, TeamID: f.team.ID, Status: domain.OfferPending}

		setup(f, listing, offer)
		f.teamRepo.On("GetByID", ctx, f.team.ID).Return(f.team, nil).Once()
		f.userRepo.On("GetByID", ctx, f.playerID).
			Return(&domain.User{ID: f.playerID, FullName: "Carlão"}, nil).Once()
		f.transferRepo.On("UpdateOfferStatus", ctx, offer.ID, domain.OfferAccepted, mock.Anything).
			Return(false, nil).Once()

		_, err := f.svc.RespondToOffer(ctx, offer.ID, f.playerID, true)

		assert.ErrorIs(t, err, domain.ErrOfferNotPending)
		f.transferRepo.AssertNotCalled(t, "CloseListing", mock.Anything, mock.Anything)
	})
}

func TestTransferService_CloseListing(t *testing.T) {
	ctx := context.Background()

	t.Run("owner closes an open listing", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()

		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()
		f.transferRepo.On("CloseListing", ctx, listing.ID).Return(nil).Once()

		assert.NoError(t, f.svc.CloseListing(ctx, listing.ID, f.playerID))
		f.transferRepo.AssertExpectations(t)
	})

	t.Run("already closed", func(t *testing.T) {
		f := newTransferFixture()
		listing := f.openListing()
		listing.Status = domain.ListingClosed

		f.transferRepo.On("GetListing", ctx, listing.ID).Return(listing, nil).Once()

		err := f.svc.CloseListing(ctx, listing.ID, f.playerID)
		assert.ErrorIs(t, err, domain.ErrListingClosed)
	})
}
