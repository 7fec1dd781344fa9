package transfer

import (
	"context"

	"github.com/google/uuid"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/pkg/i18n"
	"pelada-hub/internal/repository"
	"pelada-hub/internal/service/email"
)

type Service interface {
	CreateListing(ctx context.Context, playerID uuid.UUID, input domain.CreateListingInput) (*domain.TransferListing, error)
	GetListing(ctx context.Context, id uuid.UUID) (*domain.TransferListing, error)
	ListListings(ctx context.Context, status *domain.ListingStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferListing], error)
	CloseListing(ctx context.Context, id, actorID uuid.UUID) error
	MakeOffer(ctx context.Context, listingID, actorID uuid.UUID, input domain.CreateOfferInput) (*domain.TransferOffer, error)
	ListOffers(ctx context.Context, listingID, actorID uuid.UUID) ([]domain.TransferOffer, error)
	RespondToOffer(ctx context.Context, offerID, actorID uuid.UUID, accept bool) (*domain.TransferOffer, error)
}

type service struct {
	transferRepo repository.TransferRepository
	teamRepo     repository.TeamRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	emailSvc     email.Service
}

func NewService(
	transferRepo repository.TransferRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc email.Service,
) Service {
	return &service{
		transferRepo: transferRepo,
		teamRepo:     teamRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) CreateListing(ctx context.Context, playerID uuid.UUID, input domain.CreateListingInput) (*domain.TransferListing, error) {
	listing := &domain.TransferListing{
		ID:            uuid.New(),
		PlayerID:      playerID,
		Position:      input.Position,
		PreferredCity: input.PreferredCity,
		Note:          input.Note,
		Status:        domain.ListingOpen,
	}

	if err := s.transferRepo.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     playerID,
		Action:     "CREATE_LISTING",
		EntityType: "TRANSFER_LISTING",
		EntityID:   listing.ID,
		NewValue:   map[string]string{"position": listing.Position},
	})

	return listing, nil
}

func (s *service) GetListing(ctx context.Context, id uuid.UUID) (*domain.TransferListing, error) {
	listing, err := s.transferRepo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

func (s *service) ListListings(ctx context.Context, status *domain.ListingStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferListing], error) {
	listings, total, err := s.transferRepo.ListListings(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.TransferListing]{}, err
	}
	return domain.NewPaginatedResponse(listings, params.Page, params.PageSize, total), nil
}

func (s *service) CloseListing(ctx context.Context, id, actorID uuid.UUID) error {
	listing, err := s.transferRepo.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if listing == nil {
		return domain.ErrListingNotFound
	}
	if listing.PlayerID != actorID {
		return domain.ErrNotListingOwner
	}
	if listing.Status != domain.ListingOpen {
		return domain.ErrListingClosed
	}
	return s.transferRepo.CloseListing(ctx, id)
}

func (s *service) MakeOffer(ctx context.Context, listingID, actorID uuid.UUID, input domain.CreateOfferInput) (*domain.TransferOffer, error) {
	listing, err := s.transferRepo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	if listing.Status != domain.ListingOpen {
		return nil, domain.ErrListingClosed
	}

	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	if team.OwnerID != actorID {
		return nil, domain.ErrNotTeamOwner
	}

	offer := &domain.TransferOffer{
		ID:        uuid.New(),
		ListingID: listing.ID,
		TeamID:    team.ID,
		Message:   input.Message,
		Status:    domain.OfferPending,
	}

	notif := &domain.Notification{
		ID:           uuid.New(),
		UserID:       listing.PlayerID,
		Type:         domain.NotifTransferOffer,
		Title:        i18n.T("notif.transfer_offer.title"),
		Message:      i18n.Tf("notif.transfer_offer.message", team.Name),
		RelatedID:    &offer.ID,
		RelatedImage: team.CrestURL,
	}

	if err := s.transferRepo.CreateOffer(ctx, offer, notif); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorID,
		Action:     "MAKE_OFFER",
		EntityType: "TRANSFER_OFFER",
		EntityID:   offer.ID,
		NewValue:   map[string]string{"status": string(domain.OfferPending)},
	})

	if s.emailSvc != nil {
		if player, err := s.userRepo.GetByID(ctx, listing.PlayerID); err == nil && player != nil {
			go func(toEmail, playerName, teamName string) {
				ctx := context.Background()
				_ = s.emailSvc.SendTransferOfferEmail(ctx, toEmail, playerName, teamName)
			}(player.Email, player.FullName, team.Name)
		}
	}

	return offer, nil
}

func (s *service) ListOffers(ctx context.Context, listingID, actorID uuid.UUID) ([]domain.TransferOffer, error) {
	listing, err := s.transferRepo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	if listing.PlayerID != actorID {
		return nil, domain.ErrNotListingOwner
	}
	return s.transferRepo.ListOffers(ctx, listingID)
}

func (s *service) RespondToOffer(ctx context.Context, offerID, actorID uuid.UUID, accept bool) (*domain.TransferOffer, error) {
	offer, err := s.transferRepo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrOfferNotFound
	}

	listing, err := s.transferRepo.GetListing(ctx, offer.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrListingNotFound
	}
	if listing.PlayerID != actorID {
		return nil, domain.ErrNotListingOwner
	}
	if offer.Status != domain.OfferPending {
		return nil, domain.ErrOfferNotPending
	}

	team, err := s.teamRepo.GetByID(ctx, offer.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}

	newStatus := domain.OfferDeclined
	messageKey := "notif.transfer_reply.declined"
	if accept {
		newStatus = domain.OfferAccepted
		messageKey = "notif.transfer_reply.accepted"
	}

	player, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	playerName := ""
	if player != nil {
		playerName = player.FullName
	}

	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    team.OwnerID,
		Type:      domain.NotifTransferReply,
		Title:     i18n.T("notif.transfer_reply.title"),
		Message:   i18n.Tf(messageKey, playerName),
		RelatedID: &offer.ID,
	}

	ok, err := s.transferRepo.UpdateOfferStatus(ctx, offer.ID, newStatus, notif)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another response to the same offer.
		return nil, domain.ErrOfferNotPending
	}
	offer.Status = newStatus

	if accept {
		if err := s.transferRepo.CloseListing(ctx, listing.ID); err != nil {
			return nil, err
		}
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorID,
		Action:     "RESPOND_OFFER",
		EntityType: "TRANSFER_OFFER",
		EntityID:   offer.ID,
		OldValue:   map[string]string{"status": string(domain.OfferPending)},
		NewValue:   map[string]string{"status": string(newStatus)},
	})

	return offer, nil
}
