package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pelada-hub/internal/domain"
)

type TransferRepository interface {
	CreateListing(ctx context.Context, listing *domain.TransferListing) error
	GetListing(ctx context.Context, id uuid.UUID) (*domain.TransferListing, error)
	ListListings(ctx context.Context, status *domain.ListingStatus, params domain.PaginationParams) ([]domain.TransferListing, int64, error)
	CloseListing(ctx context.Context, id uuid.UUID) error

	CreateOffer(ctx context.Context, offer *domain.TransferOffer, notif *domain.Notification) error
	GetOffer(ctx context.Context, id uuid.UUID) (*domain.TransferOffer, error)
	ListOffers(ctx context.Context, listingID uuid.UUID) ([]domain.TransferOffer, error)
	// UpdateOfferStatus flips a PENDING offer to its response status and
	// writes the reply notification atomically. Returns false when the
	// offer is no longer pending.
	UpdateOfferStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus, notif *domain.Notification) (bool, error)
}

type transferRepository struct {
	db *sqlx.DB
}

func NewTransferRepository(db *sqlx.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) CreateListing(ctx context.Context, listing *domain.TransferListing) error {
	query := `
		INSERT INTO transfer_listings (id, player_id, position, preferred_city, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.PlayerID, listing.Position, listing.PreferredCity,
		listing.Note, listing.Status,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
}

func (r *transferRepository) GetListing(ctx context.Context, id uuid.UUID) (*domain.TransferListing, error) {
	var listing domain.TransferListing
	query := `
		SELECT l.*, u.full_name AS player_name, u.avatar_url AS player_avatar
		FROM transfer_listings l
		JOIN users u ON u.id = l.player_id
		WHERE l.id = $1`

	err := r.db.GetContext(ctx, &listing, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *transferRepository) ListListings(ctx context.Context, status *domain.ListingStatus, params domain.PaginationParams) ([]domain.TransferListing, int64, error) {
	params.Validate()

	var total int64
	var listings []domain.TransferListing

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM transfer_listings WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT l.*, u.full_name AS player_name, u.avatar_url AS player_avatar
			FROM transfer_listings l
			JOIN users u ON u.id = l.player_id
			WHERE l.status = $1
			ORDER BY l.created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &listings, query, *status, params.PageSize, params.Offset())
		return listings, total, err
	}

	countQuery := `SELECT COUNT(*) FROM transfer_listings`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT l.*, u.full_name AS player_name, u.avatar_url AS player_avatar
		FROM transfer_listings l
		JOIN users u ON u.id = l.player_id
		ORDER BY l.created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &listings, query, params.PageSize, params.Offset())
	return listings, total, err
}

func (r *transferRepository) CloseListing(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE transfer_listings SET status = 'CLOSED', updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *transferRepository) CreateOffer(ctx context.Context, offer *domain.TransferOffer, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transfer_offers (id, listing_id, team_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		offer.ID, offer.ListingID, offer.TeamID, offer.Message, offer.Status,
	).Scan(&offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		return err
	}

	if notif != nil {
		if err := insertNotificationTx(ctx, tx, notif); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *transferRepository) GetOffer(ctx context.Context, id uuid.UUID) (*domain.TransferOffer, error) {
	var offer domain.TransferOffer
	query := `
		SELECT o.*, t.name AS team_name, t.crest_url AS team_crest
		FROM transfer_offers o
		JOIN teams t ON t.id = o.team_id
		WHERE o.id = $1`

	err := r.db.GetContext(ctx, &offer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *transferRepository) ListOffers(ctx context.Context, listingID uuid.UUID) ([]domain.TransferOffer, error) {
	var offers []domain.TransferOffer
	query := `
		SELECT o.*, t.name AS team_name, t.crest_url AS team_crest
		FROM transfer_offers o
		JOIN teams t ON t.id = o.team_id
		WHERE o.listing_id = $1
		ORDER BY o.created_at DESC`
	err := r.db.SelectContext(ctx, &offers, query, listingID)
	return offers, err
}

func (r *transferRepository) UpdateOfferStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus, notif *domain.Notification) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `
		UPDATE transfer_offers
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING updated_at`

	var updated struct {
		UpdatedAt sql.NullTime `db:"updated_at"`
	}
	err = tx.QueryRowxContext(ctx, query, id, status).Scan(&updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if notif != nil {
		if err := insertNotificationTx(ctx, tx, notif); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
