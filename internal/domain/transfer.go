package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("transfer listing not found")
	ErrListingClosed   = errors.New("transfer listing is closed")
	ErrOfferNotFound   = errors.New("transfer offer not found")
	ErrOfferNotPending = errors.New("transfer offer is no longer pending")
	ErrNotListingOwner = errors.New("user does not own this listing")
)

// TransferListing is a player advertising themselves on the market.
type TransferListing struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	PlayerID      uuid.UUID     `json:"player_id" db:"player_id"`
	Position      string        `json:"position" db:"position"`
	PreferredCity *string       `json:"preferred_city,omitempty" db:"preferred_city"`
	Note          *string       `json:"note,omitempty" db:"note"`
	Status        ListingStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`

	PlayerName   *string `json:"player_name,omitempty" db:"player_name"`
	PlayerAvatar *string `json:"player_avatar,omitempty" db:"player_avatar"`
}

type ListingStatus string

const (
	ListingOpen   ListingStatus = "OPEN"
	ListingClosed ListingStatus = "CLOSED"
)

// TransferOffer is a team inviting a listed player. It follows the same
// pending/response shape as a match invite, minus counter-proposals.
type TransferOffer struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	ListingID uuid.UUID   `json:"listing_id" db:"listing_id"`
	TeamID    uuid.UUID   `json:"team_id" db:"team_id"`
	Message   *string     `json:"message,omitempty" db:"message"`
	Status    OfferStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`

	TeamName  *string `json:"team_name,omitempty" db:"team_name"`
	TeamCrest *string `json:"team_crest,omitempty" db:"team_crest"`
}

type OfferStatus string

const (
	OfferPending  OfferStatus = "PENDING"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferDeclined OfferStatus = "DECLINED"
)

type CreateListingInput struct {
	Position      string  `json:"position" validate:"required,oneof=GOL ZAG LAT VOL MEI ATA"`
	PreferredCity *string `json:"preferred_city,omitempty"`
	Note          *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type CreateOfferInput struct {
	TeamID  uuid.UUID `json:"team_id" validate:"required"`
	Message *string   `json:"message,omitempty" validate:"omitempty,max=500"`
}
