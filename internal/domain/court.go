package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCourtNotFound = errors.New("court not found")

type Court struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Address   string     `json:"address" db:"address"`
	City      string     `json:"city" db:"city"`
	Latitude  float64    `json:"latitude" db:"latitude"`
	Longitude float64    `json:"longitude" db:"longitude"`
	Surface   *string    `json:"surface,omitempty" db:"surface"`
	PhotoURL  *string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedBy uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

type CreateCourtInput struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Address   string  `json:"address" validate:"required"`
	City      string  `json:"city" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	Surface   *string `json:"surface,omitempty" validate:"omitempty,oneof=grass synthetic concrete dirt indoor"`
}

// NearbyCourt is a court plus its distance from the search origin.
type NearbyCourt struct {
	Court
	DistanceKm float64 `json:"distance_km"`
}

// TerritoryStanding says which team dominates a court: the side with the
// most verified wins played there.
type TerritoryStanding struct {
	CourtID      uuid.UUID  `json:"court_id" db:"court_id"`
	CourtName    string     `json:"court_name" db:"court_name"`
	Latitude     float64    `json:"latitude" db:"latitude"`
	Longitude    float64    `json:"longitude" db:"longitude"`
	RulerTeamID  *uuid.UUID `json:"ruler_team_id,omitempty" db:"ruler_team_id"`
	RulerName    *string    `json:"ruler_name,omitempty" db:"ruler_name"`
	RulerCrest   *string    `json:"ruler_crest,omitempty" db:"ruler_crest"`
	WinsAtCourt  int        `json:"wins_at_court" db:"wins_at_court"`
	MatchesTotal int        `json:"matches_total" db:"matches_total"`
}
