package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrNotTeamOwner  = errors.New("user does not own this team")
	ErrTeamNameTaken = errors.New("team name already taken")
)

type Team struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	City        string     `json:"city" db:"city"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	CrestURL    *string    `json:"crest_url,omitempty" db:"crest_url"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	FoundedYear *int       `json:"founded_year,omitempty" db:"founded_year"`
	HomeCourtID *uuid.UUID `json:"home_court_id,omitempty" db:"home_court_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

type CreateTeamInput struct {
	Name        string     `json:"name" validate:"required,min=2,max=60"`
	City        string     `json:"city" validate:"required,min=2"`
	Bio         *string    `json:"bio,omitempty" validate:"omitempty,max=500"`
	FoundedYear *int       `json:"founded_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	HomeCourtID *uuid.UUID `json:"home_court_id,omitempty"`
}

type UpdateTeamInput struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	City        *string     `json:"city,omitempty" validate:"omitempty,min=2"`
	Bio         **string    `json:"bio,omitempty"`
	FoundedYear *int        `json:"founded_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	HomeCourtID **uuid.UUID `json:"home_court_id,omitempty"`
}

// TeamStanding is one row of the win/draw/loss ranking table.
type TeamStanding struct {
	TeamID   uuid.UUID `json:"team_id" db:"team_id"`
	TeamName string    `json:"team_name" db:"team_name"`
	CrestURL *string   `json:"crest_url,omitempty" db:"crest_url"`
	Played   int       `json:"played" db:"played"`
	Wins     int       `json:"wins" db:"wins"`
	Draws    int       `json:"draws" db:"draws"`
	Losses   int       `json:"losses" db:"losses"`
	Points   int       `json:"points" db:"points"`
}
