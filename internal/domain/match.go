package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchConflict       = errors.New("match was modified by someone else")
	ErrInvalidTransition   = errors.New("match status does not allow this action")
	ErrNotMatchParticipant = errors.New("team is not part of this match")
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "PENDING"
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchCancelled MatchStatus = "CANCELLED"
	MatchFinished  MatchStatus = "FINISHED"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchPending, MatchScheduled, MatchCancelled, MatchFinished:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the negotiation workflow defines no further
// transition out of this status.
func (s MatchStatus) IsTerminal() bool {
	switch s {
	case MatchCancelled, MatchFinished:
		return true
	case MatchPending, MatchScheduled:
		return false
	default:
		return false
	}
}

// Match is one fixture between two teams. AwayTeamID is nil when the
// opponent is an informal side that is not registered on the platform; in
// that case no invite can be delivered and the workflow has no automated
// transitions.
type Match struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Date            time.Time   `json:"date" db:"date"`
	LocationName    string      `json:"location_name" db:"location_name"`
	CourtID         *uuid.UUID  `json:"court_id,omitempty" db:"court_id"`
	HomeTeamID      uuid.UUID   `json:"home_team_id" db:"home_team_id"`
	AwayTeamID      *uuid.UUID  `json:"away_team_id,omitempty" db:"away_team_id"`
	AwayTeamName    string      `json:"away_team_name" db:"away_team_name"`
	HomeScore       *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore       *int        `json:"away_score,omitempty" db:"away_score"`
	Status          MatchStatus `json:"status" db:"status"`
	IsVerified      bool        `json:"is_verified" db:"is_verified"`
	UpdatedByTeamID uuid.UUID   `json:"updated_by_team_id" db:"updated_by_team_id"`
	// Version is bumped on every negotiation write; transitions carry the
	// version they read so a stale write is rejected instead of silently
	// overwriting a concurrent accept/decline/counter.
	Version   int        `json:"version" db:"version"`
	Goals     []Goal     `json:"goals,omitempty" db:"-"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Goal is a single scoring event, recorded only once a match is FINISHED.
type Goal struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	MatchID  uuid.UUID  `json:"match_id" db:"match_id"`
	TeamSide string     `json:"team_side" db:"team_side"` // "home" or "away"
	PlayerID *uuid.UUID `json:"player_id,omitempty" db:"player_id"`
	Scorer   string     `json:"scorer" db:"scorer"`
	Minute   *int       `json:"minute,omitempty" db:"minute"`
}

type CreateMatchInput struct {
	Date         time.Time   `json:"date" validate:"required"`
	LocationName string      `json:"location_name" validate:"required"`
	CourtID      *uuid.UUID  `json:"court_id,omitempty"`
	HomeTeamID   uuid.UUID   `json:"home_team_id" validate:"required"`
	AwayTeamID   *uuid.UUID  `json:"away_team_id,omitempty"`
	AwayTeamName string      `json:"away_team_name" validate:"required"`
	Status       MatchStatus `json:"status" validate:"required,oneof=PENDING SCHEDULED"`
}

type CounterProposalInput struct {
	NewDate         time.Time `json:"new_date" validate:"required"`
	ProposingTeamID uuid.UUID `json:"proposing_team_id" validate:"required"`
}

type GoalInput struct {
	TeamSide string     `json:"team_side" validate:"required,oneof=home away"`
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
	Scorer   string     `json:"scorer" validate:"required"`
	Minute   *int       `json:"minute,omitempty" validate:"omitempty,min=0,max=130"`
}

type RecordResultInput struct {
	HomeScore int         `json:"home_score" validate:"min=0"`
	AwayScore int         `json:"away_score" validate:"min=0"`
	Goals     []GoalInput `json:"goals,omitempty" validate:"dive"`
}

type MatchListFilter struct {
	TeamID   *uuid.UUID
	CourtID  *uuid.UUID
	Status   *MatchStatus
	Upcoming bool
}
