package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	UserID       uuid.UUID        `json:"user_id" db:"user_id"`
	Type         NotificationType `json:"type" db:"type"`
	Title        string           `json:"title" db:"title"`
	Message      string           `json:"message" db:"message"`
	RelatedID    *uuid.UUID       `json:"related_id,omitempty" db:"related_id"`
	RelatedImage *string          `json:"related_image,omitempty" db:"related_image"`
	ActionData   json.RawMessage  `json:"action_data,omitempty" db:"action_data"`
	IsRead       bool             `json:"is_read" db:"is_read"`
	ReadAt       *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifMatchInvite   NotificationType = "MATCH_INVITE"
	NotifMatchUpdate   NotificationType = "MATCH_UPDATE"
	NotifMatchResult   NotificationType = "MATCH_RESULT"
	NotifTransferOffer NotificationType = "TRANSFER_OFFER"
	NotifTransferReply NotificationType = "TRANSFER_REPLY"
)

// MatchActionData is the actionable payload carried by match notifications.
// TeamID identifies the side proposing in this round; ProposedDate is set
// only on counter-proposals.
type MatchActionData struct {
	MatchID      uuid.UUID  `json:"match_id"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
	ProposedDate *time.Time `json:"proposed_date,omitempty"`
}

func (d MatchActionData) Marshal() json.RawMessage {
	raw, _ := json.Marshal(d)
	return raw
}
