package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Team         TeamRepository
	Match        MatchRepository
	Notification NotificationRepository
	Court        CourtRepository
	Post         PostRepository
	Transfer     TransferRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Team:         NewTeamRepository(db),
		Match:        NewMatchRepository(db),
		Notification: NewNotificationRepository(db),
		Court:        NewCourtRepository(db),
		Post:         NewPostRepository(db),
		Transfer:     NewTransferRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
