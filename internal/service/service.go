package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pelada-hub/internal/config"
	"pelada-hub/internal/pkg/gemini"
	"pelada-hub/internal/repository"
	"pelada-hub/internal/service/auth"
	"pelada-hub/internal/service/crest"
	"pelada-hub/internal/service/email"
	"pelada-hub/internal/service/feed"
	"pelada-hub/internal/service/match"
	"pelada-hub/internal/service/notification"
	"pelada-hub/internal/service/team"
	"pelada-hub/internal/service/territory"
	"pelada-hub/internal/service/transfer"
)

type Services struct {
	Auth         auth.Service
	Team         team.Service
	Match        match.Service
	Notification notification.Service
	Territory    territory.Service
	Feed         feed.Service
	Transfer     transfer.Service
	Crest        crest.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, geminiClient *gemini.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	teamService := team.NewService(repos.Team, repos.User, minioClient, redisClient, cfg)
	matchService := match.NewService(repos.Match, repos.Team, repos.User, repos.Notification, repos.AuditLog, emailService, redisClient)
	notificationService := notification.NewService(repos.Notification)
	territoryService := territory.NewService(repos.Court, redisClient)
	feedService := feed.NewService(repos.Post, repos.Team, minioClient, redisClient, cfg)
	transferService := transfer.NewService(repos.Transfer, repos.Team, repos.User, repos.AuditLog, emailService)
	crestService := crest.NewService(repos.Team, geminiClient)

	return &Services{
		Auth:         authService,
		Team:         teamService,
		Match:        matchService,
		Notification: notificationService,
		Territory:    territoryService,
		Feed:         feedService,
		Transfer:     transferService,
		Crest:        crestService,
		Email:        emailService,
	}
}
