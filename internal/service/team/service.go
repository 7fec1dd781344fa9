package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pelada-hub/internal/config"
	"pelada-hub/internal/domain"
	"pelada-hub/internal/repository"
)

const standingsCacheKey = "rankings:table"

// ErrStorageUnavailable is returned when the app started without object
// storage and a crest upload is attempted anyway.
var ErrStorageUnavailable = errors.New("crest storage is unavailable")

type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateTeamInput) (*domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Team, error)
	Update(ctx context.Context, id, actorID uuid.UUID, input domain.UpdateTeamInput) (*domain.Team, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	List(ctx context.Context, city *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Team], error)
	UploadCrest(ctx context.Context, id, actorID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Team, error)
	Standings(ctx context.Context, limit int) ([]domain.TeamStanding, error)
}

type service struct {
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	minioClient *minio.Client
	redis       *redis.Client
	cfg         *config.Config
}

func NewService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, minioClient *minio.Client, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		minioClient: minioClient,
		redis:       redisClient,
		cfg:         cfg,
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateTeamInput) (*domain.Team, error) {
	taken, err := s.teamRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrTeamNameTaken
	}

	team := &domain.Team{
		ID:          uuid.New(),
		Name:        input.Name,
		City:        input.City,
		OwnerID:     ownerID,
		Bio:         input.Bio,
		FoundedYear: input.FoundedYear,
		HomeCourtID: input.HomeCourtID,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	// Registering a first team makes a player a team owner.
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err == nil && owner != nil && owner.Role == string(domain.RolePlayer) {
		if err := s.userRepo.AssignRole(ctx, ownerID, string(domain.RoleOwner)); err != nil {
			return nil, err
		}
	}

	return team, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}

func (s *service) GetMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Team, error) {
	return s.teamRepo.GetByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id, actorID uuid.UUID, input domain.UpdateTeamInput) (*domain.Team, error) {
	team, err := s.loadOwned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != team.Name {
		taken, err := s.teamRepo.ExistsByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrTeamNameTaken
		}
		team.Name = *input.Name
	}
	if input.City != nil {
		team.City = *input.City
	}
	if input.Bio != nil {
		team.Bio = *input.Bio
	}
	if input.FoundedYear != nil {
		team.FoundedYear = input.FoundedYear
	}
	if input.HomeCourtID != nil {
		team.HomeCourtID = *input.HomeCourtID
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, id, actorID); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, city *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Team], error) {
	teams, total, err := s.teamRepo.List(ctx, city, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Team]{}, err
	}
	return domain.NewPaginatedResponse(teams, params.Page, params.PageSize, total), nil
}

func (s *service) UploadCrest(ctx context.Context, id, actorID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Team, error) {
	if s.minioClient == nil {
		return nil, ErrStorageUnavailable
	}

	team, err := s.loadOwned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("crests/%s/%s", team.ID.String(), fileName)
	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest: %w", err)
	}

	crestURL := s.publicURL(storagePath)
	if err := s.teamRepo.SetCrestURL(ctx, team.ID, crestURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	team.CrestURL = &crestURL
	return team, nil
}

func (s *service) Standings(ctx context.Context, limit int) ([]domain.TeamStanding, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, standingsCacheKey).Result(); err == nil {
			var standings []domain.TeamStanding
			if json.Unmarshal([]byte(cached), &standings) == nil && len(standings) >= limit {
				return standings[:limit], nil
			}
		}
	}

	standings, err := s.teamRepo.Standings(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(standings); err == nil {
			_ = s.redis.Set(ctx, standingsCacheKey, data, 5*time.Minute).Err()
		}
	}

	return standings, nil
}

func (s *service) loadOwned(ctx context.Context, id, actorID uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	if team.OwnerID != actorID {
		return nil, domain.ErrNotTeamOwner
	}
	return team, nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
