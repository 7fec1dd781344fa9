package feed

import (
	"context"
	"encoding/json"
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

const (
	feedCacheKey = "feed:recent"
	feedCacheTTL = 5 * time.Minute
)

type Service interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput, image *PostImage) (*domain.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, teamID *uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error)
	DeletePost(ctx context.Context, id, actorID uuid.UUID) error
}

// PostImage carries an optional image attachment for a new post.
type PostImage struct {
	FileName string
	FileSize int64
	MimeType string
	Reader   io.Reader
}

type service struct {
	postRepo    repository.PostRepository
	teamRepo    repository.TeamRepository
	minioClient *minio.Client
	redis       *redis.Client
	cfg         *config.Config
}

func NewService(postRepo repository.PostRepository, teamRepo repository.TeamRepository, minioClient *minio.Client, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		postRepo:    postRepo,
		teamRepo:    teamRepo,
		minioClient: minioClient,
		redis:       redisClient,
		cfg:         cfg,
	}
}

func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput, image *PostImage) (*domain.Post, error) {
	if input.TeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *input.TeamID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, domain.ErrTeamNotFound
		}
		if team.OwnerID != authorID {
			return nil, domain.ErrNotTeamOwner
		}
	}

	post := &domain.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		TeamID:   input.TeamID,
		Text:     input.Text,
	}

	var storagePath string
	if image != nil && s.minioClient != nil {
		storagePath = fmt.Sprintf("feed/%s/%s", time.Now().Format("2006/01"), post.ID.String())
		_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, image.Reader, image.FileSize, minio.PutObjectOptions{
			ContentType: image.MimeType,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload post image: %w", err)
		}
		imageURL := s.publicURL(storagePath)
		post.ImageURL = &imageURL
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if storagePath != "" {
			_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	return post, nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *service) List(ctx context.Context, teamID *uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error) {
	params.Validate()

	// Only the global first page is cached, which is what the feed screen
	// hits on every open.
	cacheable := s.redis != nil && teamID == nil && params.Page == 1 && params.PageSize == 20
	if cacheable {
		if cached, err := s.redis.Get(ctx, feedCacheKey).Result(); err == nil {
			var resp domain.PaginatedResponse[domain.Post]
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	posts, total, err := s.postRepo.List(ctx, teamID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Post]{}, err
	}
	resp := domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total)

	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.redis.Set(ctx, feedCacheKey, data, feedCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *service) DeletePost(ctx context.Context, id, actorID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.ErrPostNotFound
	}
	if post.AuthorID != actorID {
		return domain.ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, feedCacheKey).Err()
	}
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
