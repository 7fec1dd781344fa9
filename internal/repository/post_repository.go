package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pelada-hub/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, teamID *uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_id, team_id, text, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.AuthorID, post.TeamID, post.Text, post.ImageURL,
	).Scan(&post.CreatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	query := `
		SELECT p.*, u.full_name AS author_name, u.avatar_url AS author_avatar
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1 AND p.deleted_at IS NULL`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, teamID *uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	params.Validate()

	var total int64
	var posts []domain.Post

	if teamID != nil {
		countQuery := `SELECT COUNT(*) FROM posts WHERE team_id = $1 AND deleted_at IS NULL`
		if err := r.db.GetContext(ctx, &total, countQuery, *teamID); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT p.*, u.full_name AS author_name, u.avatar_url AS author_avatar
			FROM posts p
			JOIN users u ON u.id = p.author_id
			WHERE p.team_id = $1 AND p.deleted_at IS NULL
			ORDER BY p.created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &posts, query, *teamID, params.PageSize, params.Offset())
		return posts, total, err
	}

	countQuery := `SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.*, u.full_name AS author_name, u.avatar_url AS author_avatar
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &posts, query, params.PageSize, params.Offset())
	return posts, total, err
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
