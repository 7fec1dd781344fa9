package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pelada-hub/internal/domain"
)

type CourtRepository interface {
	Create(ctx context.Context, court *domain.Court) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Court, error)
	List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Court, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// TerritoryStandings computes, per court, the team with the most
	// verified finished wins played there.
	TerritoryStandings(ctx context.Context) ([]domain.TerritoryStanding, error)
}

type courtRepository struct {
	db *sqlx.DB
}

func NewCourtRepository(db *sqlx.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) Create(ctx context.Context, court *domain.Court) error {
	query := `
		INSERT INTO courts (id, name, address, city, latitude, longitude, surface, photo_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		court.ID, court.Name, court.Address, court.City, court.Latitude,
		court.Longitude, court.Surface, court.PhotoURL, court.CreatedBy,
	).Scan(&court.CreatedAt, &court.UpdatedAt)
}

func (r *courtRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	var court domain.Court
	query := `SELECT * FROM courts WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &court, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Court, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM courts WHERE id IN (?) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var courts []domain.Court
	err = r.db.SelectContext(ctx, &courts, query, args...)
	return courts, err
}

func (r *courtRepository) List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Court, int64, error) {
	params.Validate()

	var total int64
	var courts []domain.Court

	if city != nil {
		countQuery := `SELECT COUNT(*) FROM courts WHERE city ILIKE $1 AND deleted_at IS NULL`
		if err := r.db.GetContext(ctx, &total, countQuery, *city); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM courts
			WHERE city ILIKE $1 AND deleted_at IS NULL
			ORDER BY name
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &courts, query, *city, params.PageSize, params.Offset())
		return courts, total, err
	}

	countQuery := `SELECT COUNT(*) FROM courts WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM courts
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &courts, query, params.PageSize, params.Offset())
	return courts, total, err
}

func (r *courtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE courts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *courtRepository) TerritoryStandings(ctx context.Context) ([]domain.TerritoryStanding, error) {
	query := `
		WITH wins AS (
			SELECT court_id,
				CASE WHEN home_score > away_score THEN home_team_id ELSE away_team_id END AS winner_id
			FROM matches
			WHERE status = 'FINISHED' AND is_verified = true
				AND court_id IS NOT NULL AND home_score <> away_score
				AND away_team_id IS NOT NULL
		),
		counted AS (
			SELECT court_id, winner_id, COUNT(*) AS win_count,
				ROW_NUMBER() OVER (PARTITION BY court_id ORDER BY COUNT(*) DESC) AS rank
			FROM wins
			GROUP BY court_id, winner_id
		)
		SELECT c.id AS court_id, c.name AS court_name, c.latitude, c.longitude,
			t.id AS ruler_team_id, t.name AS ruler_name, t.crest_url AS ruler_crest,
			COALESCE(w.win_count, 0) AS wins_at_court,
			(SELECT COUNT(*) FROM matches m WHERE m.court_id = c.id AND m.status = 'FINISHED') AS matches_total
		FROM courts c
		LEFT JOIN counted w ON w.court_id = c.id AND w.rank = 1
		LEFT JOIN teams t ON t.id = w.winner_id
		WHERE c.deleted_at IS NULL
		ORDER BY c.name`

	var standings []domain.TerritoryStanding
	err := r.db.SelectContext(ctx, &standings, query)
	return standings, err
}
