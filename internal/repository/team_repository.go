package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pelada-hub/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Team, int64, error)
	SetCrestURL(ctx context.Context, id uuid.UUID, crestURL string) error
	Standings(ctx context.Context, limit int) ([]domain.TeamStanding, error)
}

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (id, name, city, owner_id, crest_url, bio, founded_year, home_court_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		team.ID, team.Name, team.City, team.OwnerID, team.CrestURL,
		team.Bio, team.FoundedYear, team.HomeCourtID,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	query := `SELECT * FROM teams WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &team, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Team, error) {
	var teams []domain.Team
	query := `SELECT * FROM teams WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	err := r.db.SelectContext(ctx, &teams, query, ownerID)
	return teams, err
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	query := `
		UPDATE teams
		SET name = :name, city = :city, crest_url = :crest_url, bio = :bio,
			founded_year = :founded_year, home_court_id = :home_court_id, updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, team)
	return err
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE teams SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *teamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, name)
	return exists, err
}

func (r *teamRepository) List(ctx context.Context, city *string, params domain.PaginationParams) ([]domain.Team, int64, error) {
	params.Validate()

	var total int64
	var teams []domain.Team

	if city != nil {
		countQuery := `SELECT COUNT(*) FROM teams WHERE city ILIKE $1 AND deleted_at IS NULL`
		if err := r.db.GetContext(ctx, &total, countQuery, *city); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM teams
			WHERE city ILIKE $1 AND deleted_at IS NULL
			ORDER BY name
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &teams, query, *city, params.PageSize, params.Offset())
		return teams, total, err
	}

	countQuery := `SELECT COUNT(*) FROM teams WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM teams
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &teams, query, params.PageSize, params.Offset())
	return teams, total, err
}

func (r *teamRepository) SetCrestURL(ctx context.Context, id uuid.UUID, crestURL string) error {
	query := `UPDATE teams SET crest_url = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, crestURL)
	return err
}

// Standings aggregates finished verified matches into the ranking table.
// Three points for a win, one for a draw.
func (r *teamRepository) Standings(ctx context.Context, limit int) ([]domain.TeamStanding, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		WITH results AS (
			SELECT home_team_id AS team_id,
				CASE WHEN home_score > away_score THEN 1 ELSE 0 END AS win,
				CASE WHEN home_score = away_score THEN 1 ELSE 0 END AS draw,
				CASE WHEN home_score < away_score THEN 1 ELSE 0 END AS loss
			FROM matches
			WHERE status = 'FINISHED' AND is_verified = true
			UNION ALL
			SELECT away_team_id AS team_id,
				CASE WHEN away_score > home_score THEN 1 ELSE 0 END,
				CASE WHEN away_score = home_score THEN 1 ELSE 0 END,
				CASE WHEN away_score < home_score THEN 1 ELSE 0 END
			FROM matches
			WHERE status = 'FINISHED' AND is_verified = true AND away_team_id IS NOT NULL
		)
		SELECT t.id AS team_id, t.name AS team_name, t.crest_url,
			COUNT(r.team_id) AS played,
			COALESCE(SUM(r.win), 0) AS wins,
			COALESCE(SUM(r.draw), 0) AS draws,
			COALESCE(SUM(r.loss), 0) AS losses,
			COALESCE(SUM(r.win), 0) * 3 + COALESCE(SUM(r.draw), 0) AS points
		FROM teams t
		LEFT JOIN results r ON r.team_id = t.id
		WHERE t.deleted_at IS NULL
		GROUP BY t.id, t.name, t.crest_url
		ORDER BY points DESC, wins DESC, t.name
		LIMIT $1`

	var standings []domain.TeamStanding
	err := r.db.SelectContext(ctx, &standings, query, limit)
	return standings, err
}
