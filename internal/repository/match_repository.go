package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pelada-hub/internal/domain"
)

type MatchRepository interface {
	// Create persists a match and, when notif is non-nil, the invite
	// notification in the same transaction. Either both rows land or
	// neither does.
	Create(ctx context.Context, match *domain.Match, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	// CompareAndSwap applies the negotiation fields of match (status, date,
	// is_verified, updated_by_team_id) iff the stored version still equals
	// expectedVersion, bumping version by one. A non-nil notif is inserted
	// in the same transaction. Returns false without error when the version
	// check fails or the match row is gone.
	CompareAndSwap(ctx context.Context, match *domain.Match, expectedVersion int, notif *domain.Notification) (bool, error)
	SetResult(ctx context.Context, match *domain.Match, goals []domain.Goal, expectedVersion int, notif *domain.Notification) (bool, error)
	List(ctx context.Context, filter domain.MatchListFilter, params domain.PaginationParams) ([]domain.Match, int64, error)
	GetGoals(ctx context.Context, matchID uuid.UUID) ([]domain.Goal, error)
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO matches (id, date, location_name, court_id, home_team_id, away_team_id,
			away_team_name, status, is_verified, updated_by_team_id, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		RETURNING version, created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		match.ID, match.Date, match.LocationName, match.CourtID, match.HomeTeamID,
		match.AwayTeamID, match.AwayTeamName, match.Status, match.IsVerified,
		match.UpdatedByTeamID,
	).Scan(&match.Version, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return err
	}

	if notif != nil {
		if err := insertNotificationTx(ctx, tx, notif); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`

	err := r.db.GetContext(ctx, &match, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if match.Status == domain.MatchFinished {
		goals, err := r.GetGoals(ctx, id)
		if err != nil {
			return nil, err
		}
		match.Goals = goals
	}

	return &match, nil
}

func (r *matchRepository) CompareAndSwap(ctx context.Context, match *domain.Match, expectedVersion int, notif *domain.Notification) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `
		UPDATE matches
		SET status = $3, date = $4, is_verified = $5, updated_by_team_id = $6,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		match.ID, expectedVersion, match.Status, match.Date, match.IsVerified,
		match.UpdatedByTeamID,
	).Scan(&match.Version, &match.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if notif != nil {
		if err := insertNotificationTx(ctx, tx, notif); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *matchRepository) SetResult(ctx context.Context, match *domain.Match, goals []domain.Goal, expectedVersion int, notif *domain.Notification) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `
		UPDATE matches
		SET status = $3, home_score = $4, away_score = $5, updated_by_team_id = $6,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		match.ID, expectedVersion, match.Status, match.HomeScore, match.AwayScore,
		match.UpdatedByTeamID,
	).Scan(&match.Version, &match.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	for i := range goals {
		goalQuery := `
			INSERT INTO goals (id, match_id, team_side, player_id, scorer, minute)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.ExecContext(ctx, goalQuery,
			goals[i].ID, goals[i].MatchID, goals[i].TeamSide,
			goals[i].PlayerID, goals[i].Scorer, goals[i].Minute,
		); err != nil {
			return false, err
		}
	}

	if notif != nil {
		if err := insertNotificationTx(ctx, tx, notif); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *matchRepository) List(ctx context.Context, filter domain.MatchListFilter, params domain.PaginationParams) ([]domain.Match, int64, error) {
	params.Validate()

	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		where += fmt.Sprintf(" AND (home_team_id = $%d OR away_team_id = $%d)", len(args), len(args))
	}
	if filter.CourtID != nil {
		args = append(args, *filter.CourtID)
		where += fmt.Sprintf(" AND court_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Upcoming {
		where += " AND date >= NOW()"
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM matches "+where, args...); err != nil {
		return nil, 0, err
	}

	order := "ORDER BY date DESC"
	if filter.Upcoming {
		order = "ORDER BY date ASC"
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf("SELECT * FROM matches %s %s LIMIT $%d OFFSET $%d",
		where, order, len(args)-1, len(args))

	var matches []domain.Match
	err := r.db.SelectContext(ctx, &matches, query, args...)
	return matches, total, err
}

func (r *matchRepository) GetGoals(ctx context.Context, matchID uuid.UUID) ([]domain.Goal, error) {
	var goals []domain.Goal
	query := `SELECT * FROM goals WHERE match_id = $1 ORDER BY minute NULLS LAST`
	err := r.db.SelectContext(ctx, &goals, query, matchID)
	return goals, err
}

func insertNotificationTx(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, related_id, related_image, action_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return tx.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message,
		notif.RelatedID, notif.RelatedImage, notif.ActionData,
	).Scan(&notif.CreatedAt)
}
