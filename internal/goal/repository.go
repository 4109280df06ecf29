// AngelaMos | 2026
// repository.go

package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/angelamos/compass/internal/core"
)

type Repository interface {
	Create(ctx context.Context, g *Goal) error
	GetByID(ctx context.Context, userID, id string) (*Goal, error)
	ListActive(ctx context.Context, userID string) ([]Goal, error)
	CountActive(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, g *Goal) error
	RecordCheckIn(
		ctx context.Context,
		userID, id string,
		checkinDate time.Time,
		streak int,
	) error
	CountCheckinsSince(
		ctx context.Context,
		userID string,
		since time.Time,
	) (int, error)
	SetShareToken(ctx context.Context, userID, id, token string) error
	SoftDelete(ctx context.Context, userID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, target_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING created_at, updated_at, streak_count`

	err := r.db.GetContext(ctx, g, query,
		g.ID,
		g.UserID,
		g.Title,
		g.TargetDate,
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Goal, error) {
	query := `
		SELECT id, user_id, title, target_date, is_active, streak_count,
		       last_checkin_date, share_token, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`

	var g Goal
	err := r.db.GetContext(ctx, &g, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get goal: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	return &g, nil
}

func (r *repository) ListActive(
	ctx context.Context,
	userID string,
) ([]Goal, error) {
	query := `
		SELECT id, user_id, title, target_date, is_active, streak_count,
		       last_checkin_date, share_token, created_at, updated_at
		FROM goals
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC`

	var goals []Goal
	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	return goals, nil
}

func (r *repository) CountActive(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND is_active = TRUE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}

	return count, nil
}

func (r *repository) Update(ctx context.Context, g *Goal) error {
	query := `
		UPDATE goals
		SET title = $3, target_date = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &g.UpdatedAt, query,
		g.ID,
		g.UserID,
		g.Title,
		g.TargetDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update goal: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	return nil
}

func (r *repository) RecordCheckIn(
	ctx context.Context,
	userID, id string,
	checkinDate time.Time,
	streak int,
) error {
	query := `
		UPDATE goals
		SET last_checkin_date = $3, streak_count = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, id, userID, checkinDate, streak)
	if err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("record check-in: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountCheckinsSince(
	ctx context.Context,
	userID string,
	since time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM goals
		WHERE user_id = $1 AND is_active = TRUE AND last_checkin_date >= $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("count check-ins: %w", err)
	}

	return count, nil
}

func (r *repository) SetShareToken(
	ctx context.Context,
	userID, id, token string,
) error {
	query := `
		UPDATE goals
		SET share_token = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		  AND share_token IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, userID, token)
	if err != nil {
		return fmt.Errorf("set share token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set share token: %w", err)
	}

	// Zero rows means another request issued the token first; the caller
	// re-reads and returns the winner's token.
	if rows == 0 {
		return fmt.Errorf("set share token: %w", core.ErrDuplicateKey)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, userID, id string) error {
	query := `
		UPDATE goals
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete goal: %w", core.ErrNotFound)
	}

	return nil
}
