// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/angelamos/compass/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	GetSubscription(ctx context.Context, userID string) (*Subscription, error)
	UpsertSubscription(ctx context.Context, sub *Subscription) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (id, email, timezone, trial_expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.Email,
		p.Timezone,
		p.TrialExpiresAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, email, timezone, trial_expires_at,
		       created_at, updated_at, deleted_at
		FROM profiles
		WHERE id = $1 AND deleted_at IS NULL`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	// trial_expires_at is deliberately not updatable: it is set once at
	// creation.
	query := `
		UPDATE profiles
		SET email = $2, timezone = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Email,
		p.Timezone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) GetSubscription(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := `
		SELECT user_id, subscribed, tier, updated_at
		FROM subscriptions
		WHERE user_id = $1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) UpsertSubscription(
	ctx context.Context,
	sub *Subscription,
) error {
	query := `
		INSERT INTO subscriptions (user_id, subscribed, tier, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET subscribed = $2, tier = $3, updated_at = NOW()
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &sub.UpdatedAt, query,
		sub.UserID,
		sub.Subscribed,
		sub.Tier,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
