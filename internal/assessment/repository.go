// AngelaMos | 2026
// repository.go

package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelamos/compass/internal/core"
)

type Repository interface {
	Get(ctx context.Context, userID string) (*Snapshot, error)
	Replace(ctx context.Context, userID string, snap *Snapshot) error
	IncrementInsights(ctx context.Context, userID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

type snapshotRow struct {
	Ratings        []byte `db:"ratings"`
	WorkHappiness  []byte `db:"work_happiness"`
	AIInsightCount int    `db:"ai_insight_count"`
}

func (r *repository) Get(ctx context.Context, userID string) (*Snapshot, error) {
	query := `
		SELECT ratings, work_happiness, ai_insight_count
		FROM framework_snapshots
		WHERE user_id = $1`

	var row snapshotRow
	err := r.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assessment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	snap := &Snapshot{AIInsightCount: row.AIInsightCount}
	if err := json.Unmarshal(row.Ratings, &snap.Ratings); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}
	if len(row.WorkHappiness) > 0 {
		snap.WorkHappiness = &WorkHappiness{}
		if err := json.Unmarshal(row.WorkHappiness, snap.WorkHappiness); err != nil {
			return nil, fmt.Errorf("decode work happiness: %w", err)
		}
	}

	return snap, nil
}

// Replace swaps the entire snapshot in one statement. Edits always
// resubmit the full rating set; there is no partial update path.
func (r *repository) Replace(
	ctx context.Context,
	userID string,
	snap *Snapshot,
) error {
	ratings, err := json.Marshal(snap.Ratings)
	if err != nil {
		return fmt.Errorf("encode ratings: %w", err)
	}

	var workHappiness []byte
	if snap.WorkHappiness != nil {
		workHappiness, err = json.Marshal(snap.WorkHappiness)
		if err != nil {
			return fmt.Errorf("encode work happiness: %w", err)
		}
	}

	query := `
		INSERT INTO framework_snapshots
			(user_id, ratings, work_happiness, ai_insight_count, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			ratings = $2,
			work_happiness = $3,
			ai_insight_count = framework_snapshots.ai_insight_count,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(
		ctx, query, userID, ratings, workHappiness, snap.AIInsightCount,
	); err != nil {
		return fmt.Errorf("replace assessment: %w", err)
	}

	return nil
}

func (r *repository) IncrementInsights(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		UPDATE framework_snapshots
		SET ai_insight_count = ai_insight_count + 1, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ai_insight_count`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("increment insights: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment insights: %w", err)
	}

	return count, nil
}
