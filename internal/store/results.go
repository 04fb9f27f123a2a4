package store

import (
	"context"
	"time"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// ============================================================================
// Quiz results
// ============================================================================

func (s *SQLStore) SaveResult(ctx context.Context, r StoredResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_results (quiz_id, tier, mode, total, correct, percentage, ended_early, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.QuizID, string(r.Tier), r.Mode, r.Total, r.Correct, r.Percentage, r.EndedEarly, r.FinishedAt.UnixMilli(),
	)
	return err
}

// ListResults returns at most limit results, newest first. A limit <= 0
// returns everything.
func (s *SQLStore) ListResults(ctx context.Context, limit int) ([]StoredResult, error) {
	query := `
		SELECT quiz_id, tier, mode, total, correct, percentage, ended_early, finished_at
		FROM quiz_results
		ORDER BY finished_at DESC, quiz_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []StoredResult{}
	for rows.Next() {
		var r StoredResult
		var tier string
		var finishedAt int64
		if err := rows.Scan(&r.QuizID, &tier, &r.Mode, &r.Total, &r.Correct, &r.Percentage, &r.EndedEarly, &finishedAt); err != nil {
			return nil, err
		}
		r.Tier = card.Tier(tier)
		r.Wrong = r.Total - r.Correct
		r.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}
