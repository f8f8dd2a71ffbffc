package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"fluffyshare/internal/domain"
)

type RetentionStore struct {
	db *sqlx.DB
}

func NewRetentionStore(db *sqlx.DB) *RetentionStore {
	return &RetentionStore{db: db}
}

// Prune deletes scores and tweets created before tweetsBefore, accounts left
// without tweets that were not refreshed since then, and logs of runs started
// before logsBefore.
func (s *RetentionStore) Prune(ctx context.Context, tweetsBefore, logsBefore time.Time) (domain.PruneStats, error) {
	var stats domain.PruneStats
	exec := GetExecutor(ctx, s.db)

	steps := []struct {
		query string
		arg   time.Time
		count *int64
	}{
		{`DELETE FROM scores WHERE tweet_id IN (SELECT id FROM tweets WHERE created_at < $1)`, tweetsBefore, &stats.Scores},
		{`DELETE FROM tweets WHERE created_at < $1`, tweetsBefore, &stats.Tweets},
		{`DELETE FROM accounts a
			WHERE a.updated_at < $1
			AND NOT EXISTS (SELECT 1 FROM tweets t WHERE t.author_id = a.user_id)`, tweetsBefore, &stats.Accounts},
		{`DELETE FROM processing_logs WHERE started_at < $1`, logsBefore, &stats.Logs},
	}

	for _, step := range steps {
		res, err := exec.ExecContext(ctx, step.query, step.arg)
		if err != nil {
			return stats, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return stats, err
		}
		*step.count = n
	}

	return stats, nil
}
