package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fluffyshare/internal/domain"
)

type processingLogRow struct {
	ID                string         `db:"id"`
	RunType           string         `db:"run_type"`
	Status            string         `db:"status"`
	TweetsProcessed   int            `db:"tweets_processed"`
	AccountsProcessed int            `db:"accounts_processed"`
	ScoresComputed    int            `db:"scores_computed"`
	APICallsUsed      int64          `db:"api_calls_used"`
	Errors            pq.StringArray `db:"errors"`
	StartedAt         time.Time      `db:"started_at"`
	CompletedAt       *time.Time     `db:"completed_at"`
	DurationMs        int64          `db:"duration_ms"`
}

func (r processingLogRow) toDomain() *domain.ProcessingLog {
	return &domain.ProcessingLog{
		ID:                r.ID,
		RunType:           domain.RunType(r.RunType),
		Status:            domain.RunStatus(r.Status),
		TweetsProcessed:   r.TweetsProcessed,
		AccountsProcessed: r.AccountsProcessed,
		ScoresComputed:    r.ScoresComputed,
		APICallsUsed:      r.APICallsUsed,
		Errors:            []string(r.Errors),
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
		DurationMs:        r.DurationMs,
	}
}

type ProcessingLogStore struct {
	db *sqlx.DB
}

func NewProcessingLogStore(db *sqlx.DB) *ProcessingLogStore {
	return &ProcessingLogStore{db: db}
}

// Save inserts the log on run start and overwrites it when the run ends.
func (s *ProcessingLogStore) Save(ctx context.Context, log *domain.ProcessingLog) error {
	query := `
		INSERT INTO processing_logs (
			id, run_type, status, tweets_processed, accounts_processed,
			scores_computed, api_calls_used, errors, started_at, completed_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			tweets_processed = EXCLUDED.tweets_processed,
			accounts_processed = EXCLUDED.accounts_processed,
			scores_computed = EXCLUDED.scores_computed,
			api_calls_used = EXCLUDED.api_calls_used,
			errors = EXCLUDED.errors,
			completed_at = EXCLUDED.completed_at,
			duration_ms = EXCLUDED.duration_ms`

	errs := log.Errors
	if errs == nil {
		errs = []string{}
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		log.ID,
		string(log.RunType),
		string(log.Status),
		log.TweetsProcessed,
		log.AccountsProcessed,
		log.ScoresComputed,
		log.APICallsUsed,
		pq.StringArray(errs),
		log.StartedAt,
		log.CompletedAt,
		log.DurationMs,
	)
	return err
}

// Latest returns the most recently started run, or nil if there is none.
func (s *ProcessingLogStore) Latest(ctx context.Context) (*domain.ProcessingLog, error) {
	query := `
		SELECT id, run_type, status, tweets_processed, accounts_processed,
			scores_computed, api_calls_used, errors, started_at, completed_at, duration_ms
		FROM processing_logs
		ORDER BY started_at DESC
		LIMIT 1`

	var row processingLogRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}
