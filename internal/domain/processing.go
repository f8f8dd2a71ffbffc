package domain

import "time"

type RunType string

const (
	RunDailyBatch    RunType = "daily_batch"
	RunManualTrigger RunType = "manual_trigger"
)

// Valid reports whether t is a known run type.
func (t RunType) Valid() bool {
	return t == RunDailyBatch || t == RunManualTrigger
}

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// ProcessingLog is the record of a single pipeline run.
type ProcessingLog struct {
	ID                string     `json:"id"`
	RunType           RunType    `json:"run_type"`
	Status            RunStatus  `json:"status"`
	TweetsProcessed   int        `json:"tweets_processed"`
	AccountsProcessed int        `json:"accounts_processed"`
	ScoresComputed    int        `json:"scores_computed"`
	APICallsUsed      int64      `json:"api_calls_used"`
	Errors            []string   `json:"errors,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	DurationMs        int64      `json:"duration_ms"`
}

// PruneStats holds row counts removed by a retention sweep.
type PruneStats struct {
	Scores   int64
	Tweets   int64
	Accounts int64
	Logs     int64
}
