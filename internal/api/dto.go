package api

import "fluffyshare/internal/domain"

type LeaderboardResponse struct {
	WindowDays int                       `json:"window_days"`
	Limit      int                       `json:"limit"`
	Entries    []domain.LeaderboardEntry `json:"entries"`
}

type TriggerRequest struct {
	RunType domain.RunType `json:"run_type"`
}

type TriggerResponse struct {
	RunID     string           `json:"run_id"`
	RunType   domain.RunType   `json:"run_type"`
	Status    domain.RunStatus `json:"status"`
	StartedAt string           `json:"started_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
