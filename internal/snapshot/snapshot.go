package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fluffyshare/internal/domain"
)

const (
	statsFile       = "stats.json"
	lastUpdatedFile = "last-updated.json"
	runFile         = "run-metadata.json"
)

// LeaderboardSource computes ranked leaderboards and aggregates for a window.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, since time.Time, limit, dailyCap int) ([]domain.LeaderboardEntry, error)
	Stats(ctx context.Context, since time.Time, dailyCap int) (domain.Stats, error)
}

// Leaderboard is the content of a leaderboard-<N>d.json file.
type Leaderboard struct {
	WindowDays  int                       `json:"window_days"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Entries     []domain.LeaderboardEntry `json:"entries"`
}

type lastUpdated struct {
	UpdatedAt time.Time `json:"updated_at"`
	RunID     string    `json:"run_id"`
}

// Writer renders leaderboard snapshots into a directory. Files are replaced
// atomically so readers never observe a partial write.
type Writer struct {
	dir      string
	windows  []int
	limit    int
	dailyCap int
	source   LeaderboardSource
	logger   *slog.Logger
	now      func() time.Time
}

func NewWriter(dir string, windows []int, limit, dailyCap int, source LeaderboardSource, logger *slog.Logger) *Writer {
	return &Writer{
		dir:      dir,
		windows:  windows,
		limit:    limit,
		dailyCap: dailyCap,
		source:   source,
		logger:   logger.With("component", "snapshot"),
		now:      time.Now,
	}
}

// FileName returns the leaderboard snapshot file name for a window.
func FileName(days int) string {
	return fmt.Sprintf("leaderboard-%dd.json", days)
}

// Write queries every window and writes all snapshot files for run. Nothing
// is written when a query fails, so the previous snapshot stays in place.
func (w *Writer) Write(ctx context.Context, run *domain.ProcessingLog) error {
	generated := w.now().UTC()

	boards := make([]Leaderboard, 0, len(w.windows))
	stats := make([]domain.Stats, 0, len(w.windows))

	for _, days := range w.windows {
		since := generated.AddDate(0, 0, -days)

		entries, err := w.source.Leaderboard(ctx, since, w.limit, w.dailyCap)
		if err != nil {
			return fmt.Errorf("leaderboard %dd: %w", days, err)
		}
		boards = append(boards, Leaderboard{WindowDays: days, GeneratedAt: generated, Entries: entries})

		st, err := w.source.Stats(ctx, since, w.dailyCap)
		if err != nil {
			return fmt.Errorf("stats %dd: %w", days, err)
		}
		st.WindowDays = days
		st.GeneratedAt = generated
		stats = append(stats, st)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	for _, b := range boards {
		if err := writeJSON(filepath.Join(w.dir, FileName(b.WindowDays)), b); err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(w.dir, statsFile), stats); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(w.dir, runFile), run); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(w.dir, lastUpdatedFile), lastUpdated{UpdatedAt: generated, RunID: run.ID}); err != nil {
		return err
	}

	w.logger.Info("snapshots written", "dir", w.dir, "windows", w.windows)
	return nil
}

// LoadLeaderboard reads the leaderboard snapshot for a window from dir.
func LoadLeaderboard(dir string, days int) (*Leaderboard, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName(days)))
	if err != nil {
		return nil, err
	}

	var b Leaderboard
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FileName(days), err)
	}
	return &b, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
