package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"fluffyshare/internal/cache"
	"fluffyshare/internal/domain"
	"fluffyshare/internal/snapshot"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

var (
	ErrInvalidWindow = errors.New("invalid leaderboard window")
	ErrUserNotFound  = errors.New("user not found")
)

type Store interface {
	Leaderboard(ctx context.Context, since time.Time, limit, dailyCap int) ([]domain.LeaderboardEntry, error)
	Stats(ctx context.Context, since time.Time, dailyCap int) (domain.Stats, error)
	UserDetail(ctx context.Context, userID string, since time.Time, dailyCap int) (*domain.UserDetail, error)
}

// Reader serves read-only leaderboard views. Responses are cached for ttl and
// the leaderboard falls back to the last snapshot file when the store fails.
type Reader struct {
	store       Store
	cache       cache.Cache
	snapshotDir string
	windows     []int
	dailyCap    int
	ttl         time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

func NewReader(store Store, c cache.Cache, snapshotDir string, windows []int, dailyCap int, ttl time.Duration, logger *slog.Logger) *Reader {
	return &Reader{
		store:       store,
		cache:       c,
		snapshotDir: snapshotDir,
		windows:     windows,
		dailyCap:    dailyCap,
		ttl:         ttl,
		logger:      logger.With("component", "leaderboard"),
		now:         time.Now,
	}
}

// Windows returns the accepted window sizes in days.
func (r *Reader) Windows() []int {
	return slices.Clone(r.windows)
}

// ClampLimit maps a requested page size into [1, MaxLimit]; zero or negative
// selects DefaultLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func (r *Reader) Leaderboard(ctx context.Context, days, limit int) ([]domain.LeaderboardEntry, error) {
	if err := r.checkWindow(days); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)

	key := fmt.Sprintf("leaderboard:%d:%d", days, limit)
	var entries []domain.LeaderboardEntry
	if r.cached(ctx, key, &entries) {
		return entries, nil
	}

	entries, err := r.store.Leaderboard(ctx, r.since(days), limit, r.dailyCap)
	if err != nil {
		fallback, ferr := snapshot.LoadLeaderboard(r.snapshotDir, days)
		if ferr != nil {
			return nil, fmt.Errorf("query leaderboard: %w", err)
		}
		r.logger.Warn("serving leaderboard snapshot",
			"days", days,
			"generated_at", fallback.GeneratedAt,
			"error", err,
		)
		if len(fallback.Entries) > limit {
			return fallback.Entries[:limit], nil
		}
		return fallback.Entries, nil
	}

	r.remember(ctx, key, entries)
	return entries, nil
}

func (r *Reader) Stats(ctx context.Context, days int) (*domain.Stats, error) {
	if err := r.checkWindow(days); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("stats:%d", days)
	var stats domain.Stats
	if r.cached(ctx, key, &stats) {
		return &stats, nil
	}

	stats, err := r.store.Stats(ctx, r.since(days), r.dailyCap)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	stats.WindowDays = days
	stats.GeneratedAt = r.now().UTC()

	r.remember(ctx, key, stats)
	return &stats, nil
}

func (r *Reader) UserDetail(ctx context.Context, userID string, days int) (*domain.UserDetail, error) {
	if err := r.checkWindow(days); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("user:%s:%d", userID, days)
	var detail domain.UserDetail
	if r.cached(ctx, key, &detail) {
		return &detail, nil
	}

	found, err := r.store.UserDetail(ctx, userID, r.since(days), r.dailyCap)
	if err != nil {
		return nil, fmt.Errorf("query user detail: %w", err)
	}
	if found == nil {
		return nil, ErrUserNotFound
	}
	found.WindowDays = days

	r.remember(ctx, key, found)
	return found, nil
}

func (r *Reader) checkWindow(days int) error {
	if !slices.Contains(r.windows, days) {
		return fmt.Errorf("%w: %d days (allowed %v)", ErrInvalidWindow, days, r.windows)
	}
	return nil
}

func (r *Reader) since(days int) time.Time {
	return r.now().UTC().AddDate(0, 0, -days)
}

func (r *Reader) cached(ctx context.Context, key string, dst any) bool {
	if r.cache == nil {
		return false
	}
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("dropping undecodable cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Reader) remember(ctx context.Context, key string, v any) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
