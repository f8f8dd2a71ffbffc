package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"fluffyshare/internal/config"
	"fluffyshare/internal/domain"
	"fluffyshare/internal/metrics"
	"fluffyshare/internal/scoring"
)

// ErrRunInProgress is returned when a run is requested while another is active.
var ErrRunInProgress = errors.New("processing run already in progress")

const (
	finalizeTimeout  = 10 * time.Second
	waitPollInterval = 50 * time.Millisecond
)

type Stores struct {
	Tweets    TweetStore
	Accounts  AccountStore
	Scores    ScoreStore
	Logs      ProcessingLogStore
	Retention RetentionStore
}

// Processor runs the mention scoring pipeline. At most one run is active at
// any time.
type Processor struct {
	source    MentionSource
	stores    Stores
	txManager TransactionManager
	snapshots SnapshotWriter
	publisher Publisher
	cache     CacheInvalidator
	engine    *scoring.Engine
	logger    *slog.Logger
	config    config.ProcessorConfig
	retention config.RetentionConfig

	running atomic.Bool
	now     func() time.Time
	newID   func() string
}

// NewProcessor wires a processor. publisher and cache may be nil.
func NewProcessor(
	source MentionSource,
	stores Stores,
	txManager TransactionManager,
	snapshots SnapshotWriter,
	publisher Publisher,
	cache CacheInvalidator,
	engine *scoring.Engine,
	logger *slog.Logger,
	cfg config.ProcessorConfig,
	retention config.RetentionConfig,
) *Processor {
	return &Processor{
		source:    source,
		stores:    stores,
		txManager: txManager,
		snapshots: snapshots,
		publisher: publisher,
		cache:     cache,
		engine:    engine,
		logger:    logger.With("component", "processor"),
		config:    cfg,
		retention: retention,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Running reports whether a run is active.
func (p *Processor) Running() bool {
	return p.running.Load()
}

// Run executes a full pipeline run and blocks until it finishes. The
// returned log is non-nil whenever the run started.
func (p *Processor) Run(ctx context.Context, runType domain.RunType) (*domain.ProcessingLog, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer p.running.Store(false)

	run := p.newRun(runType)
	return run, p.execute(ctx, run)
}

// Trigger starts a run in the background and returns its log as it was at
// start. The run outlives ctx cancellation but keeps its own deadline.
func (p *Processor) Trigger(ctx context.Context, runType domain.RunType) (*domain.ProcessingLog, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	run := p.newRun(runType)
	started := *run

	go func() {
		defer p.running.Store(false)
		_ = p.execute(context.WithoutCancel(ctx), run)
	}()

	return &started, nil
}

// Wait blocks until no run is active or ctx is done.
func (p *Processor) Wait(ctx context.Context) error {
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for p.running.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (p *Processor) newRun(runType domain.RunType) *domain.ProcessingLog {
	return &domain.ProcessingLog{
		ID:        p.newID(),
		RunType:   runType,
		Status:    domain.RunRunning,
		StartedAt: p.now(),
	}
}

func (p *Processor) execute(ctx context.Context, run *domain.ProcessingLog) error {
	if p.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.RunTimeout)
		defer cancel()
	}

	logger := p.logger.With("run_id", run.ID, "run_type", run.RunType)
	callsBefore := p.source.CallCount()

	logger.Info("starting run", "max_tweets", p.config.MaxTweetsPerRun)

	if err := p.stores.Logs.Save(ctx, run); err != nil {
		return p.fail(ctx, logger, run, callsBefore, fmt.Errorf("save processing log: %w", err))
	}

	if err := p.pipeline(ctx, logger, run, callsBefore); err != nil {
		return p.fail(ctx, logger, run, callsBefore, err)
	}

	metrics.ObserveRun(string(run.RunType), string(run.Status), run.StartedAt)
	metrics.TweetsProcessed.Add(float64(run.TweetsProcessed))
	metrics.ScoresComputed.Add(float64(run.ScoresComputed))

	p.publish(ctx, logger, run)
	p.purgeCache(ctx, logger)

	logger.Info("run completed",
		"tweets", run.TweetsProcessed,
		"accounts", run.AccountsProcessed,
		"scores", run.ScoresComputed,
		"api_calls", run.APICallsUsed,
		"data_errors", len(run.Errors),
		"duration_ms", run.DurationMs,
	)

	return nil
}

func (p *Processor) pipeline(ctx context.Context, logger *slog.Logger, run *domain.ProcessingLog, callsBefore int64) error {
	fetched, err := p.source.FetchMentions(ctx, p.config.MaxTweetsPerRun)
	if err != nil {
		return fmt.Errorf("fetch mentions: %w", err)
	}
	run.TweetsProcessed = len(fetched)
	logger.Info("fetched mentions", "count", len(fetched))

	err = p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return p.stores.Tweets.UpsertBatch(txCtx, fetched)
	})
	if err != nil {
		return fmt.Errorf("store tweets: %w", err)
	}

	pending, err := p.stores.Tweets.ListUnprocessed(ctx, p.config.ScoreBatchSize, p.config.MaxScoreAttempts)
	if err != nil {
		return fmt.Errorf("list unprocessed tweets: %w", err)
	}

	authorIDs := uniqueAuthors(fetched, pending)
	looked, err := p.source.LookupAccounts(ctx, authorIDs)
	if err != nil {
		return fmt.Errorf("lookup accounts: %w", err)
	}
	run.AccountsProcessed = len(looked)
	logger.Info("looked up accounts", "requested", len(authorIDs), "returned", len(looked))

	now := p.now()
	for i := range looked {
		p.engine.ApplyBotScore(&looked[i], now)
		looked[i].UpdatedAt = now
	}
	if err := p.stores.Accounts.UpsertBatch(ctx, looked); err != nil {
		return fmt.Errorf("store accounts: %w", err)
	}

	accounts, err := p.stores.Accounts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	for i := range accounts {
		p.engine.ApplyBonus(&accounts[i], len(accounts))
	}
	if err := p.stores.Accounts.UpdateBonuses(ctx, accounts); err != nil {
		return fmt.Errorf("update bonuses: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.UserID] = a
	}

	scores := make([]domain.Score, 0, len(pending))
	scored := make([]string, 0, len(pending))
	var skipped []string
	for _, t := range pending {
		author, ok := byID[t.AuthorID]
		if !ok {
			msg := fmt.Sprintf("tweet %s: author %s not found", t.ID, t.AuthorID)
			logger.Warn("skipping tweet without account", "tweet_id", t.ID, "author_id", t.AuthorID)
			run.Errors = append(run.Errors, msg)
			skipped = append(skipped, t.ID)
			continue
		}
		scores = append(scores, p.engine.ScoreTweet(t, author, now))
		scored = append(scored, t.ID)
	}

	err = p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := p.stores.Scores.UpsertBatch(txCtx, scores); err != nil {
			return err
		}
		if err := p.stores.Tweets.MarkProcessed(txCtx, scored); err != nil {
			return err
		}
		return p.stores.Tweets.RecordSkipped(txCtx, skipped)
	})
	if err != nil {
		return fmt.Errorf("store scores: %w", err)
	}
	run.ScoresComputed = len(scores)

	p.finish(run, domain.RunCompleted, callsBefore)

	if err := p.snapshots.Write(ctx, run); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}

	pruned, err := p.stores.Retention.Prune(ctx,
		now.AddDate(0, 0, -p.retention.TweetDays),
		now.AddDate(0, 0, -p.retention.LogDays),
	)
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}
	logger.Info("pruned old data",
		"scores", pruned.Scores,
		"tweets", pruned.Tweets,
		"accounts", pruned.Accounts,
		"logs", pruned.Logs,
	)

	p.finish(run, domain.RunCompleted, callsBefore)
	if err := p.stores.Logs.Save(ctx, run); err != nil {
		return fmt.Errorf("save processing log: %w", err)
	}

	return nil
}

func (p *Processor) finish(run *domain.ProcessingLog, status domain.RunStatus, callsBefore int64) {
	completed := p.now()
	run.Status = status
	run.CompletedAt = &completed
	run.DurationMs = completed.Sub(run.StartedAt).Milliseconds()
	run.APICallsUsed = p.source.CallCount() - callsBefore
}

// fail records err on the run and persists it with a context that survives
// the run deadline.
func (p *Processor) fail(ctx context.Context, logger *slog.Logger, run *domain.ProcessingLog, callsBefore int64, err error) error {
	p.finish(run, domain.RunFailed, callsBefore)
	run.Errors = append(run.Errors, err.Error())

	logger.Error("run failed", "error", err, "duration_ms", run.DurationMs)
	metrics.ObserveRun(string(run.RunType), string(run.Status), run.StartedAt)

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()

	if saveErr := p.stores.Logs.Save(saveCtx, run); saveErr != nil {
		logger.Error("failed to save processing log", "error", saveErr)
	}
	p.publish(saveCtx, logger, run)

	return err
}

func (p *Processor) publish(ctx context.Context, logger *slog.Logger, run *domain.ProcessingLog) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishRun(ctx, run); err != nil {
		logger.Warn("failed to publish run event", "error", err)
	}
}

func (p *Processor) purgeCache(ctx context.Context, logger *slog.Logger) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Purge(ctx); err != nil {
		logger.Warn("failed to purge leaderboard cache", "error", err)
	}
}

func uniqueAuthors(groups ...[]domain.Tweet) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, tweets := range groups {
		for _, t := range tweets {
			if t.AuthorID == "" || seen[t.AuthorID] {
				continue
			}
			seen[t.AuthorID] = true
			ids = append(ids, t.AuthorID)
		}
	}
	return ids
}
