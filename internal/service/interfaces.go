package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"fluffyshare/internal/domain"
)

type MentionSource interface {
	FetchMentions(ctx context.Context, maxTweets int) ([]domain.Tweet, error)
	LookupAccounts(ctx context.Context, ids []string) ([]domain.Account, error)
	CallCount() int64
}

type TweetStore interface {
	UpsertBatch(ctx context.Context, tweets []domain.Tweet) error
	ListUnprocessed(ctx context.Context, limit, maxAttempts int) ([]domain.Tweet, error)
	MarkProcessed(ctx context.Context, ids []string) error
	RecordSkipped(ctx context.Context, ids []string) error
}

type AccountStore interface {
	UpsertBatch(ctx context.Context, accounts []domain.Account) error
	ListAll(ctx context.Context) ([]domain.Account, error)
	UpdateBonuses(ctx context.Context, accounts []domain.Account) error
}

type ScoreStore interface {
	UpsertBatch(ctx context.Context, scores []domain.Score) error
}

type ProcessingLogStore interface {
	Save(ctx context.Context, log *domain.ProcessingLog) error
}

type RetentionStore interface {
	Prune(ctx context.Context, tweetsBefore, logsBefore time.Time) (domain.PruneStats, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SnapshotWriter interface {
	Write(ctx context.Context, run *domain.ProcessingLog) error
}

type Publisher interface {
	PublishRun(ctx context.Context, run *domain.ProcessingLog) error
	Close() error
}

type CacheInvalidator interface {
	Purge(ctx context.Context) error
}
