//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"fluffyshare/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	now       time.Time
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_fluffyshare.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM scores")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM tweets")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM accounts")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM processing_logs")
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) tweet(id, author string, createdAt time.Time, likes int) domain.Tweet {
	return domain.Tweet{
		ID:        id,
		AuthorID:  author,
		Text:      "hello @fluffyshare",
		Type:      domain.TweetOriginal,
		CreatedAt: createdAt,
		Likes:     likes,
		FetchedAt: s.now,
	}
}

func (s *PostgresIntegrationSuite) account(id string) domain.Account {
	return domain.Account{
		UserID:           id,
		Username:         "user_" + id,
		DisplayName:      "User " + id,
		FollowersCount:   100,
		AccountCreatedAt: s.now.AddDate(-2, 0, 0),
		BotPenalty:       1,
		UpdatedAt:        s.now,
	}
}

func (s *PostgresIntegrationSuite) score(userID, tweetID string, final float64) domain.Score {
	return domain.Score{
		UserID:          userID,
		TweetID:         tweetID,
		TypeMultiplier:  1,
		RawScore:        final,
		DecayFactor:     1,
		DecayedScore:    final,
		BonusMultiplier: 1,
		BotPenalty:      1,
		FinalScore:      final,
		ComputedAt:      s.now,
	}
}

func (s *PostgresIntegrationSuite) TestTweetStore_UpsertIsIdempotent() {
	store := NewTweetStore(s.db)
	tweets := []domain.Tweet{
		s.tweet("1", "a", s.now.Add(-time.Hour), 3),
		s.tweet("2", "a", s.now.Add(-2*time.Hour), 0),
	}

	s.Require().NoError(store.UpsertBatch(s.ctx, tweets))
	s.Require().NoError(store.UpsertBatch(s.ctx, tweets))

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets"))
	s.Equal(2, count)

	pending, err := store.ListUnprocessed(s.ctx, 10, 3)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal("2", pending[0].ID, "oldest first")
	s.Equal(domain.TweetOriginal, pending[0].Type)
}

func (s *PostgresIntegrationSuite) TestTweetStore_ChangedCountersResetProcessed() {
	store := NewTweetStore(s.db)
	t1 := s.tweet("1", "a", s.now.Add(-time.Hour), 3)
	t2 := s.tweet("2", "a", s.now.Add(-time.Hour), 5)

	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Tweet{t1, t2}))
	s.Require().NoError(store.MarkProcessed(s.ctx, []string{"1", "2"}))

	pending, err := store.ListUnprocessed(s.ctx, 10, 3)
	s.Require().NoError(err)
	s.Empty(pending)

	t1.Likes = 10
	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Tweet{t1, t2}))

	pending, err = store.ListUnprocessed(s.ctx, 10, 3)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("1", pending[0].ID)
	s.Equal(10, pending[0].Likes)
}

func (s *PostgresIntegrationSuite) TestTweetStore_SkippedTweetsLeaveTheQueue() {
	store := NewTweetStore(s.db)
	ghost := s.tweet("ghost", "gone", s.now.Add(-48*time.Hour), 1)
	fresh := s.tweet("fresh", "a", s.now.Add(-time.Hour), 1)
	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Tweet{ghost, fresh}))

	pending, err := store.ListUnprocessed(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("ghost", pending[0].ID)

	s.Require().NoError(store.RecordSkipped(s.ctx, []string{"ghost"}))

	pending, err = store.ListUnprocessed(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("fresh", pending[0].ID, "skipped tweets sort after untried ones")

	s.Require().NoError(store.RecordSkipped(s.ctx, []string{"ghost"}))
	s.Require().NoError(store.MarkProcessed(s.ctx, []string{"fresh"}))

	pending, err = store.ListUnprocessed(s.ctx, 10, 2)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *PostgresIntegrationSuite) TestTweetStore_UpsertDuplicateIDsInBatch() {
	store := NewTweetStore(s.db)
	first := s.tweet("1", "a", s.now, 1)
	second := s.tweet("1", "a", s.now, 7)

	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Tweet{first, second}))

	var likes int
	s.Require().NoError(s.db.GetContext(s.ctx, &likes, "SELECT likes FROM tweets WHERE id = $1", "1"))
	s.Equal(7, likes)
}

func (s *PostgresIntegrationSuite) TestAccountStore_UpsertKeepsBonuses() {
	store := NewAccountStore(s.db)
	acc := s.account("a")

	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Account{acc}))

	acc.FluffyFollowers = 25
	acc.BonusMultiplier = 1.2
	s.Require().NoError(store.UpdateBonuses(s.ctx, []domain.Account{acc}))

	acc.FollowersCount = 500
	acc.FluffyFollowers = 0
	acc.BonusMultiplier = 0
	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Account{acc}))

	all, err := store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(500, all[0].FollowersCount)
	s.Equal(25, all[0].FluffyFollowers)
	s.InDelta(1.2, all[0].BonusMultiplier, 1e-9)
}

func (s *PostgresIntegrationSuite) TestScoreStore_UpsertReplacesScore() {
	s.Require().NoError(NewAccountStore(s.db).UpsertBatch(s.ctx, []domain.Account{s.account("a")}))
	s.Require().NoError(NewTweetStore(s.db).UpsertBatch(s.ctx, []domain.Tweet{s.tweet("1", "a", s.now, 0)}))

	store := NewScoreStore(s.db)
	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Score{s.score("a", "1", 2.5)}))
	s.Require().NoError(store.UpsertBatch(s.ctx, []domain.Score{s.score("a", "1", 4.0)}))

	var final []float64
	s.Require().NoError(s.db.SelectContext(s.ctx, &final, "SELECT final_score FROM scores"))
	s.Equal([]float64{4.0}, final)
}

func (s *PostgresIntegrationSuite) seedLeaderboard() {
	accounts := NewAccountStore(s.db)
	tweets := NewTweetStore(s.db)
	scores := NewScoreStore(s.db)

	s.Require().NoError(accounts.UpsertBatch(s.ctx, []domain.Account{s.account("a"), s.account("b"), s.account("c")}))

	day := s.now.Add(-24 * time.Hour)
	var ts []domain.Tweet
	var sc []domain.Score
	// three tweets from a on one day, one each from b and c
	for i, v := range []float64{5, 3, 1} {
		id := "a" + string(rune('1'+i))
		ts = append(ts, s.tweet(id, "a", day.Add(time.Duration(i)*time.Minute), 0))
		sc = append(sc, s.score("a", id, v))
	}
	ts = append(ts, s.tweet("b1", "b", day, 0), s.tweet("c1", "c", s.now.AddDate(0, 0, -40), 0))
	sc = append(sc, s.score("b", "b1", 7), s.score("c", "c1", 100))

	s.Require().NoError(tweets.UpsertBatch(s.ctx, ts))
	s.Require().NoError(scores.UpsertBatch(s.ctx, sc))
}

func (s *PostgresIntegrationSuite) TestLeaderboardStore_RanksWithDailyCap() {
	s.seedLeaderboard()
	store := NewLeaderboardStore(s.db)
	since := s.now.AddDate(0, 0, -7)

	entries, err := store.Leaderboard(s.ctx, since, 10, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(1, entries[0].Rank)
	s.Equal("a", entries[0].UserID)
	s.InDelta(8.0, entries[0].TotalScore, 1e-9)
	s.Equal(2, entries[0].TweetCount)
	s.InDelta(4.0, entries[0].AvgScore, 1e-9)
	s.Equal("user_a", entries[0].Username)

	s.Equal(2, entries[1].Rank)
	s.Equal("b", entries[1].UserID)

	limited, err := store.Leaderboard(s.ctx, since, 1, 2)
	s.Require().NoError(err)
	s.Len(limited, 1)

	wide, err := store.Leaderboard(s.ctx, s.now.AddDate(0, 0, -90), 10, 10)
	s.Require().NoError(err)
	s.Require().Len(wide, 3)
	s.Equal("c", wide[0].UserID)
}

func (s *PostgresIntegrationSuite) TestLeaderboardStore_Stats() {
	s.seedLeaderboard()
	store := NewLeaderboardStore(s.db)

	stats, err := store.Stats(s.ctx, s.now.AddDate(0, 0, -7), 2)
	s.Require().NoError(err)
	s.Equal(2, stats.Participants)
	s.Equal(3, stats.Tweets)
	s.InDelta(15.0, stats.TotalScore, 1e-9)
	s.InDelta(5.0, stats.AvgScore, 1e-9)

	empty, err := store.Stats(s.ctx, s.now.Add(time.Hour), 2)
	s.Require().NoError(err)
	s.Equal(0, empty.Participants)
	s.Zero(empty.TotalScore)
}

func (s *PostgresIntegrationSuite) TestLeaderboardStore_UserDetail() {
	s.seedLeaderboard()
	store := NewLeaderboardStore(s.db)
	since := s.now.AddDate(0, 0, -7)

	detail, err := store.UserDetail(s.ctx, "a", since, 2)
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.Equal(1, detail.Rank)
	s.InDelta(8.0, detail.TotalScore, 1e-9)
	s.Len(detail.Scores, 3)
	s.Equal("a", detail.Scores[0].Tweet.AuthorID)
	s.Equal(detail.Scores[0].Tweet.ID, detail.Scores[0].Score.TweetID)

	outside, err := store.UserDetail(s.ctx, "c", since, 2)
	s.Require().NoError(err)
	s.Require().NotNil(outside)
	s.Zero(outside.Rank)
	s.Empty(outside.Scores)

	missing, err := store.UserDetail(s.ctx, "nobody", since, 2)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *PostgresIntegrationSuite) TestProcessingLogStore_SaveAndLatest() {
	store := NewProcessingLogStore(s.db)

	latest, err := store.Latest(s.ctx)
	s.Require().NoError(err)
	s.Nil(latest)

	log := &domain.ProcessingLog{
		ID:        uuid.NewString(),
		RunType:   domain.RunDailyBatch,
		Status:    domain.RunRunning,
		StartedAt: s.now,
	}
	s.Require().NoError(store.Save(s.ctx, log))

	completed := s.now.Add(time.Minute)
	log.Status = domain.RunFailed
	log.TweetsProcessed = 12
	log.APICallsUsed = 4
	log.Errors = []string{"lookup users: boom"}
	log.CompletedAt = &completed
	log.DurationMs = 60000
	s.Require().NoError(store.Save(s.ctx, log))

	latest, err = store.Latest(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(latest)
	s.Equal(log.ID, latest.ID)
	s.Equal(domain.RunFailed, latest.Status)
	s.Equal(12, latest.TweetsProcessed)
	s.Equal([]string{"lookup users: boom"}, latest.Errors)
	s.Require().NotNil(latest.CompletedAt)
	s.WithinDuration(completed, *latest.CompletedAt, time.Millisecond)
}

func (s *PostgresIntegrationSuite) TestRetentionStore_Prune() {
	s.seedLeaderboard()
	logs := NewProcessingLogStore(s.db)
	s.Require().NoError(logs.Save(s.ctx, &domain.ProcessingLog{
		ID: uuid.NewString(), RunType: domain.RunDailyBatch, Status: domain.RunCompleted,
		StartedAt: s.now.AddDate(0, 0, -45),
	}))
	_, err := s.db.ExecContext(s.ctx, "UPDATE accounts SET updated_at = $1 WHERE user_id = 'c'", s.now.AddDate(0, 0, -40))
	s.Require().NoError(err)

	stats, err := NewRetentionStore(s.db).Prune(s.ctx, s.now.AddDate(0, 0, -30), s.now.AddDate(0, 0, -30))
	s.Require().NoError(err)
	s.Equal(int64(1), stats.Scores)
	s.Equal(int64(1), stats.Tweets)
	s.Equal(int64(1), stats.Accounts)
	s.Equal(int64(1), stats.Logs)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets"))
	s.Equal(4, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	store := NewTweetStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		return store.UpsertBatch(ctx, []domain.Tweet{s.tweet("tx", "a", s.now, 0)})
	})
	s.NoError(err)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets WHERE id = $1", "tx"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	tweets := NewTweetStore(s.db)
	scores := NewScoreStore(s.db)

	s.Require().NoError(tweets.UpsertBatch(s.ctx, []domain.Tweet{s.tweet("keep", "a", s.now, 0)}))

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := tweets.UpsertBatch(ctx, []domain.Tweet{s.tweet("gone", "a", s.now, 0)}); err != nil {
			return err
		}
		// unknown tweet id violates the foreign key
		return scores.UpsertBatch(ctx, []domain.Score{s.score("a", "missing", 1)})
	})
	s.Error(err)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets WHERE id = $1", "gone"))
	s.Equal(0, count)

	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets WHERE id = $1", "keep"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_NestedCallJoinsOuter() {
	tm := NewTransactionManager(s.db)
	store := NewTweetStore(s.db)

	var outer, inner *sqlx.Tx
	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		outer = GetTxFromContext(ctx)
		if err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			inner = GetTxFromContext(ctx)
			return store.UpsertBatch(ctx, []domain.Tweet{s.tweet("nested", "a", s.now, 0)})
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.EqualError(err, "abort")
	s.Require().NotNil(outer)
	s.Same(outer, inner)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets WHERE id = $1", "nested"))
	s.Equal(0, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_PanicRollsBack() {
	tm := NewTransactionManager(s.db)
	store := NewTweetStore(s.db)

	s.Panics(func() {
		_ = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
			if err := store.UpsertBatch(ctx, []domain.Tweet{s.tweet("panic", "a", s.now, 0)}); err != nil {
				return err
			}
			panic("boom")
		})
	})

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM tweets WHERE id = $1", "panic"))
	s.Equal(0, count)
}
