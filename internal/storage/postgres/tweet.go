package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fluffyshare/internal/domain"
)

var tweetColumns = []string{
	"id", "author_id", "conversation_id", "text", "tweet_type", "created_at",
	"likes", "retweets", "replies", "quotes", "impressions",
	"has_link", "has_media", "is_thread_root", "processed", "fetched_at", "updated_at",
}

type TweetStore struct {
	db *sqlx.DB
}

func NewTweetStore(db *sqlx.DB) *TweetStore {
	return &TweetStore{db: db}
}

// UpsertBatch inserts or refreshes tweets by id. A stored tweet whose
// counters changed is marked unprocessed again so it gets rescored.
func (s *TweetStore) UpsertBatch(ctx context.Context, tweets []domain.Tweet) error {
	tweets = dedupeTweets(tweets)
	if len(tweets) == 0 {
		return nil
	}

	const cols = 15
	exec := GetExecutor(ctx, s.db)

	for _, c := range chunks(len(tweets), maxBatchRows) {
		batch := tweets[c[0]:c[1]]

		query := `
		INSERT INTO tweets (
			id, author_id, conversation_id, text, tweet_type, created_at,
			likes, retweets, replies, quotes, impressions,
			has_link, has_media, is_thread_root, fetched_at
		) VALUES ` + valuesClause(len(batch), cols) + `
		ON CONFLICT (id) DO UPDATE SET
			processed = tweets.processed
				AND tweets.likes = EXCLUDED.likes
				AND tweets.retweets = EXCLUDED.retweets
				AND tweets.replies = EXCLUDED.replies
				AND tweets.quotes = EXCLUDED.quotes,
			likes = EXCLUDED.likes,
			retweets = EXCLUDED.retweets,
			replies = EXCLUDED.replies,
			quotes = EXCLUDED.quotes,
			impressions = EXCLUDED.impressions,
			has_link = EXCLUDED.has_link,
			has_media = EXCLUDED.has_media,
			is_thread_root = EXCLUDED.is_thread_root,
			fetched_at = EXCLUDED.fetched_at,
			updated_at = EXCLUDED.fetched_at`

		args := make([]interface{}, 0, len(batch)*cols)
		for _, t := range batch {
			args = append(args,
				t.ID, t.AuthorID, t.ConversationID, t.Text, string(t.Type), t.CreatedAt,
				t.Likes, t.Retweets, t.Replies, t.Quotes, t.Impressions,
				t.HasLink, t.HasMedia, t.IsThreadRoot, t.FetchedAt,
			)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

// ListUnprocessed returns up to limit tweets without an up to date score.
// Tweets already skipped maxAttempts times are left out; fewer skips sort
// first, then oldest first.
func (s *TweetStore) ListUnprocessed(ctx context.Context, limit, maxAttempts int) ([]domain.Tweet, error) {
	query := `SELECT ` + strings.Join(tweetColumns, ", ") + `
		FROM tweets
		WHERE NOT processed AND score_attempts < $2
		ORDER BY score_attempts, created_at, id
		LIMIT $1`

	var tweets []domain.Tweet
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &tweets, query, limit, maxAttempts)
	return tweets, err
}

func (s *TweetStore) MarkProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE tweets SET processed = TRUE WHERE id = ANY($1)",
		pq.Array(ids),
	)
	return err
}

// RecordSkipped counts one failed scoring attempt for each tweet.
func (s *TweetStore) RecordSkipped(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE tweets SET score_attempts = score_attempts + 1 WHERE id = ANY($1)",
		pq.Array(ids),
	)
	return err
}

// dedupeTweets keeps the last occurrence of every id; a single INSERT ... ON
// CONFLICT statement cannot touch the same row twice.
func dedupeTweets(tweets []domain.Tweet) []domain.Tweet {
	idx := make(map[string]int, len(tweets))
	out := make([]domain.Tweet, 0, len(tweets))
	for _, t := range tweets {
		if i, ok := idx[t.ID]; ok {
			out[i] = t
			continue
		}
		idx[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}
