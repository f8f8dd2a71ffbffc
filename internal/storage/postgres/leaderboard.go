package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"fluffyshare/internal/domain"
)

// cappedScores ranks every score inside the window per author and UTC day so
// that only the best $2 tweets of a day count. $1 is the window start.
const cappedScores = `
	capped AS (
		SELECT user_id, final_score, created_at
		FROM (
			SELECT s.user_id, s.final_score, t.created_at,
				ROW_NUMBER() OVER (
					PARTITION BY s.user_id, date_trunc('day', t.created_at AT TIME ZONE 'UTC')
					ORDER BY s.final_score DESC, s.tweet_id
				) AS day_rank
			FROM scores s
			JOIN tweets t ON t.id = s.tweet_id
			WHERE t.created_at >= $1
		) ranked
		WHERE day_rank <= $2
	),
	totals AS (
		SELECT user_id,
			SUM(final_score) AS total_score,
			COUNT(*) AS tweet_count,
			AVG(final_score) AS avg_score,
			MAX(created_at) AS last_tweet_at
		FROM capped
		GROUP BY user_id
	),
	ranking AS (
		SELECT ROW_NUMBER() OVER (ORDER BY tt.total_score DESC, tt.user_id) AS rank,
			tt.user_id, a.username, a.display_name, tt.total_score, tt.tweet_count,
			tt.avg_score, a.bot_score, a.bonus_multiplier, tt.last_tweet_at
		FROM totals tt
		JOIN accounts a ON a.user_id = tt.user_id
	)`

type LeaderboardStore struct {
	db *sqlx.DB
}

func NewLeaderboardStore(db *sqlx.DB) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

// Leaderboard ranks authors by their summed final scores since the window start.
func (s *LeaderboardStore) Leaderboard(ctx context.Context, since time.Time, limit, dailyCap int) ([]domain.LeaderboardEntry, error) {
	query := `WITH ` + cappedScores + `
		SELECT rank, user_id, username, display_name, total_score, tweet_count,
			avg_score, bot_score, bonus_multiplier, last_tweet_at
		FROM ranking
		ORDER BY rank
		LIMIT $3`

	entries := []domain.LeaderboardEntry{}
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &entries, query, since, dailyCap, limit)
	return entries, err
}

func (s *LeaderboardStore) Stats(ctx context.Context, since time.Time, dailyCap int) (domain.Stats, error) {
	query := `WITH ` + cappedScores + `
		SELECT COUNT(DISTINCT user_id) AS participants,
			COUNT(*) AS tweets,
			COALESCE(SUM(final_score), 0) AS total_score,
			COALESCE(AVG(final_score), 0) AS avg_score
		FROM capped`

	var stats domain.Stats
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &stats, query, since, dailyCap)
	return stats, err
}

type scoredTweetRow struct {
	Tweet domain.Tweet `db:"tweet"`
	Score domain.Score `db:"score"`
}

// UserDetail returns nil when the account is unknown.
func (s *LeaderboardStore) UserDetail(ctx context.Context, userID string, since time.Time, dailyCap int) (*domain.UserDetail, error) {
	exec := GetExecutor(ctx, s.db)

	var account domain.Account
	err := sqlx.GetContext(ctx, exec, &account,
		`SELECT `+strings.Join(accountColumns, ", ")+` FROM accounts WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	detail := &domain.UserDetail{Account: account, Scores: []domain.ScoredTweet{}}

	var position struct {
		Rank       int     `db:"rank"`
		TotalScore float64 `db:"total_score"`
	}
	err = sqlx.GetContext(ctx, exec, &position,
		`WITH `+cappedScores+` SELECT rank, total_score FROM ranking WHERE user_id = $3`,
		since, dailyCap, userID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, err
	default:
		detail.Rank = position.Rank
		detail.TotalScore = position.TotalScore
	}

	query := `SELECT ` + columnList("t", "tweet", tweetColumns) + `, ` + columnList("s", "score", scoreColumns) + `
		FROM scores s
		JOIN tweets t ON t.id = s.tweet_id
		WHERE s.user_id = $1 AND t.created_at >= $2
		ORDER BY t.created_at DESC`

	var rows []scoredTweetRow
	if err := sqlx.SelectContext(ctx, exec, &rows, query, userID, since); err != nil {
		return nil, err
	}
	for _, r := range rows {
		detail.Scores = append(detail.Scores, domain.ScoredTweet{Tweet: r.Tweet, Score: r.Score})
	}

	return detail, nil
}
