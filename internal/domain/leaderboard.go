package domain

import "time"

type LeaderboardEntry struct {
	Rank            int       `db:"rank" json:"rank"`
	UserID          string    `db:"user_id" json:"user_id"`
	Username        string    `db:"username" json:"username"`
	DisplayName     string    `db:"display_name" json:"display_name"`
	TotalScore      float64   `db:"total_score" json:"total_score"`
	TweetCount      int       `db:"tweet_count" json:"tweet_count"`
	AvgScore        float64   `db:"avg_score" json:"avg_score"`
	BotScore        float64   `db:"bot_score" json:"bot_score"`
	BonusMultiplier float64   `db:"bonus_multiplier" json:"bonus_multiplier"`
	LastTweetAt     time.Time `db:"last_tweet_at" json:"last_tweet_at"`
}

type Stats struct {
	WindowDays   int       `db:"-" json:"window_days"`
	Participants int       `db:"participants" json:"participants"`
	Tweets       int       `db:"tweets" json:"tweets"`
	TotalScore   float64   `db:"total_score" json:"total_score"`
	AvgScore     float64   `db:"avg_score" json:"avg_score"`
	GeneratedAt  time.Time `db:"-" json:"generated_at"`
}

type ScoredTweet struct {
	Tweet Tweet `json:"tweet"`
	Score Score `json:"score"`
}

// UserDetail is one account with its scored tweets inside a window.
type UserDetail struct {
	Account    Account       `json:"account"`
	WindowDays int           `json:"window_days"`
	Rank       int           `json:"rank"`
	TotalScore float64       `json:"total_score"`
	Scores     []ScoredTweet `json:"scores"`
}
