package domain

import "time"

// Account is a tweet author as seen by the scoring pipeline.
type Account struct {
	UserID           string    `db:"user_id" json:"user_id"`
	Username         string    `db:"username" json:"username"`
	DisplayName      string    `db:"display_name" json:"display_name"`
	FollowersCount   int       `db:"followers_count" json:"followers_count"`
	FollowingCount   int       `db:"following_count" json:"following_count"`
	TweetCount       int       `db:"tweet_count" json:"tweet_count"`
	Verified         bool      `db:"verified" json:"verified"`
	HasProfileImage  bool      `db:"has_profile_image" json:"has_profile_image"`
	AccountCreatedAt time.Time `db:"account_created_at" json:"account_created_at"`
	BotScore         float64   `db:"bot_score" json:"bot_score"`
	BotPenalty       float64   `db:"bot_penalty" json:"bot_penalty"`
	FluffyFollowers  int       `db:"fluffy_followers" json:"fluffy_followers"`
	BonusMultiplier  float64   `db:"bonus_multiplier" json:"bonus_multiplier"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
