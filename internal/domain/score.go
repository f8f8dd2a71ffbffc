package domain

import "time"

// Score keeps every intermediate component of a tweet score so a leaderboard
// position can be explained after the fact.
type Score struct {
	UserID           string    `db:"user_id" json:"user_id"`
	TweetID          string    `db:"tweet_id" json:"tweet_id"`
	TypeMultiplier   float64   `db:"type_multiplier" json:"type_multiplier"`
	EngagementScore  float64   `db:"engagement_score" json:"engagement_score"`
	ReachFactor      float64   `db:"reach_factor" json:"reach_factor"`
	OriginalityBonus float64   `db:"originality_bonus" json:"originality_bonus"`
	RawScore         float64   `db:"raw_score" json:"raw_score"`
	DecayFactor      float64   `db:"decay_factor" json:"decay_factor"`
	DecayedScore     float64   `db:"decayed_score" json:"decayed_score"`
	BonusMultiplier  float64   `db:"bonus_multiplier" json:"bonus_multiplier"`
	BotPenalty       float64   `db:"bot_penalty" json:"bot_penalty"`
	FinalScore       float64   `db:"final_score" json:"final_score"`
	AgeDays          float64   `db:"age_days" json:"age_days"`
	ComputedAt       time.Time `db:"computed_at" json:"computed_at"`
}
