// Package scoring turns tweet and account metrics into Fluffyshare scores.
//
// Everything here is a pure function of its inputs and the configured
// constants, so a score can always be recomputed from the stored components.
package scoring

import (
	"math"
	"time"

	"fluffyshare/internal/config"
	"fluffyshare/internal/domain"
)

// Input is everything a tweet score depends on.
type Input struct {
	Type            domain.TweetType
	Likes           int
	Retweets        int
	Replies         int
	Quotes          int
	Followers       int
	FluffyFollowers int
	BotScore        float64
	AgeDays         float64
	Original        bool
}

type Engine struct {
	cfg config.ScoringConfig
}

func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the constants the engine was built with.
func (e *Engine) Config() config.ScoringConfig {
	return e.cfg
}

// Score computes every component of a tweet score. The result satisfies
// DecayedScore == RawScore*DecayFactor and
// FinalScore == DecayedScore*BonusMultiplier*BotPenalty.
func (e *Engine) Score(in Input) domain.Score {
	var s domain.Score

	s.TypeMultiplier = e.TypeMultiplier(in.Type)

	w := e.cfg.EngagementWeights
	s.EngagementScore = w.Likes*logCount(in.Likes) +
		w.Retweets*logCount(in.Retweets) +
		w.Replies*logCount(in.Replies) +
		w.Quotes*logCount(in.Quotes)

	s.ReachFactor = logCount(in.Followers)

	if in.Original {
		s.OriginalityBonus = e.cfg.OriginalityBonus
	}

	s.RawScore = s.TypeMultiplier + s.EngagementScore + e.cfg.ReachFactorWeight*s.ReachFactor + s.OriginalityBonus

	age := in.AgeDays
	if age < 0 {
		age = 0
	}
	s.AgeDays = age
	s.DecayFactor = math.Exp(-e.cfg.DecayLambda * age)
	s.DecayedScore = s.RawScore * s.DecayFactor

	s.BonusMultiplier = e.BonusMultiplier(in.FluffyFollowers)
	s.BotPenalty = e.BotPenaltyFor(in.BotScore)
	s.FinalScore = s.DecayedScore * s.BonusMultiplier * s.BotPenalty

	return s
}

// ScoreTweet builds the input for tweet t by account a at time now and scores it.
func (e *Engine) ScoreTweet(t domain.Tweet, a domain.Account, now time.Time) domain.Score {
	s := e.Score(Input{
		Type:            t.Type,
		Likes:           t.Likes,
		Retweets:        t.Retweets,
		Replies:         t.Replies,
		Quotes:          t.Quotes,
		Followers:       a.FollowersCount,
		FluffyFollowers: a.FluffyFollowers,
		BotScore:        a.BotScore,
		AgeDays:         AgeDays(t.CreatedAt, now),
		Original:        HasOriginalityFeatures(t.Text, t.HasLink, t.IsThreadRoot, t.HasMedia),
	})
	s.UserID = a.UserID
	s.TweetID = t.ID
	s.ComputedAt = now
	return s
}

// TypeMultiplier looks up the multiplier for a tweet type. Unknown types
// are scored like original tweets.
func (e *Engine) TypeMultiplier(t domain.TweetType) float64 {
	if m, ok := e.cfg.TypeMultipliers[string(t)]; ok {
		return m
	}
	return e.cfg.TypeMultipliers[string(domain.TweetOriginal)]
}

// BonusMultiplier rewards accounts followed by many mission participants:
// min(1 + bonus*floor(f/block), max).
func (e *Engine) BonusMultiplier(fluffyFollowers int) float64 {
	if fluffyFollowers <= 0 || e.cfg.FluffyFollowersBlockSize <= 0 {
		return 1.0
	}
	blocks := fluffyFollowers / e.cfg.FluffyFollowersBlockSize
	m := 1 + e.cfg.FluffyFollowersBonus*float64(blocks)
	return math.Min(m, e.cfg.MaxBonusMultiplier)
}

// BotPenaltyFor returns the configured penalty iff botScore exceeds the threshold.
func (e *Engine) BotPenaltyFor(botScore float64) float64 {
	if botScore > e.cfg.BotScoreThreshold {
		return e.cfg.BotPenalty
	}
	return 1.0
}

// AgeDays is the fractional age in days of something created at createdAt.
func AgeDays(createdAt, now time.Time) float64 {
	d := now.Sub(createdAt).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}

func logCount(n int) float64 {
	if n < 0 {
		n = 0
	}
	return math.Log(float64(n) + 1)
}
