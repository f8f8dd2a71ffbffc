package scoring

import (
	"math"
	"time"

	"fluffyshare/internal/domain"
)

// BotScore estimates in [0,1] how likely an account is automated. Higher is
// worse. Verified accounts get half the score.
func BotScore(a domain.Account, now time.Time) float64 {
	score := 0.0

	ageDays := now.Sub(a.AccountCreatedAt).Hours() / 24
	if a.AccountCreatedAt.IsZero() {
		ageDays = 0
	}
	switch {
	case ageDays < 30:
		score += 0.3
	case ageDays < 90:
		score += 0.1
	}

	if a.FollowingCount > 0 {
		ratio := float64(a.FollowersCount) / float64(a.FollowingCount)
		switch {
		case ratio < 0.1:
			score += 0.3
		case ratio < 0.5:
			score += 0.1
		}
	}

	if !a.HasProfileImage {
		score += 0.2
	}

	perDay := float64(a.TweetCount) / math.Max(ageDays, 1)
	switch {
	case perDay > 50:
		score += 0.3
	case perDay > 20:
		score += 0.1
	}

	if a.Verified {
		score /= 2
	}
	if score > 1 {
		score = 1
	}
	return math.Round(score*100) / 100
}

// EstimateFluffyFollowers approximates how many tracked participants follow an
// account as a fixed share of its followers. This is a heuristic, not a
// follower intersection; it can never exceed the other participants.
func (e *Engine) EstimateFluffyFollowers(followers, participants int) int {
	if followers <= 0 || participants <= 1 {
		return 0
	}
	est := int(math.Floor(float64(followers) * e.cfg.FluffyFollowerRate))
	if est > participants-1 {
		est = participants - 1
	}
	return est
}

// ApplyBotScore sets the bot score and penalty of a from its metrics.
func (e *Engine) ApplyBotScore(a *domain.Account, now time.Time) {
	a.BotScore = BotScore(*a, now)
	a.BotPenalty = e.BotPenaltyFor(a.BotScore)
}

// ApplyBonus sets the fluffy follower estimate and bonus multiplier of a.
func (e *Engine) ApplyBonus(a *domain.Account, participants int) {
	a.FluffyFollowers = e.EstimateFluffyFollowers(a.FollowersCount, participants)
	a.BonusMultiplier = e.BonusMultiplier(a.FluffyFollowers)
}
