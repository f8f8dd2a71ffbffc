package scoring

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluffyshare/internal/config"
	"fluffyshare/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultScoring())
}

func exampleInput() Input {
	return Input{
		Type:      domain.TweetOriginal,
		Likes:     10,
		Retweets:  2,
		Replies:   1,
		Quotes:    0,
		Followers: 100,
	}
}

func TestScore_WorkedExampleAtAgeZero(t *testing.T) {
	e := newTestEngine()

	s := e.Score(exampleInput())

	wantEngagement := math.Log(11) + 1.2*math.Log(3) + 1.5*math.Log(2)
	assert.InDelta(t, 4.756, s.EngagementScore, 0.001)
	assert.InDelta(t, wantEngagement, s.EngagementScore, 1e-9)
	assert.InDelta(t, math.Log(101), s.ReachFactor, 1e-9)
	assert.Equal(t, 1.0, s.TypeMultiplier)
	assert.Equal(t, 0.0, s.OriginalityBonus)
	assert.InDelta(t, 6.678, s.RawScore, 0.001)
	assert.Equal(t, 1.0, s.DecayFactor)
	assert.Equal(t, 1.0, s.BonusMultiplier)
	assert.Equal(t, 1.0, s.BotPenalty)
	assert.InDelta(t, s.RawScore, s.FinalScore, 1e-9)
}

func TestScore_OriginalityBonusAdds(t *testing.T) {
	e := newTestEngine()
	in := exampleInput()
	plain := e.Score(in)

	in.Original = true
	withBonus := e.Score(in)

	assert.InDelta(t, plain.RawScore+1.0, withBonus.RawScore, 1e-9)
}

func TestScore_HalvesAfterOneHalfLife(t *testing.T) {
	e := newTestEngine()
	fresh := e.Score(exampleInput())

	in := exampleInput()
	in.AgeDays = math.Ln2 / 0.05
	old := e.Score(in)
	assert.InDelta(t, 0.5, old.DecayFactor, 1e-9)
	assert.InDelta(t, fresh.FinalScore/2, old.FinalScore, 1e-9)

	in.AgeDays = 14
	approx := e.Score(in)
	assert.InDelta(t, 0.5, approx.DecayFactor, 0.01)
	assert.InDelta(t, fresh.FinalScore/2, approx.FinalScore, 0.05)
}

func TestScore_Invariants(t *testing.T) {
	e := newTestEngine()

	types := []domain.TweetType{domain.TweetOriginal, domain.TweetQuote, domain.TweetReply, domain.TweetRetweet, "unknown"}
	for i, typ := range types {
		for _, age := range []float64{0, 0.5, 3, 13.86, 45, 59.9} {
			for _, bot := range []float64{0, 0.5, 0.7, 0.71, 1} {
				in := Input{
					Type:            typ,
					Likes:           i * 7,
					Retweets:        i * 3,
					Replies:         i,
					Quotes:          i * 2,
					Followers:       i * 1000,
					FluffyFollowers: i * 13,
					BotScore:        bot,
					AgeDays:         age,
					Original:        i%2 == 0,
				}
				s := e.Score(in)

				assert.InDelta(t, s.RawScore*math.Exp(-0.05*age), s.DecayedScore, 1e-9)
				assert.InDelta(t, s.DecayedScore*s.BonusMultiplier*s.BotPenalty, s.FinalScore, 1e-9)
				if bot > 0.7 {
					assert.Equal(t, 0.5, s.BotPenalty)
				} else {
					assert.Equal(t, 1.0, s.BotPenalty)
				}
			}
		}
	}
}

func TestScore_NegativeAgeTreatedAsZero(t *testing.T) {
	e := newTestEngine()
	in := exampleInput()
	in.AgeDays = -2

	s := e.Score(in)

	assert.Equal(t, 1.0, s.DecayFactor)
	assert.Equal(t, 0.0, s.AgeDays)
}

func TestScore_ZeroFollowersStillValid(t *testing.T) {
	e := newTestEngine()

	s := e.Score(Input{Type: domain.TweetReply})

	assert.Equal(t, 0.0, s.ReachFactor)
	assert.Equal(t, 0.0, s.EngagementScore)
	assert.InDelta(t, 0.7, s.FinalScore, 1e-9)
}

func TestTypeMultiplier(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 1.0, e.TypeMultiplier(domain.TweetOriginal))
	assert.Equal(t, 0.9, e.TypeMultiplier(domain.TweetQuote))
	assert.Equal(t, 0.7, e.TypeMultiplier(domain.TweetReply))
	assert.Equal(t, 0.4, e.TypeMultiplier(domain.TweetRetweet))
	assert.Equal(t, 1.0, e.TypeMultiplier("space"))
}

func TestBonusMultiplier_MonotoneAndCapped(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 1.0, e.BonusMultiplier(0))
	assert.Equal(t, 1.0, e.BonusMultiplier(9))
	assert.InDelta(t, 1.1, e.BonusMultiplier(10), 1e-9)
	assert.InDelta(t, 1.5, e.BonusMultiplier(55), 1e-9)

	prev := 0.0
	for f := 0; f <= 1000; f++ {
		m := e.BonusMultiplier(f)
		require.GreaterOrEqual(t, m, prev, "fluffy followers %d", f)
		require.LessOrEqual(t, m, 2.0)
		prev = m
	}
	assert.Equal(t, 2.0, e.BonusMultiplier(1000))
}

func TestBotPenaltyFor_StrictlyAboveThreshold(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 1.0, e.BotPenaltyFor(0.7))
	assert.Equal(t, 0.5, e.BotPenaltyFor(0.71))
	assert.Equal(t, 1.0, e.BotPenaltyFor(0))
}

func TestScoreTweet_FillsIdentity(t *testing.T) {
	e := newTestEngine()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tweet := domain.Tweet{
		ID:        "t1",
		AuthorID:  "u1",
		Type:      domain.TweetQuote,
		Text:      "gm @fluffyshare " + strings.Repeat("fluff ", 20),
		CreatedAt: now.Add(-48 * time.Hour),
		Likes:     4,
	}
	account := domain.Account{UserID: "u1", FollowersCount: 250, FluffyFollowers: 20, BotScore: 0.9}

	s := e.ScoreTweet(tweet, account, now)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "t1", s.TweetID)
	assert.Equal(t, now, s.ComputedAt)
	assert.InDelta(t, 2.0, s.AgeDays, 1e-9)
	assert.Equal(t, 1.0, s.OriginalityBonus)
	assert.InDelta(t, 1.2, s.BonusMultiplier, 1e-9)
	assert.Equal(t, 0.5, s.BotPenalty)
}

func TestAgeDays(t *testing.T) {
	now := time.Now()

	assert.InDelta(t, 1.5, AgeDays(now.Add(-36*time.Hour), now), 1e-9)
	assert.Equal(t, 0.0, AgeDays(now.Add(time.Hour), now))
}
