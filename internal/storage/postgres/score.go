package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fluffyshare/internal/domain"
)

var scoreColumns = []string{
	"user_id", "tweet_id", "type_multiplier", "engagement_score", "reach_factor",
	"originality_bonus", "raw_score", "decay_factor", "decayed_score",
	"bonus_multiplier", "bot_penalty", "final_score", "age_days", "computed_at",
}

type ScoreStore struct {
	db *sqlx.DB
}

func NewScoreStore(db *sqlx.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// UpsertBatch writes one row per (user, tweet), replacing earlier components.
func (s *ScoreStore) UpsertBatch(ctx context.Context, scores []domain.Score) error {
	if len(scores) == 0 {
		return nil
	}

	cols := len(scoreColumns)
	exec := GetExecutor(ctx, s.db)

	for _, c := range chunks(len(scores), maxBatchRows) {
		batch := scores[c[0]:c[1]]

		query := `
		INSERT INTO scores (
			user_id, tweet_id, type_multiplier, engagement_score, reach_factor,
			originality_bonus, raw_score, decay_factor, decayed_score,
			bonus_multiplier, bot_penalty, final_score, age_days, computed_at
		) VALUES ` + valuesClause(len(batch), cols) + `
		ON CONFLICT (user_id, tweet_id) DO UPDATE SET
			type_multiplier = EXCLUDED.type_multiplier,
			engagement_score = EXCLUDED.engagement_score,
			reach_factor = EXCLUDED.reach_factor,
			originality_bonus = EXCLUDED.originality_bonus,
			raw_score = EXCLUDED.raw_score,
			decay_factor = EXCLUDED.decay_factor,
			decayed_score = EXCLUDED.decayed_score,
			bonus_multiplier = EXCLUDED.bonus_multiplier,
			bot_penalty = EXCLUDED.bot_penalty,
			final_score = EXCLUDED.final_score,
			age_days = EXCLUDED.age_days,
			computed_at = EXCLUDED.computed_at`

		args := make([]interface{}, 0, len(batch)*cols)
		for _, sc := range batch {
			args = append(args,
				sc.UserID, sc.TweetID, sc.TypeMultiplier, sc.EngagementScore, sc.ReachFactor,
				sc.OriginalityBonus, sc.RawScore, sc.DecayFactor, sc.DecayedScore,
				sc.BonusMultiplier, sc.BotPenalty, sc.FinalScore, sc.AgeDays, sc.ComputedAt,
			)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}
