package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fluffyshare/internal/domain"
)

var accountColumns = []string{
	"user_id", "username", "display_name", "followers_count", "following_count",
	"tweet_count", "verified", "has_profile_image", "account_created_at",
	"bot_score", "bot_penalty", "fluffy_followers", "bonus_multiplier", "updated_at",
}

type AccountStore struct {
	db *sqlx.DB
}

func NewAccountStore(db *sqlx.DB) *AccountStore {
	return &AccountStore{db: db}
}

// UpsertBatch stores profile metrics and bot scores. Fluffy follower
// estimates are owned by UpdateBonuses and left untouched here.
func (s *AccountStore) UpsertBatch(ctx context.Context, accounts []domain.Account) error {
	accounts = dedupeAccounts(accounts)
	if len(accounts) == 0 {
		return nil
	}

	const cols = 12
	exec := GetExecutor(ctx, s.db)

	for _, c := range chunks(len(accounts), maxBatchRows) {
		batch := accounts[c[0]:c[1]]

		query := `
		INSERT INTO accounts (
			user_id, username, display_name, followers_count, following_count,
			tweet_count, verified, has_profile_image, account_created_at,
			bot_score, bot_penalty, updated_at
		) VALUES ` + valuesClause(len(batch), cols) + `
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			followers_count = EXCLUDED.followers_count,
			following_count = EXCLUDED.following_count,
			tweet_count = EXCLUDED.tweet_count,
			verified = EXCLUDED.verified,
			has_profile_image = EXCLUDED.has_profile_image,
			account_created_at = EXCLUDED.account_created_at,
			bot_score = EXCLUDED.bot_score,
			bot_penalty = EXCLUDED.bot_penalty,
			updated_at = EXCLUDED.updated_at`

		args := make([]interface{}, 0, len(batch)*cols)
		for _, a := range batch {
			args = append(args,
				a.UserID, a.Username, a.DisplayName, a.FollowersCount, a.FollowingCount,
				a.TweetCount, a.Verified, a.HasProfileImage, a.AccountCreatedAt,
				a.BotScore, a.BotPenalty, a.UpdatedAt,
			)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

func (s *AccountStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + strings.Join(accountColumns, ", ") + ` FROM accounts ORDER BY user_id`

	var accounts []domain.Account
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &accounts, query)
	return accounts, err
}

// UpdateBonuses writes fluffy follower estimates and bonus multipliers.
func (s *AccountStore) UpdateBonuses(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	ids := make([]string, len(accounts))
	fluffy := make([]int64, len(accounts))
	bonus := make([]float64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.UserID
		fluffy[i] = int64(a.FluffyFollowers)
		bonus[i] = a.BonusMultiplier
	}

	query := `
		UPDATE accounts AS a SET
			fluffy_followers = v.fluffy_followers,
			bonus_multiplier = v.bonus_multiplier
		FROM unnest($1::text[], $2::int[], $3::float8[]) AS v(user_id, fluffy_followers, bonus_multiplier)
		WHERE a.user_id = v.user_id`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		pq.Array(ids), pq.Array(fluffy), pq.Array(bonus),
	)
	return err
}

func dedupeAccounts(accounts []domain.Account) []domain.Account {
	idx := make(map[string]int, len(accounts))
	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if i, ok := idx[a.UserID]; ok {
			out[i] = a
			continue
		}
		idx[a.UserID] = len(out)
		out = append(out, a)
	}
	return out
}
