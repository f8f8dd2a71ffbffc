package twitter

import (
	"net/url"
	"strings"
	"time"

	"fluffyshare/internal/domain"
)

var threadMarkers = []string{"🧵", "1/", "(1/", "thread"}

func (c *Client) toTweets(raw []APITweet) []domain.Tweet {
	now := c.now()
	tweets := make([]domain.Tweet, 0, len(raw))

	for _, t := range raw {
		createdAt, err := time.Parse(time.RFC3339, t.CreatedAt)
		if err != nil {
			c.logger.Warn("failed to parse tweet date",
				"tweet_id", t.ID,
				"created_at", t.CreatedAt,
			)
			continue
		}
		if t.ID == "" || t.AuthorID == "" {
			c.logger.Warn("skipping tweet without id or author", "tweet_id", t.ID)
			continue
		}

		tweet := domain.Tweet{
			ID:             t.ID,
			AuthorID:       t.AuthorID,
			ConversationID: t.ConversationID,
			Text:           t.Text,
			Type:           classify(t.ReferencedTweets),
			CreatedAt:      createdAt.UTC(),
			Likes:          t.PublicMetrics.LikeCount,
			Retweets:       t.PublicMetrics.RetweetCount,
			Replies:        t.PublicMetrics.ReplyCount,
			Quotes:         t.PublicMetrics.QuoteCount,
			Impressions:    t.PublicMetrics.ImpressionCount,
			HasLink:        hasExternalLink(t.Entities),
			HasMedia:       t.Attachments != nil && len(t.Attachments.MediaKeys) > 0,
			FetchedAt:      now,
		}
		tweet.IsThreadRoot = isThreadRoot(tweet)

		tweets = append(tweets, tweet)
	}

	return tweets
}

func (c *Client) toAccount(u APIUser) domain.Account {
	a := domain.Account{
		UserID:          u.ID,
		Username:        u.Username,
		DisplayName:     u.Name,
		FollowersCount:  u.PublicMetrics.FollowersCount,
		FollowingCount:  u.PublicMetrics.FollowingCount,
		TweetCount:      u.PublicMetrics.TweetCount,
		Verified:        u.Verified,
		HasProfileImage: u.ProfileImageURL != "" && !strings.Contains(u.ProfileImageURL, "default_profile_images"),
		UpdatedAt:       c.now(),
	}
	if created, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil {
		a.AccountCreatedAt = created.UTC()
	} else {
		c.logger.Warn("failed to parse account date", "user_id", u.ID, "created_at", u.CreatedAt)
	}
	return a
}

func classify(refs []ReferencedTweet) domain.TweetType {
	typ := domain.TweetOriginal
	for _, r := range refs {
		switch r.Type {
		case "retweeted":
			return domain.TweetRetweet
		case "quoted":
			typ = domain.TweetQuote
		case "replied_to":
			if typ == domain.TweetOriginal {
				typ = domain.TweetReply
			}
		}
	}
	return typ
}

// hasExternalLink ignores media links and links back to tweets.
func hasExternalLink(e *Entities) bool {
	if e == nil {
		return false
	}
	for _, u := range e.URLs {
		if u.MediaKey != "" {
			continue
		}
		target := u.ExpandedURL
		if target == "" {
			target = u.URL
		}
		parsed, err := url.Parse(target)
		if err != nil {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
		if host == "twitter.com" || host == "x.com" {
			continue
		}
		return true
	}
	return false
}

func isThreadRoot(t domain.Tweet) bool {
	if t.Type != domain.TweetOriginal {
		return false
	}
	if t.ConversationID != "" && t.ConversationID != t.ID {
		return false
	}
	text := strings.ToLower(t.Text)
	for _, m := range threadMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
