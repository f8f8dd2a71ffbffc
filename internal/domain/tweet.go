package domain

import "time"

type TweetType string

const (
	TweetOriginal TweetType = "original"
	TweetRetweet  TweetType = "retweet"
	TweetQuote    TweetType = "quote"
	TweetReply    TweetType = "reply"
)

type Tweet struct {
	ID             string    `db:"id" json:"id"`
	AuthorID       string    `db:"author_id" json:"author_id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id,omitempty"`
	Text           string    `db:"text" json:"text"`
	Type           TweetType `db:"tweet_type" json:"type"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Likes          int       `db:"likes" json:"likes"`
	Retweets       int       `db:"retweets" json:"retweets"`
	Replies        int       `db:"replies" json:"replies"`
	Quotes         int       `db:"quotes" json:"quotes"`
	Impressions    int       `db:"impressions" json:"impressions"`
	HasLink        bool      `db:"has_link" json:"has_link"`
	HasMedia       bool      `db:"has_media" json:"has_media"`
	IsThreadRoot   bool      `db:"is_thread_root" json:"is_thread_root"`
	Processed      bool      `db:"processed" json:"processed"`
	FetchedAt      time.Time `db:"fetched_at" json:"fetched_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
