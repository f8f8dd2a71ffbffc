package twitter

// SearchResponse is the body of GET /2/tweets/search/recent.
type SearchResponse struct {
	Data []APITweet `json:"data"`
	Meta SearchMeta `json:"meta"`
}

type SearchMeta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

type APITweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	ConversationID   string            `json:"conversation_id"`
	CreatedAt        string            `json:"created_at"`
	PublicMetrics    TweetMetrics      `json:"public_metrics"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets"`
	Entities         *Entities         `json:"entities"`
	Attachments      *Attachments      `json:"attachments"`
}

type TweetMetrics struct {
	LikeCount       int `json:"like_count"`
	RetweetCount    int `json:"retweet_count"`
	ReplyCount      int `json:"reply_count"`
	QuoteCount      int `json:"quote_count"`
	ImpressionCount int `json:"impression_count"`
}

type ReferencedTweet struct {
	Type string `json:"type"` // retweeted, quoted or replied_to
	ID   string `json:"id"`
}

type Entities struct {
	URLs []URLEntity `json:"urls"`
}

type URLEntity struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
	DisplayURL  string `json:"display_url"`
	MediaKey    string `json:"media_key"`
}

type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

// UsersResponse is the body of GET /2/users.
type UsersResponse struct {
	Data   []APIUser    `json:"data"`
	Errors []APIProblem `json:"errors"`
}

type APIUser struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Username        string      `json:"username"`
	CreatedAt       string      `json:"created_at"`
	Verified        bool        `json:"verified"`
	ProfileImageURL string      `json:"profile_image_url"`
	PublicMetrics   UserMetrics `json:"public_metrics"`
}

type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
	ListedCount    int `json:"listed_count"`
}

// APIProblem is a partial error entry, e.g. a suspended user in a lookup.
type APIProblem struct {
	Value  string `json:"value"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}
