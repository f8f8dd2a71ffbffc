package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"fluffyshare/internal/domain"
	"fluffyshare/internal/metrics"
)

const (
	searchPath = "/2/tweets/search/recent"
	usersPath  = "/2/users"

	// MaxIDsPerLookup is the largest id batch the users endpoint accepts.
	MaxIDsPerLookup = 100

	minPageSize = 10
	maxPageSize = 100

	tweetFields = "created_at,public_metrics,referenced_tweets,conversation_id,entities,attachments,author_id"
	userFields  = "created_at,public_metrics,verified,profile_image_url"

	maxErrorBody = 4 << 10
)

// Config holds tweet API client configuration.
type Config struct {
	BaseURL           string
	APIKey            string
	APIKeyHeader      string
	Query             string
	PageSize          int
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// APIError is a non-2xx answer from the tweet API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tweet api: status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed when retried.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client searches mentions and looks up users on the v2 tweet API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	apiKeyHeader   string
	query          string
	pageSize       int
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	rateLimit      rateLimitState
	calls          atomic.Int64
	now            func() time.Time
	logger         *slog.Logger
}

// New creates a tweet API client.
func New(cfg Config, logger *slog.Logger) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		apiKeyHeader:   cfg.APIKeyHeader,
		query:          cfg.Query,
		pageSize:       clamp(cfg.PageSize, minPageSize, maxPageSize),
		limiter:        rate.NewLimiter(limit, burst),
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		now:            time.Now,
		logger:         logger.With("source", "twitter"),
	}
}

// CallCount returns the number of HTTP requests sent so far.
func (c *Client) CallCount() int64 {
	return c.calls.Load()
}

// FetchMentions pages through the configured mention query until the API
// has no next page or maxTweets tweets were collected.
func (c *Client) FetchMentions(ctx context.Context, maxTweets int) ([]domain.Tweet, error) {
	var all []APITweet
	seen := make(map[string]bool)
	token := ""

	for page := 0; len(all) < maxTweets; page++ {
		size := c.pageSize
		if remaining := maxTweets - len(all); remaining < size {
			size = remaining
		}

		resp, err := c.SearchMentions(ctx, c.query, size, token)
		if err != nil {
			return c.toTweets(all), fmt.Errorf("fetch page %d: %w", page, err)
		}

		all = append(all, resp.Data...)

		c.logger.Debug("fetched page",
			"page", page,
			"tweets", len(resp.Data),
			"total", len(all),
		)

		next := resp.Meta.NextToken
		if next == "" || len(resp.Data) == 0 || seen[next] {
			break
		}
		seen[next] = true
		token = next
	}

	if len(all) > maxTweets {
		all = all[:maxTweets]
	}

	return c.toTweets(all), nil
}

// SearchMentions fetches a single page of recent tweets matching query.
func (c *Client) SearchMentions(ctx context.Context, query string, maxResults int, pageToken string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(clamp(maxResults, minPageSize, maxPageSize)))
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("expansions", "author_id")
	if pageToken != "" {
		params.Set("next_token", pageToken)
	}

	body, err := c.get(ctx, searchPath, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}

// GetUsersByIDs looks up users, splitting ids into batches the API accepts.
func (c *Client) GetUsersByIDs(ctx context.Context, ids []string) (*UsersResponse, error) {
	out := &UsersResponse{}

	for start := 0; start < len(ids); start += MaxIDsPerLookup {
		end := start + MaxIDsPerLookup
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("ids", strings.Join(ids[start:end], ","))
		params.Set("user.fields", userFields)

		body, err := c.get(ctx, usersPath, params)
		if err != nil {
			return nil, fmt.Errorf("lookup users %d-%d: %w", start, end, err)
		}

		var chunk UsersResponse
		if err := json.Unmarshal(body, &chunk); err != nil {
			return nil, fmt.Errorf("decode users response: %w", err)
		}
		out.Data = append(out.Data, chunk.Data...)
		out.Errors = append(out.Errors, chunk.Errors...)
	}

	return out, nil
}

// LookupAccounts returns the accounts behind ids. Users the API could not
// return are logged and left out.
func (c *Client) LookupAccounts(ctx context.Context, ids []string) ([]domain.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range resp.Errors {
		c.logger.Warn("user lookup problem", "user_id", p.Value, "detail", p.Detail)
	}

	accounts := make([]domain.Account, 0, len(resp.Data))
	for _, u := range resp.Data {
		accounts = append(accounts, c.toAccount(u))
	}
	return accounts, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path + "?" + params.Encode()

	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var body []byte
		var hdr http.Header
		body, hdr, err = c.doRequest(ctx, path, u)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		if hdr != nil {
			if ra := retryAfter(hdr, c.now()); ra > backoff {
				backoff = ra
			}
		}
		metrics.IncAPIRetry(path)
		c.logger.Warn("request failed, retrying",
			"endpoint", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		if err := sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, endpoint, u string) ([]byte, http.Header, error) {
	if wait := c.rateLimit.wait(c.now()); wait > 0 {
		_, reset, _ := c.rateLimit.snapshot()
		c.logger.Info("rate limit exhausted, waiting for reset", "endpoint", endpoint, "reset", reset, "wait", wait)
		if err := sleep(ctx, wait); err != nil {
			return nil, nil, err
		}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	c.auth(req)

	c.calls.Add(1)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveAPICall(endpoint, 0)
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveAPICall(endpoint, resp.StatusCode)
	c.rateLimit.update(resp.Header)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.Header, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, fmt.Errorf("read response: %w", err)
	}
	return body, resp.Header, nil
}

func (c *Client) auth(req *http.Request) {
	if strings.EqualFold(c.apiKeyHeader, "Authorization") {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	} else {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Fluffyshare/1.0")
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if c.maxBackoff > 0 && backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
