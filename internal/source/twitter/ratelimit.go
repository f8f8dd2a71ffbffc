package twitter

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	headerRemaining = "x-rate-limit-remaining"
	headerReset     = "x-rate-limit-reset"
)

// rateLimitState remembers the window reported by the last response.
type rateLimitState struct {
	mu        sync.Mutex
	known     bool
	remaining int
	reset     time.Time
}

func (r *rateLimitState) update(h http.Header) {
	rem, err := strconv.Atoi(h.Get(headerRemaining))
	if err != nil {
		return
	}
	resetUnix, err := strconv.ParseInt(h.Get(headerReset), 10, 64)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.known = true
	r.remaining = rem
	r.reset = time.Unix(resetUnix, 0)
}

// wait returns how long to sleep before the next call, zero if calls remain.
func (r *rateLimitState) wait(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known || r.remaining > 0 || !r.reset.After(now) {
		return 0
	}
	return r.reset.Sub(now)
}

func (r *rateLimitState) snapshot() (int, time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.reset, r.known
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(h http.Header, now time.Time) time.Duration {
	ra := h.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
