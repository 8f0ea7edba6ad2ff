package entrez

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// AnonymousRate is the allowed request rate without an API key
	// (3 requests per second).
	AnonymousRate = 3

	// KeyedRate is the allowed request rate with an API key
	// (10 requests per second).
	KeyedRate = 10

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// DefaultBackoff is the wait applied after a rate limit response
	// that carries no retry-after header.
	DefaultBackoff = 2 * time.Second
)

// RateLimiter throttles Entrez requests.
//
// Entrez publishes fixed per-second quotas instead of quota headers, so
// the proactive token bucket does most of the work; the reactive part
// only honours Retry-After when the service still pushes back.
type RateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter for the given per-second rate.
func NewRateLimiter(perSecond int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return nil
}

// CheckRateLimit checks if the response indicates rate limiting and
// returns a RateLimitError if so.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAt := time.Now().Add(DefaultBackoff)
	if after := resp.Header.Get(HeaderRetryAfter); after != "" {
		if seconds, err := strconv.Atoi(after); err == nil {
			retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	r.mu.Lock()
	r.retryAt = retryAt
	r.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// RetryAt returns when the limiter will allow requests again.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}
