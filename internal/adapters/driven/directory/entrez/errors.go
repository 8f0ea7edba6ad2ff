package entrez

import (
	"errors"
	"fmt"
	"time"
)

// Entrez-specific errors.
var (
	// ErrEmptyBatch indicates a lookup was issued with no identifiers.
	ErrEmptyBatch = errors.New("entrez: empty identifier batch")

	// ErrUnknownStatus indicates the directory reported a record status
	// this tool does not understand. Refusing beats guessing a fate.
	ErrUnknownStatus = errors.New("entrez: unknown record status")
)

// RateLimitError represents a rate limit response from the directory.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("entrez: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// APIError represents an Entrez error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("entrez: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
