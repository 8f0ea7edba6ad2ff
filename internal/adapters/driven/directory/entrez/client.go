// Package entrez implements the directory service against the NCBI
// Entrez E-utilities.
//
// Lookups go through ESummary in batches. Entrez is rate-governed and
// asks callers to identify themselves, so every request carries tool
// and email parameters; an API key raises the allowed request rate.
package entrez

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/logger"
)

const (
	// DefaultBaseURL is the E-utilities endpoint.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultDatabase is the directory database looked up by default.
	DefaultDatabase = "nuccore"

	// DefaultTool identifies this client to Entrez.
	DefaultTool = "blastdiff"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxIDsPerRequest caps how many identifiers one ESummary call
	// carries. Batches above the cap split into sequential requests.
	MaxIDsPerRequest = 200
)

// Ensure Client implements the interface.
var _ driven.DirectoryService = (*Client)(nil)

// Config configures the Entrez client.
type Config struct {
	// Email identifies the caller; required for responsible use.
	Email string

	// APIKey is optional and raises the request rate.
	APIKey string

	// Database selects the directory database (default nuccore).
	Database string

	// BaseURL overrides the endpoint, for tests.
	BaseURL string

	// HTTPClient overrides the transport, for tests.
	HTTPClient *http.Client
}

// Client is a rate-limited ESummary client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	database    string
	email       string
	apiKey      string
	rateLimiter *RateLimiter
}

// NewClient creates an Entrez client. The contact email is mandatory:
// lookups against the shared service never run anonymously.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, domain.ErrEmailRequired
	}

	perSecond := AnonymousRate
	if cfg.APIKey != "" {
		perSecond = KeyedRate
	}

	c := &Client{
		httpClient:  cfg.HTTPClient,
		baseURL:     cfg.BaseURL,
		database:    cfg.Database,
		email:       cfg.Email,
		apiKey:      cfg.APIKey,
		rateLimiter: NewRateLimiter(perSecond),
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.database == "" {
		c.database = DefaultDatabase
	}

	return c, nil
}

// LookupBatch resolves identifiers through ESummary. Batches larger
// than MaxIDsPerRequest split into sequential rate-limited requests.
func (c *Client) LookupBatch(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}

	records := make(map[string]domain.DirectoryRecord, len(ids))
	for start := 0; start < len(ids); start += MaxIDsPerRequest {
		end := start + MaxIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}

		chunk, err := c.summarise(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		for id, rec := range chunk {
			records[id] = rec
		}
	}

	return records, nil
}

// RateLimiter returns the rate limiter for external inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) summarise(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + "/esummary.fcgi"
	form := url.Values{
		"db":      {c.database},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
		"tool":    {DefaultTool},
		"email":   {c.email},
	}
	if c.apiKey != "" {
		form.Set("api_key", c.apiKey)
	}

	logger.Debug("entrez: esummary %s, %d ids", c.database, len(ids))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esummary request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        endpoint,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading esummary response: %w", err)
	}

	return parseSummaries(body)
}
