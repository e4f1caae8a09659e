// Package heroesprofile provides a rate-limited client for the public
// Heroes Profile statistics API.
package heroesprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// APIBase is the base URL for the stats API.
	APIBase = "https://api.heroesprofile.com"

	// DefaultTimeout bounds one HTTP request.
	DefaultTimeout = 30 * time.Second

	// Backoff settings.
	InitialBackoff = 2 * time.Second
	MaxBackoff     = 60 * time.Second
	BackoffFactor  = 2.0
)

// DefaultRateLimit is a conservative 1 request per second.
var DefaultRateLimit = rate.Every(1 * time.Second)

// Client provides access to community hero and player statistics.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	stats      *ClientStats
	statsMu    sync.RWMutex

	backoff         time.Duration
	lastFailureTime time.Time
	backoffMu       sync.Mutex
}

// ClientOptions configures the stats API client.
type ClientOptions struct {
	// BaseURL overrides the API endpoint (default: APIBase).
	BaseURL string

	// RateLimit controls request frequency (default: 1 req/second).
	RateLimit rate.Limit

	// Timeout for HTTP requests (default: 30 seconds).
	Timeout time.Duration

	// HTTPClient allows a custom HTTP client.
	HTTPClient *http.Client
}

// DefaultClientOptions returns conservative default options.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:   APIBase,
		RateLimit: DefaultRateLimit,
		Timeout:   DefaultTimeout,
	}
}

// NewClient creates a new stats API client.
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = APIBase
	}
	if options.RateLimit == 0 {
		options.RateLimit = DefaultRateLimit
	}
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.Timeout,
		}
	}

	return &Client{
		baseURL:    options.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(options.RateLimit, 1),
		stats:      &ClientStats{},
		backoff:    InitialBackoff,
	}
}

// GetHeroWinRates fetches aggregate hero statistics for a tier,
// optionally narrowed to one map.
func (c *Client) GetHeroWinRates(ctx context.Context, params QueryParams) ([]HeroWinRate, error) {
	if params.Tier == "" {
		return nil, &APIError{
			Type:    ErrInvalidParams,
			Message: "tier is required",
		}
	}

	queryParams := url.Values{}
	queryParams.Set("tier", params.Tier)
	if params.Map != "" {
		queryParams.Set("map", params.Map)
	}
	fullURL := fmt.Sprintf("%s/heroes/winrates?%s", c.baseURL, queryParams.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var rates []HeroWinRate
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, &APIError{
			Type:    ErrParseError,
			Message: "failed to parse hero win rates response",
			Err:     err,
		}
	}
	return rates, nil
}

// GetMatchups fetches the pairwise synergy/counter table for a tier.
func (c *Client) GetMatchups(ctx context.Context, params QueryParams) ([]HeroMatchup, error) {
	if params.Tier == "" {
		return nil, &APIError{
			Type:    ErrInvalidParams,
			Message: "tier is required",
		}
	}

	queryParams := url.Values{}
	queryParams.Set("tier", params.Tier)
	fullURL := fmt.Sprintf("%s/heroes/matchups?%s", c.baseURL, queryParams.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var matchups []HeroMatchup
	if err := json.Unmarshal(body, &matchups); err != nil {
		return nil, &APIError{
			Type:    ErrParseError,
			Message: "failed to parse matchups response",
			Err:     err,
		}
	}
	return matchups, nil
}

// GetPlayerProfile fetches a player's profile and match history.
func (c *Client) GetPlayerProfile(ctx context.Context, params QueryParams) (*PlayerProfile, error) {
	if params.Battletag == "" {
		return nil, &APIError{
			Type:    ErrInvalidParams,
			Message: "battletag is required",
		}
	}

	queryParams := url.Values{}
	queryParams.Set("battletag", params.Battletag)
	if params.Region != "" {
		queryParams.Set("region", params.Region)
	}
	if !params.Since.IsZero() {
		queryParams.Set("since", params.Since.Format("2006-01-02"))
	}
	fullURL := fmt.Sprintf("%s/player/profile?%s", c.baseURL, queryParams.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	profile := &PlayerProfile{}
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, &APIError{
			Type:    ErrParseError,
			Message: "failed to parse player profile response",
			Err:     err,
		}
	}
	return profile, nil
}

// doRequest performs an HTTP request with rate limiting and backoff.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := c.checkBackoff(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{
			Type:    ErrRateLimited,
			Message: "rate limiter error",
			Err:     err,
		}
	}

	c.updateStats(func(s *ClientStats) {
		s.TotalRequests++
		s.LastRequestTime = time.Now()
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &APIError{
			Type:    ErrInvalidParams,
			Message: "failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("User-Agent", "HotS-Companion/1.0")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(startTime)

	if err != nil {
		c.recordFailure()
		return nil, &APIError{
			Type:    ErrUnavailable,
			Message: "failed to execute request",
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			Type:       ErrUnavailable,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, &APIError{
			Type:    ErrUnavailable,
			Message: "failed to read response body",
			Err:     err,
		}
	}

	c.recordSuccess(latency)
	return body, nil
}

// checkBackoff rejects requests while a failure backoff window is open.
func (c *Client) checkBackoff() error {
	c.backoffMu.Lock()
	defer c.backoffMu.Unlock()

	if !c.lastFailureTime.IsZero() {
		elapsed := time.Since(c.lastFailureTime)
		if elapsed < c.backoff {
			return &APIError{
				Type:    ErrRateLimited,
				Message: fmt.Sprintf("in backoff period, %v remaining", c.backoff-elapsed),
			}
		}
	}
	return nil
}

// recordFailure records a failed request and widens the backoff window.
func (c *Client) recordFailure() {
	c.backoffMu.Lock()
	c.lastFailureTime = time.Now()
	c.backoff = time.Duration(float64(c.backoff) * BackoffFactor)
	if c.backoff > MaxBackoff {
		c.backoff = MaxBackoff
	}
	c.backoffMu.Unlock()

	c.updateStats(func(s *ClientStats) {
		s.FailedRequests++
		s.LastFailureTime = time.Now()
		s.ConsecutiveErrors++
	})
}

// recordSuccess records a successful request and resets backoff.
func (c *Client) recordSuccess(latency time.Duration) {
	c.backoffMu.Lock()
	c.backoff = InitialBackoff
	c.lastFailureTime = time.Time{}
	c.backoffMu.Unlock()

	c.updateStats(func(s *ClientStats) {
		s.LastSuccessTime = time.Now()
		s.ConsecutiveErrors = 0
		if s.AverageLatency == 0 {
			s.AverageLatency = latency
		} else {
			s.AverageLatency = (s.AverageLatency + latency) / 2
		}
	})
}

func (c *Client) updateStats(fn func(*ClientStats)) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	fn(c.stats)
}

// GetStats returns a copy of the current client statistics.
func (c *Client) GetStats() ClientStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return *c.stats
}

// ResetBackoff manually resets the backoff timer.
func (c *Client) ResetBackoff() {
	c.backoffMu.Lock()
	defer c.backoffMu.Unlock()
	c.backoff = InitialBackoff
	c.lastFailureTime = time.Time{}
}
