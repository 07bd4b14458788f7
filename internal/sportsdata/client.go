// Package sportsdata holds the HTTP clients for the recommendation and result
// collaborators. External failures never propagate as fatal: the picks client
// degrades to safe defaults, the results client degrades to void.
package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Config holds the upstream endpoints and limits.
type Config struct {
	PicksBaseURL   string // recommendation API
	ResultsBaseURL string // sports data API (events + scores)
	Timeout        time.Duration
	RequestsPerSec int // shared rate limit across lookups
}

// Client is the shared rate-limited HTTP transport for both upstreams.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates the transport.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 5
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsPerSec),
		logger:  logger.With().Str("component", "sportsdata_client").Logger(),
	}
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}
