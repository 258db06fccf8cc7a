package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/betting-optimizer/internal/metrics"
)

// Provider error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// ProviderError represents errors from provider operations
type ProviderError struct {
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return "api-football: " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return "api-football: " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error { return e.Err }

// newProviderError creates a new provider error
func newProviderError(code, message string, err error) ProviderError {
	return ProviderError{Code: code, Message: message, Err: err}
}

// ClientConfig holds the provider connection settings
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Host          string // x-rapidapi-host header value
	BookmakerID   int    // target bookmaker in the odds feed
	BookmakerName string
}

// Client talks to the API-Football v3 REST API
type Client struct {
	cfg        ClientConfig
	httpClient *RateLimitedHTTPClient
	logger     *logrus.Logger
}

// NewClient creates a new API-Football client
func NewClient(cfg ClientConfig, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://v3.football.api-sports.io"
	}
	if cfg.Host == "" {
		cfg.Host = "v3.football.api-sports.io"
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// BookmakerID returns the target bookmaker's provider ID
func (c *Client) BookmakerID() int { return c.cfg.BookmakerID }

// BookmakerName returns the target bookmaker's display name
func (c *Client) BookmakerName() string { return c.cfg.BookmakerName }

// Status fetches account and quota information
func (c *Client) Status(ctx context.Context) (*AccountStatus, error) {
	var out struct {
		Response AccountStatus `json:"response"`
	}
	metrics.RecordProviderRequest("status")
	if err := c.get(ctx, "/status", &out); err != nil {
		return nil, err
	}
	return &out.Response, nil
}

// FixturesByDate fetches all fixtures scheduled on the given day
func (c *Client) FixturesByDate(ctx context.Context, date time.Time) ([]Fixture, error) {
	var out struct {
		Response []Fixture `json:"response"`
	}
	endpoint := fmt.Sprintf("/fixtures?date=%s", date.Format("2006-01-02"))
	metrics.RecordProviderRequest("fixtures")
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"date":     date.Format("2006-01-02"),
		"fixtures": len(out.Response),
	}).Debug("Fixtures fetched")

	return out.Response, nil
}

// OddsByFixture fetches per-bookmaker odds for one fixture
func (c *Client) OddsByFixture(ctx context.Context, fixtureID int64) ([]BookmakerEntry, error) {
	var out struct {
		Response []BookmakerEntry `json:"response"`
	}
	endpoint := fmt.Sprintf("/odds?fixture=%d", fixtureID)
	metrics.RecordProviderRequest("odds")
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Response, nil
}

// PredictionsByFixture fetches the provider's prediction for one fixture.
// A fixture without predictions yields nil, not an error.
func (c *Client) PredictionsByFixture(ctx context.Context, fixtureID int64) (*PredictionEntry, error) {
	var out struct {
		Response []PredictionEntry `json:"response"`
	}
	endpoint := fmt.Sprintf("/predictions?fixture=%d", fixtureID)
	metrics.RecordProviderRequest("predictions")
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if len(out.Response) == 0 {
		return nil, nil
	}
	return &out.Response[0], nil
}

// get executes an authenticated GET against the provider and decodes the body
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	url := c.cfg.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newProviderError(ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return newProviderError(ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return newProviderError(ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return newProviderError(ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return newProviderError(ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newProviderError(ErrCodeInvalidData, "failed to parse response", err)
	}
	return nil
}
