// Package courier wraps the bdcourier fraud-check API: one outbound POST
// with per-attempt timeout and bounded retry.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://api.bdcourier.com/courier-check"

	attemptTimeout = 10 * time.Second
	maxRetries     = 2 // retries after the first attempt
	initialDelay   = 1 * time.Second
)

var (
	ErrNotConfigured = errors.New("Courier check not configured")
	ErrUnavailable   = errors.New("Courier service unavailable")
	ErrTimedOut      = errors.New("Courier check timed out")
	ErrRejected      = errors.New("Courier service rejected the request")
)

// CourierStats is the per-courier delivery history for a phone number.
type CourierStats struct {
	Name            string  `json:"name"`
	TotalParcel     int     `json:"total_parcel"`
	SuccessParcel   int     `json:"success_parcel"`
	CancelledParcel int     `json:"cancelled_parcel"`
	SuccessRatio    float64 `json:"success_ratio"`
}

// Result is the remote response. Status "success" carries the per-courier
// breakdown and summary; status "error" carries the remote error message.
// Both are transport-level successes: callers branch on Status.
type Result struct {
	Status   string                  `json:"status"`
	Error    string                  `json:"error,omitempty"`
	Summary  *CourierStats           `json:"summary,omitempty"`
	Couriers map[string]CourierStats `json:"couriers,omitempty"`
}

type Client struct {
	apiKey     string
	endpoint   string
	retryDelay time.Duration
	client     *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		retryDelay: initialDelay,
		client:     &http.Client{Timeout: attemptTimeout},
		logger:     logger,
	}
}

type checkRequest struct {
	Phone string `json:"phone"`
}

// rawResponse matches the wire shape: data holds "summary" plus one dynamic
// key per courier slug.
type rawResponse struct {
	Status string                     `json:"status"`
	Error  string                     `json:"error"`
	Data   map[string]json.RawMessage `json:"data"`
}

// Check normalizes the phone and queries the fraud-check endpoint. It fails
// fast without a network call when the client is unconfigured or the phone
// is malformed; 4xx responses fail immediately; 5xx and network errors are
// retried twice with 1s/2s backoff. A cancelled caller context is surfaced
// as-is without further retries. All other surfaced errors are user-safe.
func (c *Client) Check(ctx context.Context, phone string) (*Result, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(checkRequest{Phone: normalized})
	if err != nil {
		return nil, ErrUnavailable
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1) // 1s, 2s
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.logger.Warn("courier check attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, body []byte) (result *Result, retryable bool, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, ErrUnavailable
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// A cancelled parent context is the caller's doing, not a timeout.
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, true, ErrTimedOut
		}
		return nil, true, ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, true, ErrUnavailable
	case resp.StatusCode >= 400:
		return nil, false, ErrRejected
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, false, ErrUnavailable
	}
	return parseResult(raw), false, nil
}

func parseResult(raw rawResponse) *Result {
	result := &Result{Status: raw.Status, Error: raw.Error}
	if raw.Status != "success" {
		return result
	}

	result.Couriers = make(map[string]CourierStats)
	for slug, payload := range raw.Data {
		var stats CourierStats
		if err := json.Unmarshal(payload, &stats); err != nil {
			continue
		}
		if slug == "summary" {
			s := stats
			result.Summary = &s
			continue
		}
		result.Couriers[slug] = stats
	}
	return result
}

// Configured reports whether an API key is present without making a call.
func (c *Client) Configured() bool { return c.apiKey != "" }
