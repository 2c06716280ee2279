// Package countriesnow is a client for the CountriesNow country data API.
package countriesnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/calsync/calsync-server/internal/config"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client calls the CountriesNow API. Every call goes to the network.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a client for the configured CountriesNow base URL.
func New(cfg config.ProvidersConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.CountriesNowBaseURL,
		logger:  logger,
	}
}

// envelope is the wrapper every CountriesNow response uses.
type envelope struct {
	Error bool            `json:"error"`
	Msg   string          `json:"msg"`
	Data  json.RawMessage `json:"data"`
}

type countryRequest struct {
	Country string `json:"country"`
}

// post sends {"country": name} to path and returns the envelope's data.
func (c *Client) post(ctx context.Context, path, country string) (json.RawMessage, error) {
	payload, err := json.Marshal(countryRequest{Country: country})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "calsync/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("countriesnow request",
		"path", path,
		"country", country,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrBadRequest
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Error {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, env.Msg)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	return env.Data, nil
}
