// Package apiclient fetches dashboard statistics from a running API server.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"notary_admin_go/models"
	"strings"
	"time"
)

// StatsPath is the endpoint serving the current StatSnapshot
const StatsPath = "/api/dashboard/stats"

// ErrStatsUnavailable is returned when the server answers with a non-200 status
var ErrStatsUnavailable = errors.New("statistics unavailable")

// Client is an HTTP statistics fetcher
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the API at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetStats requests the current statistics snapshot
func (c *Client) GetStats(ctx context.Context) (models.StatSnapshot, error) {
	var snapshot models.StatSnapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+StatsPath, nil)
	if err != nil {
		return snapshot, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return snapshot, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		// Best effort: the error body may not be JSON
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			return snapshot, fmt.Errorf("%w: status %d: %s", ErrStatsUnavailable, resp.StatusCode, body.Error)
		}
		return snapshot, fmt.Errorf("%w: status %d", ErrStatsUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return models.StatSnapshot{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return snapshot, nil
}
