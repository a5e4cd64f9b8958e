package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/km-arc/go-nutrition/framework/metrics"
)

const (
	todayPath  = "/api/wearables/activity/today"
	weeklyPath = "/api/wearables/activity/weekly"

	maxBody = 1 << 20
)

// Client calls the wearables activity API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the API at base. timeout bounds each call.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Today fetches and validates today's snapshot.
func (c *Client) Today(ctx context.Context) (Today, error) {
	var t Today
	if err := c.get(ctx, "today", todayPath, &t); err != nil {
		return Today{}, err
	}
	if err := t.Validate(); err != nil {
		metrics.ActivityFetchFailures.WithLabelValues("today").Inc()
		return Today{}, err
	}
	return t, nil
}

// Weekly fetches and validates the weekly series.
func (c *Client) Weekly(ctx context.Context) (Weekly, error) {
	var w Weekly
	if err := c.get(ctx, "weekly", weeklyPath, &w); err != nil {
		return Weekly{}, err
	}
	if err := w.Validate(); err != nil {
		metrics.ActivityFetchFailures.WithLabelValues("weekly").Inc()
		return Weekly{}, err
	}
	return w, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, v any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordActivityFetch(endpoint, time.Since(start).Seconds(), err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("activity %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("activity %s: read body: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("activity %s: %s: %s", endpoint, resp.Status, e.Error)
		}
		return fmt.Errorf("activity %s: %s", endpoint, resp.Status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("activity %s: decode: %w", endpoint, err)
	}
	return nil
}
