package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PollInterval is how often to check the feed depth
const PollInterval = 250 * time.Millisecond

// LogItem is one narrated entry from GET /log
type LogItem struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Type  string    `json:"type"`
	Text  string    `json:"text"`
	Error string    `json:"error,omitempty"`
}

// GetLog retrieves the narrated log
func GetLog(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID) ([]LogItem, error) {
	url := fmt.Sprintf("%s/v1/games/%s/log", baseURL, gameID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create log request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send log request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("log endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var items []LogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode log: %w", err)
	}
	return items, nil
}

// PostFeed queues records for the ingest workers and returns the status code
func PostFeed(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID, records []json.RawMessage) (int, error) {
	var body bytes.Buffer
	for _, rec := range records {
		if err := json.Compact(&body, rec); err != nil {
			return 0, fmt.Errorf("failed to compact feed record: %w", err)
		}
		body.WriteByte('\n')
	}

	url := fmt.Sprintf("%s/v1/games/%s/feed", baseURL, gameID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return 0, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send feed request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, nil
}

// PollForFeedDrain waits until the game's ingest queue is empty. A popped
// request may still be applying, so one extra interval is waited after.
func PollForFeedDrain(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID, wait time.Duration) error {
	timeout := time.After(wait)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	url := fmt.Sprintf("%s/v1/games/%s/feed", baseURL, gameID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("timeout waiting for feed to drain (waited %v)", wait)
		case <-ticker.C:
			depth, err := feedDepth(ctx, client, url)
			if err != nil {
				// Keep polling; the API may be mid-restart.
				continue
			}
			if depth == 0 {
				time.Sleep(PollInterval)
				return nil
			}
		}
	}
}

func feedDepth(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("feed depth returned %d", resp.StatusCode)
	}
	var out struct {
		Depth int `json:"depth"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Depth, nil
}
