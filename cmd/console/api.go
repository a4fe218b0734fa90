package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogItem mirrors one entry of GET /v1/games/{id}/log.
type LogItem struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Type  string    `json:"type"`
	Text  string    `json:"text"`
	Error string    `json:"error,omitempty"`
}

type House struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Prompt mirrors the pending-choice model of GET /v1/games/{id}/choice.
type Prompt struct {
	ActingHouse *House  `json:"actingHouse"`
	Message     string  `json:"message"`
	Active      bool    `json:"active"`
	Options     []House `json:"options"`
	Waiting     string  `json:"waiting"`
}

type GameResponse struct {
	ID      uuid.UUID `json:"id"`
	Catalog string    `json:"catalog"`
	Entries int       `json:"entries"`
}

// errNoChoice means the game has no pending decision.
var errNoChoice = fmt.Errorf("no pending choice")

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// doJSON sends a request and decodes a JSON reply into out, turning API
// error bodies into errors.
func doJSON(client *http.Client, method, url string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		if resp.StatusCode == http.StatusNotFound && strings.Contains(url, "/choice") {
			return errNoChoice
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func createGame(client *http.Client, baseURL string) (*GameResponse, error) {
	var game GameResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/games", nil, http.StatusCreated, &game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &game, nil
}

func getGame(client *http.Client, baseURL string, gameID uuid.UUID) (*GameResponse, error) {
	var game GameResponse
	if err := doJSON(client, http.MethodGet, fmt.Sprintf("%s/v1/games/%s", baseURL, gameID), nil, http.StatusOK, &game); err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}

func fetchLog(client *http.Client, baseURL string, gameID uuid.UUID) ([]LogItem, error) {
	var items []LogItem
	if err := doJSON(client, http.MethodGet, fmt.Sprintf("%s/v1/games/%s/log", baseURL, gameID), nil, http.StatusOK, &items); err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	return items, nil
}

func fetchPrompt(client *http.Client, baseURL string, gameID uuid.UUID, viewer []string) (*Prompt, error) {
	u := fmt.Sprintf("%s/v1/games/%s/choice?viewer=%s", baseURL, gameID, url.QueryEscape(strings.Join(viewer, ",")))
	var p Prompt
	if err := doJSON(client, http.MethodGet, u, nil, http.StatusOK, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func choose(client *http.Client, baseURL string, gameID uuid.UUID, viewer []string, target string) (*Prompt, error) {
	body := map[string]any{"viewer": viewer, "target": target}
	var p Prompt
	if err := doJSON(client, http.MethodPost, fmt.Sprintf("%s/v1/games/%s/choice", baseURL, gameID), body, http.StatusOK, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SSEEvent represents an event from the SSE stream
type SSEEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// listenToSSE connects to the SSE endpoint and streams events to a channel
func listenToSSE(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID, eventChan chan<- SSEEvent) error {
	u := fmt.Sprintf("%s/v1/events/games/%s", baseURL, gameID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to SSE: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SSE connection failed with status %d: %s", resp.StatusCode, string(body))
	}

	return readSSE(ctx, resp.Body, eventChan)
}

func readSSE(ctx context.Context, r io.Reader, eventChan chan<- SSEEvent) error {
	scanner := bufio.NewScanner(r)
	var currentEvent SSEEvent

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			// Empty line signals end of event
			if currentEvent.Type != "" {
				select {
				case eventChan <- currentEvent:
				case <-ctx.Done():
					return ctx.Err()
				}
				currentEvent = SSEEvent{}
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			currentEvent.Type = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			currentEvent.Data = json.RawMessage(strings.TrimPrefix(line, "data: "))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading SSE stream: %w", err)
	}
	return nil
}
