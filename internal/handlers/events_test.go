package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ravenlog/internal/services/events"
)

// readEvent reads lines until a complete SSE event has been seen.
func readEvent(t *testing.T, sc *bufio.Scanner) (string, string) {
	t.Helper()
	var name, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && name != "":
			return name, data
		}
	}
	t.Fatalf("Stream ended before an event was read: %v", sc.Err())
	return "", ""
}

func TestEventsHandler_StreamsGameEvents(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	server := httptest.NewServer(NewEventsHandler(client, testLogger()))
	defer server.Close()

	gameID := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/v1/events/games/"+gameID.String(), nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	sc := bufio.NewScanner(resp.Body)
	if name, _ := readEvent(t, sc); name != "connected" {
		t.Fatalf("Expected connected event, got %q", name)
	}

	b := events.NewBroadcaster(client, testLogger())
	if err := b.PublishChoiceCommitted(ctx, gameID, "stark", "martell"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	name, data := readEvent(t, sc)
	if name != string(events.EventTypeChoiceCommitted) {
		t.Errorf("Expected %s, got %s", events.EventTypeChoiceCommitted, name)
	}
	if !strings.Contains(data, `"vassal":"martell"`) {
		t.Errorf("Unexpected data %s", data)
	}
}

func TestEventsHandler_BadRequests(t *testing.T) {
	h := NewEventsHandler(nil, testLogger())

	tests := []struct {
		method, path string
		status       int
	}{
		{http.MethodPost, "/v1/events/games/" + uuid.New().String(), http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/events/gamestate/" + uuid.New().String(), http.StatusBadRequest},
		{http.MethodGet, "/v1/events/games/nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != tt.status {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, rr.Code)
		}
	}
}
