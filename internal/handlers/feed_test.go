package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/gamelog/gamelogtest"
	"github.com/jwebster45206/ravenlog/pkg/queue"
)

type fakeFeed struct {
	mu       sync.Mutex
	requests []*queue.Request
	err      error
}

func (f *fakeFeed) Enqueue(ctx context.Context, req *queue.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakeFeed) Depth(ctx context.Context, gameID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.GameID == gameID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFeed) Clear(ctx context.Context, gameID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.requests[:0]
	for _, r := range f.requests {
		if r.GameID != gameID {
			kept = append(kept, r)
		}
	}
	f.requests = kept
	return nil
}

func TestGamesHandler_Feed(t *testing.T) {
	g := newTestGames(t)
	feed := &fakeFeed{}
	g.handler.WithFeed(feed)
	gameID := uuid.New()
	path := "/v1/games/" + gameID.String() + "/feed"

	body := gamelogtest.Samples[gamelog.KindTurnBegin] + "\n\n" +
		gamelogtest.Samples[gamelog.KindSupportDeclared] + "\n" +
		`{"type":"dragon-hatched"}` + "\n"
	rr := g.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())

	resp := decode[FeedResponse](t, rr)
	assert.Len(t, resp.RequestIDs, 3)
	assert.Equal(t, 3, resp.Depth)

	require.Len(t, feed.requests, 3)
	for i, req := range feed.requests {
		assert.Equal(t, resp.RequestIDs[i], req.RequestID)
		assert.Equal(t, gameID, req.GameID)
		assert.Equal(t, queue.RequestTypeRecord, req.Type)
	}
	assert.JSONEq(t, gamelogtest.Samples[gamelog.KindSupportDeclared], string(feed.requests[1].Record))

	rr = g.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decode[FeedDepthResponse](t, rr).Depth)

	// Queued records are not applied by the handler.
	n, err := g.store.CountEntries(context.Background(), gameID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGamesHandler_FeedRejects(t *testing.T) {
	gameID := uuid.New().String()
	tests := []struct {
		name     string
		feed     *fakeFeed
		method   string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "bad json line", feed: &fakeFeed{}, method: http.MethodPost, body: "{\"type\":\"turn-begin\",\"turn\":1}\n{nope", wantCode: http.StatusBadRequest, wantErr: "line 2"},
		{name: "empty", feed: &fakeFeed{}, method: http.MethodPost, body: "\n\n", wantCode: http.StatusBadRequest, wantErr: "empty"},
		{name: "queue down", feed: &fakeFeed{err: errors.New("redis gone")}, method: http.MethodPost, body: `{"type":"planning-phase-began"}`, wantCode: http.StatusInternalServerError, wantErr: "Internal server error"},
		{name: "wrong method", feed: &fakeFeed{}, method: http.MethodDelete, wantCode: http.StatusMethodNotAllowed},
		{name: "feed disabled", feed: nil, method: http.MethodPost, body: `{"type":"planning-phase-began"}`, wantCode: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGames(t)
			if tt.feed != nil {
				g.handler.WithFeed(tt.feed)
			}
			rr := g.do(t, tt.method, "/v1/games/"+gameID+"/feed", tt.body)
			assert.Equal(t, tt.wantCode, rr.Code, rr.Body.String())
			if tt.wantErr != "" {
				assert.True(t, strings.Contains(decode[ErrorResponse](t, rr).Error, tt.wantErr), rr.Body.String())
			}
			if tt.feed != nil && tt.wantCode != http.StatusAccepted {
				assert.Empty(t, tt.feed.requests)
			}
		})
	}
}
