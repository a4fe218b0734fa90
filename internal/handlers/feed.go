package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/ravenlog/pkg/queue"
)

// maxFeedBytes caps one feed upload.
const maxFeedBytes = 16 << 20

// Feeder is the asynchronous ingest queue.
type Feeder interface {
	Enqueue(ctx context.Context, req *queue.Request) error
	Depth(ctx context.Context, gameID uuid.UUID) (int, error)
	Clear(ctx context.Context, gameID uuid.UUID) error
}

// FeedResponse lists the queued requests in upload order.
type FeedResponse struct {
	RequestIDs []string `json:"request_ids"`
	Depth      int      `json:"depth"`
}

type FeedDepthResponse struct {
	Depth int `json:"depth"`
}

// WithFeed enables /v1/games/{id}/feed.
func (h *GamesHandler) WithFeed(f Feeder) *GamesHandler {
	h.feed = f
	return h
}

func (h *GamesHandler) serveFeed(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if h.feed == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "Feed is not enabled")
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.handleFeed(w, r, gameID)
	case http.MethodGet:
		depth, err := h.feed.Depth(r.Context(), gameID)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, FeedDepthResponse{Depth: depth})
	default:
		h.methodNotAllowed(w, r, "GET, POST")
	}
}

// handleFeed queues newline-delimited records for the workers. The upload is
// checked for JSON syntax only; records are decoded and resolved when a
// worker applies them, and rejections are published as record.rejected.
func (h *GamesHandler) handleFeed(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFeedBytes))
	if err != nil {
		writeError(w, h.logger, http.StatusRequestEntityTooLarge, "Feed too large")
		return
	}

	records, err := splitRecords(body)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if len(records) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, "Feed is empty")
		return
	}

	resp := FeedResponse{RequestIDs: make([]string, 0, len(records))}
	for _, rec := range records {
		req := queue.NewRecordRequest(gameID, rec)
		if err := h.feed.Enqueue(r.Context(), req); err != nil {
			h.logger.Error("Failed to enqueue record", "error", err, "game_id", gameID.String(), "queued", len(resp.RequestIDs))
			writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
			return
		}
		resp.RequestIDs = append(resp.RequestIDs, req.RequestID)
	}

	depth, err := h.feed.Depth(r.Context(), gameID)
	if err != nil {
		h.logger.Warn("Failed to read feed depth", "error", err, "game_id", gameID.String())
	}
	resp.Depth = depth

	h.logger.Info("Records queued", "game_id", gameID.String(), "count", len(records))
	writeJSON(w, h.logger, http.StatusAccepted, resp)
}

func splitRecords(body []byte) ([][]byte, error) {
	var records [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	line := 0
	for scanner.Scan() {
		line++
		rec := bytes.TrimSpace(scanner.Bytes())
		if len(rec) == 0 {
			continue
		}
		if !json.Valid(rec) {
			return nil, fmt.Errorf("line %d is not valid JSON", line)
		}
		records = append(records, append([]byte(nil), rec...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %v", line+1, err)
	}
	return records, nil
}
