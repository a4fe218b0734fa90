// Package queue defines the requests carried on the asynchronous ingest
// queue.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestType identifies the type of request in the queue
type RequestType string

const (
	// RequestTypeRecord carries one wire record to append to a game log
	RequestTypeRecord RequestType = "record"

	// RequestTypeChoice commits a pick for the game's pending vassal claim
	RequestTypeChoice RequestType = "vassal-choice"
)

// Request represents one queued request for a game
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`
	GameID    uuid.UUID   `json:"game_id"`

	// Record-specific fields
	Record json.RawMessage `json:"record,omitempty"`

	// Choice-specific fields
	Viewer []string `json:"viewer,omitempty"`
	Target string   `json:"target,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewRecordRequest wraps one wire record for gameID.
func NewRecordRequest(gameID uuid.UUID, record []byte) *Request {
	return &Request{
		RequestID:  uuid.New().String(),
		Type:       RequestTypeRecord,
		GameID:     gameID,
		Record:     json.RawMessage(record),
		EnqueuedAt: time.Now(),
	}
}

// NewChoiceRequest wraps a vassal pick for gameID.
func NewChoiceRequest(gameID uuid.UUID, viewer []string, target string) *Request {
	return &Request{
		RequestID:  uuid.New().String(),
		Type:       RequestTypeChoice,
		GameID:     gameID,
		Viewer:     viewer,
		Target:     target,
		EnqueuedAt: time.Now(),
	}
}

// Validate checks that the fields the request type needs are present. It does
// not look inside Record; the session does that when the request is applied.
func (r *Request) Validate() error {
	if r.RequestID == "" {
		return errors.New("request_id is required")
	}
	if r.GameID == uuid.Nil {
		return errors.New("game_id is required")
	}
	switch r.Type {
	case RequestTypeRecord:
		if len(r.Record) == 0 {
			return errors.New("record is required")
		}
	case RequestTypeChoice:
		if r.Target == "" {
			return errors.New("target is required")
		}
	default:
		return fmt.Errorf("unknown request type %q", r.Type)
	}
	return nil
}

// ToJSON converts the request to JSON bytes for Redis
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}
