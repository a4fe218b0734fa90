package queue

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequest_JSON(t *testing.T) {
	gameID := uuid.New()
	req := NewRecordRequest(gameID, []byte(`{"type":"turn-begin","turn":2}`))

	data, err := req.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.GameID != gameID || got.Type != RequestTypeRecord || got.RequestID != req.RequestID {
		t.Errorf("Unexpected request %+v", got)
	}
	if string(got.Record) != `{"type":"turn-begin","turn":2}` {
		t.Errorf("Record changed in transit: %s", got.Record)
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	gameID := uuid.New().String()
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "not json", data: `{`, wantErr: "unexpected end"},
		{name: "no request id", data: `{"type":"record","game_id":"` + gameID + `","record":{}}`, wantErr: "request_id"},
		{name: "nil game", data: `{"request_id":"r","type":"record","game_id":"00000000-0000-0000-0000-000000000000","record":{}}`, wantErr: "game_id"},
		{name: "record missing", data: `{"request_id":"r","type":"record","game_id":"` + gameID + `"}`, wantErr: "record is required"},
		{name: "choice without target", data: `{"request_id":"r","type":"vassal-choice","game_id":"` + gameID + `"}`, wantErr: "target is required"},
		{name: "unknown type", data: `{"request_id":"r","type":"chat","game_id":"` + gameID + `"}`, wantErr: "unknown request type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
