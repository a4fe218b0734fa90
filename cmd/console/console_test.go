package main

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestReadSSE(t *testing.T) {
	stream := strings.Join([]string{
		": keepalive",
		"",
		"event: connected",
		`data: {"game_id":"x"}`,
		"",
		"event: log.appended",
		`data: {"index":0,"entry":{"time":"2024-01-01T10:00:00Z","data":{"type":"game-started"}},"text":"The game began."}`,
		"",
	}, "\n")

	ch := make(chan SSEEvent, 4)
	if err := readSSE(context.Background(), strings.NewReader(stream), ch); err != nil {
		t.Fatalf("readSSE failed: %v", err)
	}
	close(ch)

	var got []SSEEvent
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(got))
	}
	if got[0].Type != "connected" || got[1].Type != "log.appended" {
		t.Errorf("Unexpected event types %q, %q", got[0].Type, got[1].Type)
	}
}

func TestHandleEvent_LogAppended(t *testing.T) {
	m := ConsoleUI{game: &GameResponse{Catalog: "base"}}
	ev := SSEEvent{
		Type: "log.appended",
		Data: []byte(`{"index":3,"entry":{"time":"2024-01-01T10:00:00Z","data":{"type":"game-started"}},"text":"The game began."}`),
	}

	m.handleEvent(ev)
	m.handleEvent(ev)

	if len(m.items) != 1 {
		t.Fatalf("Expected a repeated index to be dropped, got %d items", len(m.items))
	}
	it := m.items[0]
	if it.Index != 3 || it.Type != "game-started" || it.Text != "The game began." {
		t.Errorf("Unexpected item %+v", it)
	}
	if !it.Time.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected time %v", it.Time)
	}

	m.handleEvent(SSEEvent{Type: "log.appended", Data: []byte(`not json`)})
	if m.err == nil {
		t.Error("Expected an error for a malformed event")
	}
}

func TestHandleEvent_RecordRejected(t *testing.T) {
	m := ConsoleUI{game: &GameResponse{Catalog: "base"}}
	m.handleEvent(SSEEvent{
		Type: "record.rejected",
		Data: []byte(`{"request_id":"r1","reason":"unknown event kind: dragon-hatched"}`),
	})
	if m.status != "Rejected: unknown event kind: dragon-hatched" {
		t.Errorf("Unexpected status %q", m.status)
	}
	if len(m.items) != 0 {
		t.Errorf("Expected no log items, got %d", len(m.items))
	}
}

func TestRenderLog(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	items := []LogItem{
		{Index: 0, Time: at, Text: "Stark marched from Winterfell to the Kingsroad, and then onwards to Moat Cailin."},
		{Index: 1, Time: at.Add(time.Minute), Error: "[unreadable move record]"},
	}

	out := renderLog(items, 40)
	if !strings.Contains(out, "10:00") || !strings.Contains(out, "10:01") {
		t.Errorf("Expected both clocks in output:\n%s", out)
	}
	if !strings.Contains(out, "[unreadable move record]") {
		t.Errorf("Expected the error text in output:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n < 3 {
		t.Errorf("Expected the long line to wrap, got %d lines", n)
	}

	plain := plainLog(items)
	want := "10:00  Stark marched from Winterfell to the Kingsroad, and then onwards to Moat Cailin.\n" +
		"10:01  [unreadable move record]\n"
	if plain != want {
		t.Errorf("Unexpected plain log:\n%q", plain)
	}
}

func TestOptionForKey(t *testing.T) {
	p := &Prompt{Active: true, Options: []House{{ID: "martell", Name: "Martell"}, {ID: "tyrell", Name: "Tyrell"}}}

	tests := []struct {
		name   string
		prompt *Prompt
		key    string
		want   string
		ok     bool
	}{
		{name: "first", prompt: p, key: "1", want: "martell", ok: true},
		{name: "second", prompt: p, key: "2", want: "tyrell", ok: true},
		{name: "out of range", prompt: p, key: "3"},
		{name: "not a digit", prompt: p, key: "x"},
		{name: "no prompt", prompt: nil, key: "1"},
		{name: "inactive", prompt: &Prompt{Options: p.Options}, key: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := optionForKey(tt.prompt, tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("optionForKey(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" stark, ,lannister ")
	if len(got) != 2 || got[0] != "stark" || got[1] != "lannister" {
		t.Errorf("Unexpected list %v", got)
	}
	if splitList("") != nil {
		t.Error("Expected nil for an empty list")
	}
}
