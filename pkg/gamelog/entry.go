package gamelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Entry is a record as stored in a game log: the event and when it was appended.
//
// A stored record of a kind this build does not know loads as a placeholder:
// Event is nil, Unknown names the kind and Raw keeps the record so it is
// written back unchanged.
type Entry struct {
	Time    time.Time
	Event   Event
	Unknown *UnknownKindError
	Raw     json.RawMessage
}

// Kind returns the event's kind, or the unknown kind of a placeholder.
func (e Entry) Kind() Kind {
	switch {
	case e.Event != nil:
		return e.Event.Kind()
	case e.Unknown != nil:
		return e.Unknown.Kind
	}
	return ""
}

// DecodeStoredEntry decodes one stored entry. Unlike UnmarshalJSON it keeps
// an entry of unknown kind as a placeholder instead of failing; malformed
// entries still fail.
func DecodeStoredEntry(data []byte) (Entry, error) {
	var e Entry
	err := json.Unmarshal(data, &e)
	var unknown *UnknownKindError
	if err == nil || !errors.As(err, &unknown) {
		return e, err
	}

	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Entry{}, &MalformedError{Err: fmt.Errorf("entry: %w", err)}
	}
	return Entry{Time: raw.Time, Unknown: unknown, Raw: raw.Data}, nil
}

type entryJSON struct {
	Time time.Time       `json:"time"`
	Data json.RawMessage `json:"data"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Event == nil && e.Unknown != nil && len(e.Raw) > 0 {
		return json.Marshal(entryJSON{Time: e.Time, Data: e.Raw})
	}
	if e.Event == nil {
		return nil, fmt.Errorf("entry at %s has no event", e.Time.Format(time.RFC3339))
	}
	data, err := Encode(e.Event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{Time: e.Time, Data: data})
}

// UnmarshalJSON decodes the wrapped record with Decode, so a stored entry
// goes through the same checks as a freshly ingested one.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return &MalformedError{Err: fmt.Errorf("entry: %w", err)}
	}
	if len(raw.Data) == 0 {
		return &MalformedError{Err: fmt.Errorf("entry: missing data")}
	}
	ev, err := Decode(raw.Data)
	if err != nil {
		return err
	}
	e.Time = raw.Time
	e.Event = ev
	return nil
}
