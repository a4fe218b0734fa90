package gamelog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is matched by records whose payload does not fit their kind.
	ErrMalformed = errors.New("malformed log record")
	// ErrUnknownKind is matched by records tagged with a kind outside the closed set.
	ErrUnknownKind = errors.New("unknown log record kind")
)

// MalformedError reports a record rejected at ingestion.
type MalformedError struct {
	Kind Kind
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("malformed log record: %v", e.Err)
	}
	return fmt.Sprintf("malformed %s record: %v", e.Kind, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// UnknownKindError reports a record whose tag this build does not understand,
// typically emitted by a newer producer.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown log record kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }
