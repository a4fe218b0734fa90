package resolve

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// ErrUnresolved is matched by every resolution failure.
var ErrUnresolved = errors.New("unresolvable log record")

// UnresolvedError reports a record field whose id has no entity in the catalog.
type UnresolvedError struct {
	Kind  gamelog.Kind
	Field string
	Err   error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("cannot resolve %s.%s: %v", e.Kind, e.Field, e.Err)
}

func (e *UnresolvedError) Unwrap() error { return e.Err }

func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }
