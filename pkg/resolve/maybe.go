package resolve

import "encoding/json"

// Maybe holds a resolved relation that the record allows to be absent.
// The zero value is absent.
type Maybe[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

func (m Maybe[T]) Present() bool {
	return m.ok
}

// MarshalJSON renders an absent value as null.
func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}
