package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every registry miss.
var ErrNotFound = errors.New("entity not found")

// NotFoundError reports an id that has no entry in its registry.
type NotFoundError struct {
	Registry string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Registry, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Registry is an insertion-ordered mapping from id to entity.
// It is populated during setup and only read afterwards, so concurrent
// readers need no locking once setup is done.
type Registry[K comparable, V any] struct {
	name  string
	keys  []K
	items map[K]V
}

// NewRegistry creates an empty registry. The name is used in error messages.
func NewRegistry[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		name:  name,
		items: make(map[K]V),
	}
}

// Name returns the registry name.
func (r *Registry[K, V]) Name() string {
	return r.name
}

// Add registers v under id. Registering the same id twice is an error.
func (r *Registry[K, V]) Add(id K, v V) error {
	if _, exists := r.items[id]; exists {
		return fmt.Errorf("duplicate %s id %v", r.name, id)
	}
	r.keys = append(r.keys, id)
	r.items[id] = v
	return nil
}

// Get returns the entity registered under id, or a *NotFoundError.
func (r *Registry[K, V]) Get(id K) (V, error) {
	v, ok := r.items[id]
	if !ok {
		var zero V
		return zero, &NotFoundError{Registry: r.name, ID: fmt.Sprint(id)}
	}
	return v, nil
}

func (r *Registry[K, V]) Has(id K) bool {
	_, ok := r.items[id]
	return ok
}

func (r *Registry[K, V]) Len() int {
	return len(r.keys)
}

// Keys returns the ids in insertion order.
func (r *Registry[K, V]) Keys() []K {
	out := make([]K, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the entities in insertion order.
func (r *Registry[K, V]) Values() []V {
	out := make([]V, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.items[k])
	}
	return out
}

// GetAll looks up every id in order and stops at the first miss.
func (r *Registry[K, V]) GetAll(ids []K) ([]V, error) {
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		v, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
