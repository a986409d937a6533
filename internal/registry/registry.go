// Package registry maps type tags to providers.
//
// A Registry is filled once during process start (from a build-time list of
// providers) and read afterwards. It does not lock: all Register calls must
// happen before the first concurrent Lookup.
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not registered")

// NotFoundError reports a lookup for a tag nobody registered.
type NotFoundError struct {
	Tag string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no provider registered for %q", e.Tag)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Registry is an ordered tag -> provider table.
type Registry[P any] struct {
	providers map[string]P
	order     []string
}

// New creates an empty registry.
func New[P any]() *Registry[P] {
	return &Registry[P]{providers: make(map[string]P)}
}

// Normalize trims and lower-cases a tag. All methods apply it.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Register binds tag to p. Registering the same tag again replaces the
// provider but keeps the original position in Tags.
func (r *Registry[P]) Register(tag string, p P) error {
	key := Normalize(tag)
	if key == "" {
		return fmt.Errorf("register: empty tag")
	}
	if _, exists := r.providers[key]; !exists {
		r.order = append(r.order, key)
	}
	r.providers[key] = p
	return nil
}

// Lookup returns the provider for tag or a *NotFoundError.
func (r *Registry[P]) Lookup(tag string) (P, error) {
	p, ok := r.providers[Normalize(tag)]
	if !ok {
		var zero P
		return zero, &NotFoundError{Tag: tag}
	}
	return p, nil
}

// Has reports whether tag is registered.
func (r *Registry[P]) Has(tag string) bool {
	_, ok := r.providers[Normalize(tag)]
	return ok
}

// Tags returns the registered tags in registration order.
func (r *Registry[P]) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tags.
func (r *Registry[P]) Len() int {
	return len(r.order)
}
