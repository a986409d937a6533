package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/aprende/internal/registry"
)

// TypeKey is the raw-data key naming the question type.
const TypeKey = "type"

// Provider builds (and knows how to describe) one question type.
type Provider interface {
	// Tag is the type tag the provider registers under, e.g. "truefalse".
	Tag() string

	// DisplayName is a human-readable name for listings.
	DisplayName() string

	// Build constructs a question from raw data. The "type" key has already
	// been checked by the Factory.
	Build(raw map[string]any) (Question, error)
}

// TypeRegistry is the tag -> Provider table consumed by the Factory.
type TypeRegistry = registry.Registry[Provider]

// NewTypeRegistry registers providers in order. A later provider with the
// same tag replaces an earlier one.
func NewTypeRegistry(providers ...Provider) (*TypeRegistry, error) {
	reg := registry.New[Provider]()
	for _, p := range providers {
		if err := reg.Register(p.Tag(), p); err != nil {
			return nil, fmt.Errorf("register question provider: %w", err)
		}
	}
	return reg, nil
}

// DefaultProviders returns the built-in question kinds in registration order.
func DefaultProviders() []Provider {
	return []Provider{
		ChoiceProvider{},
		TrueFalseProvider{},
		FillBlankProvider{},
		FlashcardProvider{},
	}
}

// Factory turns raw key/value records into validated Questions.
type Factory struct {
	types *TypeRegistry
}

// NewFactory creates a Factory reading from types.
func NewFactory(types *TypeRegistry) *Factory {
	return &Factory{types: types}
}

// Build validates the type tag, resolves the provider and delegates to it.
func (f *Factory) Build(raw map[string]any) (q Question, err error) {
	v, ok := raw[TypeKey]
	if !ok {
		return nil, &ValidationError{Field: TypeKey, Message: "missing"}
	}
	tag, ok := v.(string)
	if !ok {
		return nil, &ValidationError{Field: TypeKey, Message: fmt.Sprintf("must be a string, got %T", v)}
	}
	if strings.TrimSpace(tag) == "" {
		return nil, &ValidationError{Field: TypeKey, Message: "blank"}
	}

	provider, err := f.types.Lookup(tag)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, &UnknownTypeError{Type: tag, Known: f.types.Tags()}
		}
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			q = nil
			err = &ConstructionError{Type: provider.Tag(), Err: fmt.Errorf("provider panicked: %v", r)}
		}
	}()

	q, err = provider.Build(raw)
	if err != nil {
		return nil, &ConstructionError{Type: provider.Tag(), Err: err}
	}
	if q == nil {
		return nil, &ConstructionError{Type: provider.Tag(), Err: errors.New("provider returned no question")}
	}
	return q, nil
}

// BuildAll builds every record, stopping at the first failure.
func (f *Factory) BuildAll(raws []map[string]any) ([]Question, error) {
	out := make([]Question, 0, len(raws))
	for i, raw := range raws {
		q, err := f.Build(raw)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// Supports reports whether a provider is registered for tag.
func (f *Factory) Supports(tag string) bool {
	return f.types.Has(tag)
}

// SupportedTypes lists the registered tags in registration order.
func (f *Factory) SupportedTypes() []string {
	return f.types.Tags()
}

// Provider returns the provider registered for tag.
func (f *Factory) Provider(tag string) (Provider, error) {
	return f.types.Lookup(tag)
}
