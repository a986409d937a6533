package strategy

import (
	"errors"
	"fmt"

	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/registry"
)

// Metadata describes a strategy for listings.
type Metadata struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Options tunes construction. Zero values mean defaults.
type Options struct {
	// Stride is the SpacedRepetition step (default DefaultStride).
	Stride int

	// Seed fixes the Random sequence when Seeded is true.
	Seed   int64
	Seeded bool
}

// WithSeed returns a copy of o with a fixed seed.
func (o Options) WithSeed(seed int64) Options {
	o.Seed = seed
	o.Seeded = true
	return o
}

// Constructor builds a selector over questions.
type Constructor func(questions []question.Question, opts Options) (Selector, error)

type entry struct {
	meta Metadata
	ctor Constructor
}

// Registry maps strategy names to metadata and constructors.
type Registry struct {
	entries *registry.Registry[entry]
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{entries: registry.New[entry]()}
}

// Register binds name to meta and ctor. The last registration wins.
func (r *Registry) Register(name string, meta Metadata, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("register strategy %q: nil constructor", name)
	}
	meta.Name = registry.Normalize(name)
	return r.entries.Register(name, entry{meta: meta, ctor: ctor})
}

// Lookup returns the metadata registered for name.
func (r *Registry) Lookup(name string) (Metadata, error) {
	e, err := r.lookup(name)
	if err != nil {
		return Metadata{}, err
	}
	return e.meta, nil
}

func (r *Registry) lookup(name string) (entry, error) {
	e, err := r.entries.Lookup(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return entry{}, &UnknownStrategyError{Name: name, Known: r.entries.Tags()}
		}
		return entry{}, err
	}
	return e, nil
}

// Create builds the named strategy with default options.
func (r *Registry) Create(name string, questions []question.Question) (Selector, error) {
	return r.CreateWith(name, questions, Options{})
}

// CreateWith builds the named strategy with opts.
func (r *Registry) CreateWith(name string, questions []question.Question, opts Options) (Selector, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	sel, err := e.ctor(questions, opts)
	if err != nil {
		return nil, &ConstructionError{Strategy: e.meta.Name, Err: err}
	}
	if sel == nil {
		return nil, &ConstructionError{Strategy: e.meta.Name, Err: errors.New("constructor returned no selector")}
	}
	return sel, nil
}

// Resume builds the strategy named in st and restores its cursor.
func (r *Registry) Resume(st State, questions []question.Question) (Selector, error) {
	opts := Options{Stride: st.Stride}.WithSeed(st.Seed)
	sel, err := r.CreateWith(st.Strategy, questions, opts)
	if err != nil {
		return nil, err
	}
	if err := sel.Restore(st); err != nil {
		return nil, fmt.Errorf("restore %q state: %w", st.Strategy, err)
	}
	return sel, nil
}

// Names lists registered names in registration order.
func (r *Registry) Names() []string {
	return r.entries.Tags()
}

// List returns metadata for every registered strategy in registration order.
func (r *Registry) List() []Metadata {
	names := r.entries.Tags()
	out := make([]Metadata, 0, len(names))
	for _, name := range names {
		e, _ := r.entries.Lookup(name)
		out = append(out, e.meta)
	}
	return out
}

// DefaultRegistry registers the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(SequentialName, Metadata{
		DisplayName: "Sequential",
		Icon:        "→",
		Description: "Every question once, in course order.",
	}, func(qs []question.Question, _ Options) (Selector, error) {
		return NewSequential(qs)
	})
	_ = r.Register(RandomName, Metadata{
		DisplayName: "Random",
		Icon:        "⚄",
		Description: "Questions drawn at random; repeats allowed.",
	}, func(qs []question.Question, opts Options) (Selector, error) {
		if !opts.Seeded {
			return NewRandomUnseeded(qs)
		}
		return NewRandom(qs, opts.Seed)
	})
	_ = r.Register(SpacedName, Metadata{
		DisplayName: "Spaced repetition",
		Icon:        "↻",
		Description: "Cycles through the course with a fixed stride, forever.",
	}, func(qs []question.Question, opts Options) (Selector, error) {
		stride := opts.Stride
		if stride == 0 {
			stride = DefaultStride
		}
		return NewSpacedRepetition(qs, stride)
	})
	return r
}
