package strategy

import (
	"errors"
	"testing"

	"github.com/abhisek/aprende/internal/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Lists(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{SequentialName, RandomName, SpacedName}, r.Names())

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Sequential", list[0].DisplayName)
	for _, m := range list {
		assert.NotEmpty(t, m.Icon, m.Name)
		assert.NotEmpty(t, m.Description, m.Name)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.Lookup("leitner")
	var use *UnknownStrategyError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, "leitner", use.Name)

	_, err = r.Create("leitner", makeQuestions(1))
	require.ErrorAs(t, err, &use)
}

func TestRegistry_CreateRejectsNilQuestions(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range r.Names() {
		_, err := r.Create(name, nil)
		var ce *ConstructionError
		require.ErrorAs(t, err, &ce, name)

		var iae *InvalidArgumentError
		assert.True(t, errors.As(err, &iae), "%s: expected wrapped InvalidArgumentError", name)
	}
}

func TestRegistry_CreateWithOptions(t *testing.T) {
	r := DefaultRegistry()

	sel, err := r.CreateWith(SpacedName, makeQuestions(10), Options{Stride: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, sel.(*SpacedRepetition).Stride())

	sel, err = r.Create(SpacedName, makeQuestions(10))
	require.NoError(t, err)
	assert.Equal(t, DefaultStride, sel.(*SpacedRepetition).Stride())

	_, err = r.CreateWith(SpacedName, makeQuestions(10), Options{Stride: -2})
	var ce *ConstructionError
	assert.ErrorAs(t, err, &ce)

	a, err := r.CreateWith(RandomName, makeQuestions(10), Options{}.WithSeed(5))
	require.NoError(t, err)
	b, err := r.CreateWith(RandomName, makeQuestions(10), Options{}.WithSeed(5))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		qa, _ := a.Next()
		qb, _ := b.Next()
		assert.Equal(t, qa.ID(), qb.ID())
	}
}

func TestRegistry_RegisterLastWins(t *testing.T) {
	r := DefaultRegistry()
	called := false
	err := r.Register(SequentialName, Metadata{DisplayName: "Custom"}, func(qs []question.Question, _ Options) (Selector, error) {
		called = true
		return NewSequential(qs)
	})
	require.NoError(t, err)

	meta, err := r.Lookup("Sequential")
	require.NoError(t, err)
	assert.Equal(t, "Custom", meta.DisplayName)
	assert.Equal(t, SequentialName, meta.Name)

	_, err = r.Create(SequentialName, makeQuestions(1))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, SequentialName, r.Names()[0])
}

func TestRegistry_RegisterNilConstructor(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register("x", Metadata{}, nil))
}

func TestRegistry_Resume(t *testing.T) {
	r := DefaultRegistry()
	qs := makeQuestions(6)

	orig, err := r.CreateWith(SpacedName, qs, Options{Stride: 3})
	require.NoError(t, err)
	orig.Next()
	orig.Next()
	st := orig.Snapshot()
	want, _ := orig.Next()

	resumed, err := r.Resume(st, qs)
	require.NoError(t, err)
	got, _ := resumed.Next()
	assert.Equal(t, want.ID(), got.ID())

	_, err = r.Resume(State{Strategy: "nope"}, qs)
	var use *UnknownStrategyError
	assert.ErrorAs(t, err, &use)
}
