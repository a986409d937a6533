package question

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(t *testing.T) *Factory {
	t.Helper()
	reg, err := NewTypeRegistry(DefaultProviders()...)
	require.NoError(t, err)
	return NewFactory(reg)
}

func TestBuild_MissingType(t *testing.T) {
	f := testFactory(t)

	for name, raw := range map[string]map[string]any{
		"absent":     {"id": "q1"},
		"blank":      {"type": "   ", "id": "q1"},
		"not string": {"type": 3, "id": "q1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.Build(raw)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, TypeKey, ve.Field)
		})
	}
}

func TestBuild_UnknownType(t *testing.T) {
	f := testFactory(t)
	_, err := f.Build(map[string]any{"type": "essay", "id": "q1"})

	var ute *UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "essay", ute.Type)
	assert.Equal(t, []string{"test", "truefalse", "fillblank", "flashcard"}, ute.Known)
}

func TestBuild_ProviderFailureIsWrapped(t *testing.T) {
	f := testFactory(t)
	_, err := f.Build(map[string]any{"type": "test", "id": "q1", "enunciado": "?"})

	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "test", ce.Type)
	assert.NotNil(t, errors.Unwrap(err))
}

type nilProvider struct{}

func (nilProvider) Tag() string                            { return "nil" }
func (nilProvider) DisplayName() string                    { return "Nil" }
func (nilProvider) Build(map[string]any) (Question, error) { return nil, nil }

type panicProvider struct{}

func (panicProvider) Tag() string         { return "boom" }
func (panicProvider) DisplayName() string { return "Boom" }
func (panicProvider) Build(map[string]any) (Question, error) {
	panic("provider bug")
}

func TestBuild_NilAndPanickingProviders(t *testing.T) {
	reg, err := NewTypeRegistry(nilProvider{}, panicProvider{})
	require.NoError(t, err)
	f := NewFactory(reg)

	_, err = f.Build(map[string]any{"type": "nil"})
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)

	q, err := f.Build(map[string]any{"type": "boom"})
	require.ErrorAs(t, err, &ce)
	assert.Nil(t, q)
	assert.Contains(t, err.Error(), "provider bug")
}

func TestBuild_RoundTrip(t *testing.T) {
	f := testFactory(t)
	raw := map[string]any{
		"type":              "test",
		"id":                "q1",
		"enunciado":         "Capital of Spain?",
		"opciones":          []any{"Lisbon", "Madrid", "Rome"},
		"respuestaCorrecta": 1,
	}

	a, err := f.Build(raw)
	require.NoError(t, err)
	b, err := f.Build(raw)
	require.NoError(t, err)

	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, a.Type(), b.Type())
	assert.Equal(t, a.Statement(), b.Statement())
}

func TestBuild_TypeTagIsCaseInsensitive(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":              "TrueFalse",
		"id":                "tf1",
		"enunciado":         "Water boils at 100C at sea level",
		"respuestaCorrecta": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "truefalse", q.Type())
}

func TestBuildAll_ReportsIndex(t *testing.T) {
	f := testFactory(t)
	_, err := f.BuildAll([]map[string]any{
		{"type": "flashcard", "id": "f1", "enunciado": "hola", "reverso": "hello"},
		{"type": "unknown", "id": "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 1")

	var ute *UnknownTypeError
	assert.ErrorAs(t, err, &ute)
}

func TestSupports(t *testing.T) {
	f := testFactory(t)
	assert.True(t, f.Supports("test"))
	assert.True(t, f.Supports("FLASHCARD"))
	assert.False(t, f.Supports("essay"))
	assert.Equal(t, []string{"test", "truefalse", "fillblank", "flashcard"}, f.SupportedTypes())
}

func TestChoice_Grading(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":              "test",
		"id":                "q1",
		"enunciado":         "2 + 2?",
		"opciones":          []any{"3", "4", "5"},
		"respuestaCorrecta": "4",
	})
	require.NoError(t, err)

	now := time.Now()
	tests := []struct {
		input string
		want  bool
	}{
		{"2", true}, // 1-based index of "4"
		{"4", true}, // out of index range, read as option text
		{"1", false},
		{"five", false},
		{"", false},
	}

	for _, tc := range tests {
		got := q.IsCorrect(NewAnswer(tc.input, now))
		assert.Equal(t, tc.want, got, "IsCorrect(%q)", tc.input)
	}
	assert.Contains(t, Prompt(q), "2) 4")
}

func TestChoice_NumericOptionsGradeByText(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":              "test",
		"id":                "q1",
		"enunciado":         "1 x 1?",
		"opciones":          []any{"2", "1", "3"},
		"respuestaCorrecta": "1",
	})
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, q.IsCorrect(NewAnswer("1", now)), "option text")
	assert.False(t, q.IsCorrect(NewAnswer("2", now)), "text of a wrong option")
	assert.False(t, q.IsCorrect(NewAnswer("4", now)))

	c := q.(*Choice)
	idx, ok := c.Choose(" 3 ")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestChoice_BadCorrectIndex(t *testing.T) {
	f := testFactory(t)
	_, err := f.Build(map[string]any{
		"type":              "test",
		"id":                "q1",
		"enunciado":         "?",
		"opciones":          []any{"a", "b"},
		"respuestaCorrecta": 2,
	})
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
}

func TestTrueFalse_Grading(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":              "truefalse",
		"id":                "tf1",
		"enunciado":         "The sun is a star",
		"respuestaCorrecta": "verdadero",
	})
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, q.IsCorrect(NewAnswer("v", now)))
	assert.True(t, q.IsCorrect(NewAnswer("True", now)))
	assert.False(t, q.IsCorrect(NewAnswer("falso", now)))
	assert.False(t, q.IsCorrect(NewAnswer("maybe", now)))
}

func TestFillBlank_NumericAndAlternatives(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":              "fillblank",
		"id":                "fb1",
		"enunciado":         "Half of one, as a fraction",
		"respuestaCorrecta": "1/2",
		"tipoRespuesta":     "fraction",
	})
	require.NoError(t, err)
	now := time.Now()
	assert.True(t, q.IsCorrect(NewAnswer("2/4", now)))
	assert.False(t, q.IsCorrect(NewAnswer("1/3", now)))
	assert.Equal(t, 2, WeightOf(q))

	q, err = f.Build(map[string]any{
		"type":              "fillblank",
		"id":                "fb2",
		"enunciado":         "Decimal for three quarters",
		"respuestaCorrecta": 0.75,
		"tipoRespuesta":     "decimal",
		"puntos":            3,
	})
	require.NoError(t, err)
	assert.True(t, q.IsCorrect(NewAnswer("0.750", now)))
	assert.Equal(t, 3, WeightOf(q))

	q, err = f.Build(map[string]any{
		"type":              "fillblank",
		"id":                "fb3",
		"enunciado":         "Largest planet",
		"respuestaCorrecta": "Jupiter",
		"alternativas":      []any{"Júpiter"},
	})
	require.NoError(t, err)
	assert.True(t, q.IsCorrect(NewAnswer("júpiter", now)))
	assert.True(t, q.IsCorrect(NewAnswer("JUPITER", now)))
}

func TestFlashcard_SelfGraded(t *testing.T) {
	f := testFactory(t)
	q, err := f.Build(map[string]any{
		"type":      "flashcard",
		"id":        7,
		"enunciado": "perro",
		"reverso":   "dog",
	})
	require.NoError(t, err)
	assert.Equal(t, "7", q.ID())

	now := time.Now()
	assert.True(t, q.IsCorrect(SelfGraded(true, now)))
	assert.False(t, q.IsCorrect(SelfGraded(false, now)))
	assert.Equal(t, "dog", q.(*Flashcard).Back())
}
