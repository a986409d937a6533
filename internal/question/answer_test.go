package question

import (
	"testing"
	"time"
)

func TestMatchAnswer_Integer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"43", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := MatchAnswer(tc.input, "42", AnswerTypeInteger)
		if got != tc.want {
			t.Errorf("MatchAnswer(%q, 42/integer) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestMatchAnswer_Decimal(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"3.5", true},
		{"3.50", true},
		{"3,5", true},
		{" 3.5 ", true},
		{"3.6", false},
	}

	for _, tc := range tests {
		got := MatchAnswer(tc.input, "3.5", AnswerTypeDecimal)
		if got != tc.want {
			t.Errorf("MatchAnswer(%q, 3.5/decimal) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestMatchAnswer_Fraction(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1/2", true},
		{"2/4", true},
		{" 3/6 ", true},
		{"-1/-2", true},
		{"1/3", false},
		{"1/0", false},
		{"half", false},
	}

	for _, tc := range tests {
		got := MatchAnswer(tc.input, "1/2", AnswerTypeFraction)
		if got != tc.want {
			t.Errorf("MatchAnswer(%q, 1/2/fraction) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestMatchAnswer_Text(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Madrid", true},
		{"  madrid ", true},
		{"MADRID", true},
		{"Barcelona", false},
	}

	for _, tc := range tests {
		got := MatchAnswer(tc.input, "Madrid", AnswerTypeText)
		if got != tc.want {
			t.Errorf("MatchAnswer(%q, Madrid/text) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseAnswerType(t *testing.T) {
	if at, err := ParseAnswerType(""); err != nil || at != AnswerTypeText {
		t.Errorf("ParseAnswerType(\"\") = %q, %v; want text", at, err)
	}
	if at, err := ParseAnswerType("Fraction"); err != nil || at != AnswerTypeFraction {
		t.Errorf("ParseAnswerType(Fraction) = %q, %v; want fraction", at, err)
	}
	if _, err := ParseAnswerType("roman"); err == nil {
		t.Error("expected error for unknown answer type")
	}
}

func TestAnswerEqual(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	a := NewAnswer("x", at)
	b := NewAnswer("x", at)
	if !a.Equal(b) {
		t.Error("expected answers with equal fields to be equal")
	}
	if a.Equal(NewAnswer("y", at)) {
		t.Error("different content must not be equal")
	}
	if a.Equal(NewAnswer("x", at.Add(time.Second))) {
		t.Error("different timestamp must not be equal")
	}
	if SelfGraded(true, at).Equal(SelfGraded(false, at)) {
		t.Error("different verdict must not be equal")
	}
	if a.Equal(SelfGraded(false, at)) {
		t.Error("nil and non-nil content must not be equal")
	}
	if SelfGraded(true, at).Text() != "" {
		t.Error("Text() of content-less answer should be empty")
	}
}

func TestHintOfAndRevealer(t *testing.T) {
	types, err := NewTypeRegistry(DefaultProviders()...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	f := NewFactory(types)

	card, err := f.Build(map[string]any{"id": "c", "type": "flashcard", "enunciado": "hola", "reverso": "hello", "pista": "saludo"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := HintOf(card); got != "saludo" {
		t.Errorf("HintOf = %q, want %q", got, "saludo")
	}
	r, ok := card.(Revealer)
	if !ok || r.Back() != "hello" {
		t.Errorf("flashcard should reveal %q", "hello")
	}

	tf, err := f.Build(map[string]any{"id": "t", "type": "truefalse", "enunciado": "x", "respuestaCorrecta": true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := HintOf(tf); got != "" {
		t.Errorf("HintOf = %q, want empty", got)
	}
	if _, ok := tf.(Revealer); ok {
		t.Error("truefalse should not be a Revealer")
	}
}
