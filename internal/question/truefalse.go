package question

import (
	"fmt"
	"strings"
)

// TrueFalse is a statement the learner marks true or false.
type TrueFalse struct {
	header
	answer bool
}

// Answer returns the expected verdict.
func (t *TrueFalse) Answer() bool { return t.answer }

func (t *TrueFalse) IsCorrect(a Answer) bool {
	v, ok := parseVerdict(a.Text())
	return ok && v == t.answer
}

func (t *TrueFalse) Prompt() string {
	return t.statement + "\n  (v)erdadero / (f)also"
}

// TrueFalseProvider builds "truefalse" questions. "respuestaCorrecta" is a
// bool or one of the words parseVerdict accepts.
type TrueFalseProvider struct{}

func (TrueFalseProvider) Tag() string         { return "truefalse" }
func (TrueFalseProvider) DisplayName() string { return "True / false" }

func (p TrueFalseProvider) Build(raw map[string]any) (Question, error) {
	h, err := readHeader(p.Tag(), raw)
	if err != nil {
		return nil, err
	}
	v, ok := raw[KeyCorrect]
	if !ok {
		return nil, fmt.Errorf("%s: required", KeyCorrect)
	}
	var answer bool
	switch t := v.(type) {
	case bool:
		answer = t
	case string:
		parsed, ok := parseVerdict(t)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not true or false", KeyCorrect, t)
		}
		answer = parsed
	default:
		return nil, fmt.Errorf("%s: must be a bool, got %T", KeyCorrect, v)
	}
	return &TrueFalse{header: h, answer: answer}, nil
}

func parseVerdict(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "v", "verdadero", "si", "sí", "yes", "y", "1":
		return true, true
	case "false", "f", "falso", "no", "n", "0":
		return false, true
	}
	return false, false
}
