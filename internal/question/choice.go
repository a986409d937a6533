package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice is a multiple-choice ("test") question.
type Choice struct {
	header
	options []string
	correct int
}

// Options returns a copy of the answer options.
func (c *Choice) Options() []string {
	out := make([]string, len(c.options))
	copy(out, c.options)
	return out
}

// CorrectOption returns the text of the correct option.
func (c *Choice) CorrectOption() string { return c.options[c.correct] }

// IsCorrect accepts the option text (case-insensitive) or its 1-based index.
func (c *Choice) IsCorrect(a Answer) bool {
	idx, ok := c.Choose(a.Text())
	return ok && idx == c.correct
}

// Choose maps input to a 0-based option. An exact option text wins over a
// 1-based index, so numeric options grade by their text.
func (c *Choice) Choose(input string) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return -1, false
	}
	for i, opt := range c.options {
		if strings.EqualFold(input, strings.TrimSpace(opt)) {
			return i, true
		}
	}
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(c.options) {
		return idx - 1, true
	}
	return -1, false
}

func (c *Choice) Prompt() string {
	var b strings.Builder
	b.WriteString(c.statement)
	for i, opt := range c.options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, opt)
	}
	return b.String()
}

// ChoiceProvider builds "test" questions.
//
// Raw keys: "opciones" (at least two strings) and "respuestaCorrecta",
// either the 0-based option index or the option text.
type ChoiceProvider struct{}

func (ChoiceProvider) Tag() string         { return "test" }
func (ChoiceProvider) DisplayName() string { return "Multiple choice" }

func (p ChoiceProvider) Build(raw map[string]any) (Question, error) {
	h, err := readHeader(p.Tag(), raw)
	if err != nil {
		return nil, err
	}
	options, err := stringList(raw, KeyOptions)
	if err != nil {
		return nil, err
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%s: need at least 2 options, got %d", KeyOptions, len(options))
	}

	v, ok := raw[KeyCorrect]
	if !ok {
		return nil, fmt.Errorf("%s: required", KeyCorrect)
	}
	correct := -1
	switch t := v.(type) {
	case string:
		for i, opt := range options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(t)) {
				correct = i
				break
			}
		}
		if correct < 0 {
			return nil, fmt.Errorf("%s: %q is not one of the options", KeyCorrect, t)
		}
	default:
		idx, err := intValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyCorrect, err)
		}
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("%s: index %d out of range [0,%d)", KeyCorrect, idx, len(options))
		}
		correct = idx
	}

	return &Choice{header: h, options: options, correct: correct}, nil
}
