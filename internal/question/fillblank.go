package question

import "fmt"

// FillBlank expects a typed answer, optionally numeric.
type FillBlank struct {
	header
	expected   []string
	answerType AnswerType
}

// Expected returns the canonical answer (the first accepted one).
func (f *FillBlank) Expected() string { return f.expected[0] }

// AnswerType returns the normalization applied when grading.
func (f *FillBlank) AnswerType() AnswerType { return f.answerType }

func (f *FillBlank) IsCorrect(a Answer) bool {
	for _, want := range f.expected {
		if MatchAnswer(a.Text(), want, f.answerType) {
			return true
		}
	}
	return false
}

// FillBlankProvider builds "fillblank" questions.
//
// Raw keys: "respuestaCorrecta" (string or number), optional
// "tipoRespuesta" (text, integer, decimal, fraction) and "alternativas"
// (additional accepted answers).
type FillBlankProvider struct{}

func (FillBlankProvider) Tag() string         { return "fillblank" }
func (FillBlankProvider) DisplayName() string { return "Fill in the blank" }

func (p FillBlankProvider) Build(raw map[string]any) (Question, error) {
	h, err := readHeader(p.Tag(), raw)
	if err != nil {
		return nil, err
	}
	if h.weight == 1 {
		if _, set := raw[KeyPoints]; !set {
			h.weight = 2
		}
	}

	typeTag, _, err := optionalString(raw, KeyAnswerTyp)
	if err != nil {
		return nil, err
	}
	answerType, err := ParseAnswerType(typeTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyAnswerTyp, err)
	}

	expected, err := requiredString(raw, KeyCorrect)
	if err != nil {
		return nil, err
	}
	if _, err := normalizeAnswer(expected, answerType); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyCorrect, err)
	}

	accepted, err := stringList(raw, KeyAccepted)
	if err != nil {
		return nil, err
	}

	return &FillBlank{
		header:     h,
		expected:   append([]string{expected}, accepted...),
		answerType: answerType,
	}, nil
}
