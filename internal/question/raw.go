package question

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw data keys shared by the built-in providers.
const (
	KeyID        = "id"
	KeyStatement = "enunciado"
	KeyOptions   = "opciones"
	KeyCorrect   = "respuestaCorrecta"
	KeyAnswerTyp = "tipoRespuesta"
	KeyAccepted  = "alternativas"
	KeyBack      = "reverso"
	KeyPoints    = "puntos"
	KeyHint      = "pista"
)

// header holds the fields every built-in kind carries.
type header struct {
	id        string
	tag       string
	statement string
	hint      string
	weight    int
}

func (h header) ID() string        { return h.id }
func (h header) Type() string      { return h.tag }
func (h header) Statement() string { return h.statement }
func (h header) Hint() string      { return h.hint }
func (h header) Weight() int       { return h.weight }

// readHeader extracts id, statement, hint and weight.
func readHeader(tag string, raw map[string]any) (header, error) {
	id, err := requiredString(raw, KeyID)
	if err != nil {
		return header{}, err
	}
	statement, err := requiredString(raw, KeyStatement)
	if err != nil {
		return header{}, err
	}
	h := header{id: id, tag: tag, statement: statement, weight: 1}
	if hint, ok, err := optionalString(raw, KeyHint); err != nil {
		return header{}, err
	} else if ok {
		h.hint = hint
	}
	if _, present := raw[KeyPoints]; present {
		w, err := intValue(raw[KeyPoints])
		if err != nil {
			return header{}, fmt.Errorf("%s: %w", KeyPoints, err)
		}
		if w <= 0 {
			return header{}, fmt.Errorf("%s: must be positive, got %d", KeyPoints, w)
		}
		h.weight = w
	}
	return h, nil
}

func requiredString(raw map[string]any, key string) (string, error) {
	s, ok, err := optionalString(raw, key)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s: required", key)
	}
	return s, nil
}

func optionalString(raw map[string]any, key string) (string, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch t := v.(type) {
	case string:
		return t, true, nil
	case int:
		// Course files often carry numeric ids and answers.
		return strconv.Itoa(t), true, nil
	case int64:
		return strconv.FormatInt(t, 10), true, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true, nil
	default:
		return "", false, fmt.Errorf("%s: must be a string, got %T", key, v)
	}
}

func stringList(raw map[string]any, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: must be a string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: must be a list, got %T", key, v)
	}
}

// intValue accepts Go ints and whole JSON numbers.
func intValue(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("not a whole number: %v", t)
		}
		return int(t), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
