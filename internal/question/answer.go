package question

import (
	"fmt"
	"strconv"
	"strings"
)

// AnswerType selects how a typed answer is normalized before comparison.
type AnswerType string

const (
	AnswerTypeText     AnswerType = "text"     // case- and space-insensitive
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
)

// ParseAnswerType maps a raw tag to an AnswerType. Empty means text.
func ParseAnswerType(s string) (AnswerType, error) {
	switch AnswerType(strings.ToLower(strings.TrimSpace(s))) {
	case "", AnswerTypeText:
		return AnswerTypeText, nil
	case AnswerTypeInteger:
		return AnswerTypeInteger, nil
	case AnswerTypeDecimal:
		return AnswerTypeDecimal, nil
	case AnswerTypeFraction:
		return AnswerTypeFraction, nil
	}
	return "", fmt.Errorf("unknown answer type %q", s)
}

// MatchAnswer compares a learner's input against an expected answer.
//
// Normalization rules:
// - Whitespace is trimmed and inner runs collapse to one space
// - Comparison is case-insensitive
// - For fractions: equivalent fractions are accepted (e.g., "2/4" matches "1/2")
// - For decimals: trailing zeros are ignored (e.g., "3.50" matches "3.5")
// - For integers: leading zeros are ignored (e.g., "007" matches "7")
func MatchAnswer(input, expected string, answerType AnswerType) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	got, err := normalizeAnswer(input, answerType)
	if err != nil {
		return false
	}
	want, err := normalizeAnswer(expected, answerType)
	if err != nil {
		return false
	}
	return got == want
}

// normalizeAnswer normalizes an answer string for comparison.
func normalizeAnswer(answer string, answerType AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch answerType {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		f, err := strconv.ParseFloat(strings.ReplaceAll(answer, ",", "."), 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case AnswerTypeFraction:
		num, den, err := parseFraction(answer)
		if err != nil {
			return "", err
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		// Negative sign on numerator only.
		if den < 0 {
			num = -num
			den = -den
		}
		g := gcd(abs(num), den)
		num /= g
		den /= g
		return fmt.Sprintf("%d/%d", num, den), nil

	default:
		return strings.ToLower(strings.Join(strings.Fields(answer), " ")), nil
	}
}

// parseFraction parses "a/b" into numerator and denominator. A bare
// integer is read as a/1.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 1 {
		n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
		}
		return n, 1, nil
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
