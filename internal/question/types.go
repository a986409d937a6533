// Package question defines the Question capability set, the Answer value
// object, and the Factory that builds questions from raw course data through
// a registry of type providers.
package question

import "time"

// Question is a single assessable item. Variants are supplied by Providers
// and are immutable after construction.
type Question interface {
	// ID is unique within the owning block.
	ID() string

	// Type is the tag of the provider that built the question.
	Type() string

	// Statement is the prompt text shown to the learner.
	Statement() string

	// IsCorrect grades an answer. It must not mutate the question.
	IsCorrect(answer Answer) bool
}

// Presenter is implemented by questions that render more than their
// statement on a terminal (options, true/false markers).
type Presenter interface {
	Prompt() string
}

// Weighted is implemented by questions worth more (or less) than one unit.
type Weighted interface {
	Weight() int
}

// Hinted is implemented by questions that carry a hint.
type Hinted interface {
	Hint() string
}

// Revealer is implemented by self-graded questions: the learner sees the
// hidden side and then reports whether they knew it.
type Revealer interface {
	Back() string
}

// HintOf returns q's hint, or "" if it has none.
func HintOf(q Question) string {
	if h, ok := q.(Hinted); ok {
		return h.Hint()
	}
	return ""
}

// Prompt returns the terminal text for q.
func Prompt(q Question) string {
	if p, ok := q.(Presenter); ok {
		return p.Prompt()
	}
	return q.Statement()
}

// WeightOf returns q's weight, or 1 if q does not declare one.
func WeightOf(q Question) int {
	if w, ok := q.(Weighted); ok && w.Weight() > 0 {
		return w.Weight()
	}
	return 1
}

// Answer is what a learner submitted for a question.
type Answer struct {
	// Content is the typed answer. Nil when the learner gave none
	// (e.g. a flashcard flip).
	Content *string

	// Correct is the learner's own verdict. Only self-graded kinds
	// (flashcards) read it.
	Correct bool

	// Timestamp is when the answer was given.
	Timestamp time.Time
}

// NewAnswer builds an Answer with text content.
func NewAnswer(content string, at time.Time) Answer {
	return Answer{Content: &content, Timestamp: at}
}

// SelfGraded builds a content-less Answer carrying the learner's verdict.
func SelfGraded(correct bool, at time.Time) Answer {
	return Answer{Correct: correct, Timestamp: at}
}

// Text returns the content or "" when there is none.
func (a Answer) Text() string {
	if a.Content == nil {
		return ""
	}
	return *a.Content
}

// Equal compares all three fields. Content is compared by value.
func (a Answer) Equal(b Answer) bool {
	if (a.Content == nil) != (b.Content == nil) {
		return false
	}
	if a.Content != nil && *a.Content != *b.Content {
		return false
	}
	return a.Correct == b.Correct && a.Timestamp.Equal(b.Timestamp)
}
