// Package course holds the content tree a learning session runs over:
// a Course owns ordered Blocks, each Block owns ordered Questions.
package course

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/aprende/internal/question"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a course or block field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid course content: %s: %s", e.Field, e.Message)
}

// checkStruct runs the struct tags and converts the first failure.
func checkStruct(prefix string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: prefix + fe.Field(), Message: "failed " + fe.Tag()}
	}
	return err
}

// Block is a thematic group of questions.
type Block struct {
	ID          string
	Title       string `validate:"required"`
	Description string
	Type        string

	questions []question.Question
}

// NewBlock validates the title and the question invariants: every question
// has an id and a type, and ids are unique within the block.
func NewBlock(id, title, description, typ string, questions []question.Question) (Block, error) {
	b := Block{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: description,
		Type:        typ,
	}
	if err := checkStruct("block.", b); err != nil {
		return Block{}, err
	}

	seen := make(map[string]bool, len(questions))
	qs := make([]question.Question, 0, len(questions))
	for i, q := range questions {
		if q == nil {
			return Block{}, &ValidationError{Field: fmt.Sprintf("block %q question %d", id, i), Message: "nil question"}
		}
		if strings.TrimSpace(q.ID()) == "" {
			return Block{}, &ValidationError{Field: fmt.Sprintf("block %q question %d", id, i), Message: "empty id"}
		}
		if strings.TrimSpace(q.Type()) == "" {
			return Block{}, &ValidationError{Field: fmt.Sprintf("block %q question %q", id, q.ID()), Message: "empty type"}
		}
		if seen[q.ID()] {
			return Block{}, &ValidationError{Field: fmt.Sprintf("block %q question %q", id, q.ID()), Message: "duplicate id"}
		}
		seen[q.ID()] = true
		qs = append(qs, q)
	}
	b.questions = qs
	return b, nil
}

// Questions returns a copy of the block's questions.
func (b Block) Questions() []question.Question {
	out := make([]question.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Len is the number of questions in the block.
func (b Block) Len() int { return len(b.questions) }

// Course is the top-level content container.
type Course struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string

	blocks []Block
}

// New validates id and title and takes a copy of blocks.
func New(id, title, description string, blocks ...Block) (*Course, error) {
	c := &Course{
		ID:          strings.TrimSpace(id),
		Title:       strings.TrimSpace(title),
		Description: description,
	}
	if err := checkStruct("course.", c); err != nil {
		return nil, err
	}
	c.blocks = append([]Block(nil), blocks...)
	return c, nil
}

// Blocks returns a copy of the block list.
func (c *Course) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// ReplaceBlocks swaps the whole block list.
func (c *Course) ReplaceBlocks(blocks []Block) {
	c.blocks = append([]Block(nil), blocks...)
}

// AppendBlock adds a block at the end.
func (c *Course) AppendBlock(b Block) {
	c.blocks = append(c.blocks, b)
}

// Questions flattens all blocks in order.
func (c *Course) Questions() []question.Question {
	var out []question.Question
	for _, b := range c.blocks {
		out = append(out, b.questions...)
	}
	if out == nil {
		out = []question.Question{}
	}
	return out
}

// QuestionCount is the total number of questions across blocks.
func (c *Course) QuestionCount() int {
	n := 0
	for _, b := range c.blocks {
		n += len(b.questions)
	}
	return n
}

// Locate returns the block owning q. Identity is tried first; ids are only
// unique per block, so the id fallback returns the first match.
func (c *Course) Locate(q question.Question) (Block, bool) {
	if q == nil {
		return Block{}, false
	}
	for _, b := range c.blocks {
		for _, candidate := range b.questions {
			if same(candidate, q) {
				return b, true
			}
		}
	}
	for _, b := range c.blocks {
		for _, candidate := range b.questions {
			if candidate.ID() == q.ID() && candidate.Type() == q.Type() {
				return b, true
			}
		}
	}
	return Block{}, false
}

// Block returns the block with the given id.
func (c *Course) Block(id string) (Block, bool) {
	for _, b := range c.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// same compares interface values, treating uncomparable dynamic types as
// different.
func same(a, b question.Question) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
