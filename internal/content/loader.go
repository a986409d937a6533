// Package content loads course documents from JSON.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"

	"github.com/abhisek/aprende/internal/course"
	"github.com/abhisek/aprende/internal/question"
)

// SupportedMajor is the only document major version the loader reads.
const SupportedMajor = "v1"

// CurrentVersion is the version written by tools that emit documents.
const CurrentVersion = "v1.0.0"

// FormatError reports a document that is not valid JSON or fails the schema.
type FormatError struct {
	Source string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("course document %s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// VersionError reports an unsupported formatVersion.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported course format version %q (want %s.x.y)", e.Version, SupportedMajor)
}

// Document is the JSON course document.
type Document struct {
	FormatVersion string          `json:"formatVersion"`
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Blocks        []BlockDocument `json:"blocks"`
}

// BlockDocument is one block; questions stay raw until the factory builds
// them.
type BlockDocument struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        string           `json:"type"`
	Questions   []map[string]any `json:"questions"`
}

// Loader turns course documents into courses.
type Loader struct {
	factory *question.Factory
}

// NewLoader returns a Loader that builds questions with factory.
func NewLoader(factory *question.Factory) *Loader {
	return &Loader{factory: factory}
}

// LoadFile reads and builds the course at path.
func (l *Loader) LoadFile(path string) (*course.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course: %w", err)
	}
	return l.parse(path, data)
}

// Load reads a document from r.
func (l *Loader) Load(r io.Reader) (*course.Course, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read course: %w", err)
	}
	return l.parse("<reader>", data)
}

// Parse builds a course from document bytes.
func (l *Loader) Parse(data []byte) (*course.Course, error) {
	return l.parse("<bytes>", data)
}

func (l *Loader) parse(source string, data []byte) (*course.Course, error) {
	doc, err := Decode(source, data)
	if err != nil {
		return nil, err
	}
	return l.Build(doc)
}

// Decode validates data against the course schema and the format version.
func Decode(source string, data []byte) (*Document, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &FormatError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := courseValidator()
	if err != nil {
		return nil, fmt.Errorf("course schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &FormatError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Source: source, Err: err}
	}
	if err := CheckVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CheckVersion accepts any valid semver with the supported major.
func CheckVersion(v string) error {
	if !semver.IsValid(v) || semver.Major(v) != SupportedMajor {
		return &VersionError{Version: v}
	}
	return nil
}

// Build runs every raw question through the factory and assembles blocks.
func (l *Loader) Build(doc *Document) (*course.Course, error) {
	if doc == nil {
		return nil, errors.New("nil course document")
	}
	blocks := make([]course.Block, 0, len(doc.Blocks))
	for i, bd := range doc.Blocks {
		qs, err := l.factory.BuildAll(bd.Questions)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, bd.ID, err)
		}
		b, err := course.NewBlock(bd.ID, bd.Title, bd.Description, bd.Type, qs)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, bd.ID, err)
		}
		blocks = append(blocks, b)
	}
	c, err := course.New(doc.ID, doc.Title, doc.Description, blocks...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
