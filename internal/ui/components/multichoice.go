package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/aprende/internal/ui/theme"
)

// MultiChoice renders a numbered option list, optionally with grading
// feedback once an option was chosen.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	ChosenIndex  int // -1 until answered
}

// NewMultiChoice creates an unanswered option list.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Answered reports whether feedback should be shown.
func (m MultiChoice) Answered() bool { return m.ChosenIndex >= 0 }

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n")

	for i, opt := range m.Options {
		line := fmt.Sprintf("  %d) %s", i+1, opt)
		switch {
		case !m.Answered():
			line = theme.Body.Render(line)
		case i == m.CorrectIndex:
			line = theme.Correct.Render(line)
		case i == m.ChosenIndex:
			line = theme.Incorrect.Render(line)
		default:
			line = theme.Muted.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}
