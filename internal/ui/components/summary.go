package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/aprende/internal/ui/theme"
)

// StatRow is one labelled value of a summary card.
type StatRow struct {
	Label string
	Value string
}

// SummaryCard renders a bordered block of statistics.
type SummaryCard struct {
	Title    string
	Progress float64
	Rows     []StatRow
	Width    int
}

// View renders the card.
func (c SummaryCard) View() string {
	width := c.Width
	if width <= 0 {
		width = 40
	}
	labelWidth := 0
	for _, r := range c.Rows {
		labelWidth = max(labelWidth, len(r.Label))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(NewProgressBar("", c.Progress, true, width).View())
	for _, r := range c.Rows {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render(fmt.Sprintf("%-*s", labelWidth, r.Label)))
		b.WriteString("  ")
		b.WriteString(theme.Body.Render(r.Value))
	}
	return theme.Card.Render(b.String())
}

// FormatDuration renders whole seconds as 1h02m03s, 4m05s or 12s.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
