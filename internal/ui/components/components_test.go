package components

import (
	"strings"
	"testing"
	"time"
)

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.percent, false, 20)
		if got := p.Filled(20); got != tt.want {
			t.Errorf("Filled(20) at %v%% = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestProgressBar_ViewShowsPercent(t *testing.T) {
	v := NewProgressBar("Progress", 75, true, 30).View()
	if !strings.Contains(v, "75%") {
		t.Errorf("View() = %q, want it to contain 75%%", v)
	}
	if !strings.Contains(v, "Progress") {
		t.Errorf("View() = %q, want the label", v)
	}
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"uno", "dos"}, 1)
	v := m.View()
	for _, want := range []string{"Pick one", "1) uno", "2) dos"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q: %q", want, v)
		}
	}
	if m.Answered() {
		t.Error("new MultiChoice should not be answered")
	}
	m.ChosenIndex = 0
	if !m.Answered() {
		t.Error("expected Answered after choosing")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{12 * time.Second, "12s"},
		{4*time.Minute + 5*time.Second, "4m05s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
		{1400 * time.Millisecond, "1s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSummaryCard_View(t *testing.T) {
	v := SummaryCard{
		Title:    "Session",
		Progress: 50,
		Rows:     []StatRow{{"Accuracy", "75%"}, {"Score", "30"}},
	}.View()
	for _, want := range []string{"Session", "Accuracy", "75%", "Score", "30"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
