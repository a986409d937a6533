package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/session"
	"github.com/abhisek/aprende/internal/ui/components"
	"github.com/abhisek/aprende/internal/ui/theme"
)

// maxAttempts is how many wrong answers a question gets before the player
// reveals the answer and moves on.
const maxAttempts = 2

// outcome of one question.
type outcome int

const (
	outcomeNext outcome = iota
	outcomeQuit
	outcomeFinish
)

// player drives a session line by line.
type player struct {
	in  *bufio.Scanner
	out io.Writer
	svc *session.Service
	now func() time.Time
}

func newPlayer(in io.Reader, out io.Writer, svc *session.Service) *player {
	return &player{in: bufio.NewScanner(in), out: out, svc: svc, now: time.Now}
}

func (p *player) println(s string) {
	lipgloss.Fprintln(p.out, s)
}

// readLine returns false on EOF.
func (p *player) readLine(prompt string) (string, bool) {
	lipgloss.Fprint(p.out, theme.Prompt.Render(prompt))
	if !p.in.Scan() {
		p.println("")
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// Run serves questions until the selector is exhausted or the learner
// quits or finishes. Quitting leaves the session open for resume;
// finishing closes it, which is the only way out of a strategy that never
// runs out of questions.
func (p *player) Run(ctx context.Context, s *session.Session) error {
	p.println(theme.Title.Render(s.Course().Title))
	p.println(theme.Subtitle.Render(fmt.Sprintf("%s · %d questions · session %s",
		s.Selector().Name(), s.Course().QuestionCount(), s.ID())))
	p.println(theme.Hint.Render("Commands: :hint  :skip  :stats  :finish  :quit"))

	q := pendingQuestion(s)
	for {
		if q == nil {
			next, ok, err := p.svc.Next(ctx, s)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			q = next
		}

		out, err := p.ask(ctx, s, q)
		if err != nil {
			return err
		}
		if out == outcomeQuit {
			p.println(theme.Muted.Render("Progress saved. Continue with: aprende resume " + s.ID() + " --course <file>"))
			return nil
		}
		if out == outcomeFinish {
			break
		}
		q = nil
	}

	st, err := p.svc.Finish(ctx, s)
	if err != nil {
		return err
	}
	p.println(summaryCard(s, st).View())
	return nil
}

// pendingQuestion returns the in-flight question of a resumed session if it
// has not been answered yet.
func pendingQuestion(s *session.Session) question.Question {
	q := s.CurrentQuestion()
	if q == nil {
		return nil
	}
	recs := s.Records()
	if n := len(recs); n > 0 && recs[n-1].QuestionID == q.ID() && !recs[n-1].Answered() {
		return q
	}
	return nil
}

func (p *player) ask(ctx context.Context, s *session.Session, q question.Question) (outcome, error) {
	header := fmt.Sprintf("[%d/%d]", s.Statistics().Answered+1, s.Course().QuestionCount())
	if b, ok := s.CurrentBlock(); ok {
		header += " " + b.Title
	}
	p.println("")
	p.println(theme.Label.Render(header))
	if mc, ok := multiChoiceOf(q); ok {
		p.println(mc.View())
	} else {
		p.println(theme.Body.Render(question.Prompt(q)))
	}

	attempts := 0
	for {
		prompt := "> "
		if _, ok := q.(question.Revealer); ok {
			prompt = "(Enter to flip) > "
		}
		line, ok := p.readLine(prompt)
		if !ok {
			return outcomeQuit, nil
		}

		switch strings.ToLower(line) {
		case ":q", ":quit":
			return outcomeQuit, nil
		case ":s", ":skip":
			return outcomeNext, nil
		case ":f", ":finish", ":end":
			return outcomeFinish, nil
		case ":stats":
			st := s.Statistics()
			p.println(theme.Muted.Render(fmt.Sprintf("completion %.0f%% · accuracy %.0f%% · streak %d · score %d",
				st.Completion, st.Accuracy, st.CurrentStreak, st.Score)))
			continue
		case ":h", ":hint":
			hint := question.HintOf(q)
			if hint == "" {
				p.println(theme.Muted.Render("No hint for this one."))
				continue
			}
			if err := p.svc.Hint(ctx, s); err != nil {
				return outcomeNext, err
			}
			p.println(theme.Hint.Render("Hint: " + hint))
			continue
		}

		_, selfGraded := q.(question.Revealer)
		if line == "" && !selfGraded {
			continue
		}

		answer, ok := p.answer(q, line)
		if !ok {
			return outcomeQuit, nil
		}
		res, err := p.svc.Answer(ctx, s, q, answer)
		if err != nil {
			return outcomeNext, err
		}
		if res == session.ResultCorrect {
			p.showChoiceFeedback(q, line)
			p.println(theme.Correct.Render("✓ Correct"))
			return outcomeNext, nil
		}

		attempts++
		if selfGraded || attempts >= maxAttempts {
			p.showChoiceFeedback(q, line)
			msg := "✗ Incorrect"
			if want := expectedAnswer(q); want != "" {
				msg += ". Answer: " + want
			}
			p.println(theme.Incorrect.Render(msg))
			return outcomeNext, nil
		}
		p.println(theme.Incorrect.Render("✗ Not quite, try again (:skip to move on)"))
	}
}

type choiceQuestion interface {
	Options() []string
	CorrectOption() string
	Choose(input string) (int, bool)
}

// multiChoiceOf builds the option list view for choice questions.
func multiChoiceOf(q question.Question) (components.MultiChoice, bool) {
	c, ok := q.(choiceQuestion)
	if !ok {
		return components.MultiChoice{}, false
	}
	opts := c.Options()
	correct := -1
	for i, o := range opts {
		if o == c.CorrectOption() {
			correct = i
			break
		}
	}
	return components.NewMultiChoice(q.Statement(), opts, correct), true
}

// showChoiceFeedback re-renders a choice question with the chosen and
// correct options marked.
func (p *player) showChoiceFeedback(q question.Question, line string) {
	mc, ok := multiChoiceOf(q)
	if !ok {
		return
	}
	if idx, ok := q.(choiceQuestion).Choose(line); ok {
		mc.ChosenIndex = idx
	}
	if mc.Answered() {
		p.println(mc.View())
	}
}

// answer turns an input line into an Answer. Self-graded questions show
// their hidden side and ask for the learner's verdict; ok is false on EOF.
func (p *player) answer(q question.Question, line string) (question.Answer, bool) {
	r, ok := q.(question.Revealer)
	if !ok {
		return question.NewAnswer(line, p.now()), true
	}
	p.println(theme.Selected.Render(r.Back()))
	for {
		verdict, ok := p.readLine("Did you know it? [y/n] ")
		if !ok {
			return question.Answer{}, false
		}
		if knew, valid := parseYesNo(verdict); valid {
			return question.SelfGraded(knew, p.now()), true
		}
	}
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "s", "si", "sí":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// expectedAnswer returns a displayable correct answer when the question
// kind exposes one.
func expectedAnswer(q question.Question) string {
	switch v := q.(type) {
	case interface{ CorrectOption() string }:
		return v.CorrectOption()
	case interface{ Expected() string }:
		return v.Expected()
	case interface{ Answer() bool }:
		return strconv.FormatBool(v.Answer())
	}
	return ""
}

func summaryCard(s *session.Session, st session.Statistics) components.SummaryCard {
	return components.SummaryCard{
		Title:    "Session complete",
		Progress: st.Completion,
		Rows: []components.StatRow{
			{Label: "Answered", Value: fmt.Sprintf("%d of %d", st.Answered, st.TotalQuestions)},
			{Label: "Accuracy", Value: fmt.Sprintf("%.0f%%", st.Accuracy)},
			{Label: "Best streak", Value: strconv.Itoa(st.BestStreak)},
			{Label: "Hints", Value: strconv.Itoa(st.HintsUsed)},
			{Label: "Score", Value: strconv.Itoa(st.Score)},
			{Label: "Time", Value: components.FormatDuration(time.Duration(s.TimeSeconds()) * time.Second)},
		},
	}
}
