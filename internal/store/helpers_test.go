package store

import (
	"testing"
	"time"

	"github.com/abhisek/aprende/internal/course"
	"github.com/abhisek/aprende/internal/question"
)

type yesQuestion struct{ id string }

func (q yesQuestion) ID() string                       { return q.id }
func (q yesQuestion) Type() string                     { return "truefalse" }
func (q yesQuestion) Statement() string                { return "is " + q.id + " true?" }
func (q yesQuestion) IsCorrect(a question.Answer) bool { return a.Text() == "yes" }

func testCourse(t *testing.T) *course.Course {
	t.Helper()
	b, err := course.NewBlock("b1", "Basics", "", "practica",
		[]question.Question{yesQuestion{"q1"}, yesQuestion{"q2"}})
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	c, err := course.New("c1", "Course", "", b)
	if err != nil {
		t.Fatalf("new course: %v", err)
	}
	return c
}

func textAnswer(s string) question.Answer {
	return question.NewAnswer(s, time.Now())
}
