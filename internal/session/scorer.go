package session

import "github.com/abhisek/aprende/internal/question"

// Scorer assigns points to one history record.
type Scorer interface {
	Score(r Record) int
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(r Record) int

func (f ScorerFunc) Score(r Record) int { return f(r) }

// Scoring constants for DefaultScorer.
const (
	PointsPerWeight  = 10
	HintPenalty      = 2
	RetryPenalty     = 3
	MinCorrectPoints = 1
)

// DefaultScorer gives PointsPerWeight per question weight for a correct
// record, minus penalties for hints and extra attempts, never below
// MinCorrectPoints. Incorrect and unanswered records score 0.
var DefaultScorer Scorer = ScorerFunc(func(r Record) int {
	if r.Result != ResultCorrect {
		return 0
	}
	weight := 1
	if r.Question != nil {
		weight = question.WeightOf(r.Question)
	}
	pts := weight*PointsPerWeight - r.HintsUsed*HintPenalty
	if r.Attempts > 1 {
		pts -= (r.Attempts - 1) * RetryPenalty
	}
	return max(pts, MinCorrectPoints)
})
