package session

import "time"

// Statistics are the aggregates derived from an answer history.
type Statistics struct {
	TotalQuestions int
	// Answered counts distinct questions with a graded result.
	Answered int
	// Attempted counts graded records (repeats included).
	Attempted     int
	Correct       int
	Incorrect     int
	Unanswered    int
	Completion    float64 // percent of course questions answered, [0,100]
	Accuracy      float64 // percent of graded records that are correct, [0,100]
	BestStreak    int
	CurrentStreak int
	Score         int
	HintsUsed     int
	TimeSpent     time.Duration
}

// ComputeStatistics is a pure function of the history. A nil scorer means
// DefaultScorer.
func ComputeStatistics(records []Record, totalQuestions int, scorer Scorer) Statistics {
	if scorer == nil {
		scorer = DefaultScorer
	}
	st := Statistics{TotalQuestions: totalQuestions}

	answered := make(map[string]bool)
	streak := 0
	for _, r := range records {
		st.HintsUsed += r.HintsUsed
		st.TimeSpent += r.TimeSpent
		st.Score += max(scorer.Score(r), 0)

		switch r.Result {
		case ResultCorrect:
			st.Correct++
			streak++
			st.BestStreak = max(st.BestStreak, streak)
		case ResultIncorrect:
			st.Incorrect++
			streak = 0
		default:
			st.Unanswered++
			streak = 0
		}
		if r.Answered() {
			st.Attempted++
			answered[r.key()] = true
		}
	}
	st.CurrentStreak = streak
	st.Answered = len(answered)

	if totalQuestions > 0 {
		st.Completion = min(float64(st.Answered)/float64(totalQuestions)*100, 100)
	}
	if st.Attempted > 0 {
		st.Accuracy = float64(st.Correct) / float64(st.Attempted) * 100
	}
	return st
}
