package session

import "time"

// Summary is the list view of a stored session.
type Summary struct {
	ID          string
	CourseID    string
	Strategy    string
	StartTime   time.Time
	EndTime     *time.Time
	TimeSeconds int64
	Completion  float64
	Accuracy    float64
	BestStreak  int
	Score       int
	Records     int
	Answered    int
}

// Active reports whether the summarized session is still open.
func (s Summary) Active() bool { return s.EndTime == nil }

// Duration is the elapsed session time.
func (s Summary) Duration() time.Duration {
	return time.Duration(s.TimeSeconds) * time.Second
}

// Summarize builds the list view for a snapshot.
func Summarize(sn Snapshot) Summary {
	answered := 0
	for _, r := range sn.Records {
		if r.Answered() {
			answered++
		}
	}
	return Summary{
		ID:          sn.ID,
		CourseID:    sn.CourseID,
		Strategy:    sn.Strategy.Strategy,
		StartTime:   sn.StartTime,
		EndTime:     sn.EndTime,
		TimeSeconds: sn.TimeSeconds,
		Completion:  sn.Completion,
		Accuracy:    sn.Accuracy,
		BestStreak:  sn.BestStreak,
		Score:       sn.Score,
		Records:     len(sn.Records),
		Answered:    answered,
	}
}
