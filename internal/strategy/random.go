package strategy

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/aprende/internal/question"
)

// RandomName is the registry name of Random.
const RandomName = "random"

// Random draws uniformly with replacement. It never exhausts.
type Random struct {
	questions []question.Question
	seed      int64
	draws     int
	rng       *rand.Rand
}

// NewRandom snapshots questions and seeds the generator with seed.
func NewRandom(questions []question.Question, seed int64) (*Random, error) {
	qs, err := snapshot(questions)
	if err != nil {
		return nil, err
	}
	r := &Random{questions: qs}
	r.SetSeed(seed)
	return r, nil
}

// NewRandomUnseeded seeds from the wall clock.
func NewRandomUnseeded(questions []question.Question) (*Random, error) {
	return NewRandom(questions, time.Now().UnixNano())
}

func newSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// SetSeed restarts the sequence; equal seeds give equal sequences.
func (r *Random) SetSeed(seed int64) {
	r.seed = seed
	r.draws = 0
	r.rng = newSource(seed)
}

// Seed returns the current seed.
func (r *Random) Seed() int64 { return r.seed }

func (r *Random) Name() string { return RandomName }
func (r *Random) Len() int     { return len(r.questions) }
func (r *Random) Phase() Phase { return PhaseReady }

func (r *Random) Next() (question.Question, bool) {
	if len(r.questions) == 0 {
		return nil, false
	}
	r.draws++
	return r.questions[r.rng.IntN(len(r.questions))], true
}

// Reset replays the sequence from the current seed.
func (r *Random) Reset() {
	r.SetSeed(r.seed)
}

func (r *Random) Snapshot() State {
	return State{Strategy: RandomName, Seed: r.seed, Draws: r.draws}
}

// Restore reseeds and discards Draws values so the next draw continues the
// original sequence.
func (r *Random) Restore(st State) error {
	if err := checkStrategy(RandomName, st); err != nil {
		return err
	}
	if st.Draws < 0 {
		return &InvalidArgumentError{Arg: "draws", Message: "must be >= 0"}
	}
	r.SetSeed(st.Seed)
	if len(r.questions) == 0 {
		return nil
	}
	for range st.Draws {
		r.rng.IntN(len(r.questions))
	}
	r.draws = st.Draws
	return nil
}
