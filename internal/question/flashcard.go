package question

// Flashcard is self-graded: the learner flips the card and says whether
// they knew it.
type Flashcard struct {
	header
	back string
}

// Back returns the reverse side of the card.
func (f *Flashcard) Back() string { return f.back }

// IsCorrect trusts the learner's verdict.
func (f *Flashcard) IsCorrect(a Answer) bool { return a.Correct }

// FlashcardProvider builds "flashcard" questions. "reverso" holds the back
// of the card.
type FlashcardProvider struct{}

func (FlashcardProvider) Tag() string         { return "flashcard" }
func (FlashcardProvider) DisplayName() string { return "Flashcard" }

func (p FlashcardProvider) Build(raw map[string]any) (Question, error) {
	h, err := readHeader(p.Tag(), raw)
	if err != nil {
		return nil, err
	}
	back, err := requiredString(raw, KeyBack)
	if err != nil {
		return nil, err
	}
	return &Flashcard{header: h, back: back}, nil
}
