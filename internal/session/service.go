package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/aprende/internal/course"
	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/strategy"
)

// Service drives sessions and saves them after every change. Persistence
// failures are logged and returned; the in-memory session keeps its state.
type Service struct {
	repo       Repository
	events     EventLog
	strategies *strategy.Registry
	log        logrus.FieldLogger
	opts       []Option
	newID      func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithEventLog appends an AnswerEvent for every recorded answer.
func WithEventLog(events EventLog) ServiceOption {
	return func(svc *Service) { svc.events = events }
}

// WithSessionOptions applies opts to every session the service creates or
// restores.
func WithSessionOptions(opts ...Option) ServiceOption {
	return func(svc *Service) { svc.opts = append(svc.opts, opts...) }
}

// WithIDGenerator replaces the UUID session id generator.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(svc *Service) {
		if gen != nil {
			svc.newID = gen
		}
	}
}

// NewService returns a Service. A nil logger discards output.
func NewService(repo Repository, strategies *strategy.Registry, log logrus.FieldLogger, opts ...ServiceOption) *Service {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	svc := &Service{
		repo:       repo,
		strategies: strategies,
		log:        log,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Start creates a session over c's questions with the named strategy and
// saves it.
func (svc *Service) Start(ctx context.Context, c *course.Course, strategyName string, sopts strategy.Options) (*Session, error) {
	if c == nil {
		return nil, &ValidationError{Field: "course", Message: "must not be nil"}
	}
	sel, err := svc.strategies.CreateWith(strategyName, c.Questions(), sopts)
	if err != nil {
		return nil, fmt.Errorf("create strategy: %w", err)
	}
	s, err := New(svc.newID(), c, sel, svc.opts...)
	if err != nil {
		return nil, err
	}
	svc.log.WithFields(logrus.Fields{
		"session":   s.ID(),
		"course":    c.ID,
		"strategy":  sel.Name(),
		"questions": sel.Len(),
	}).Info("session started")
	if err := svc.save(ctx, s); err != nil {
		return s, err
	}
	return s, nil
}

// Next advances the session and saves the selector position.
func (svc *Service) Next(ctx context.Context, s *Session) (question.Question, bool, error) {
	q, ok := s.Next()
	if err := svc.save(ctx, s); err != nil {
		return q, ok, err
	}
	return q, ok, nil
}

// Answer records answer for q, refreshes the statistics, appends an answer
// event and saves the session.
func (svc *Service) Answer(ctx context.Context, s *Session, q question.Question, answer question.Answer) (Result, error) {
	result, err := s.RecordAnswer(q, answer)
	if err != nil {
		return "", err
	}
	s.RefreshStatistics()

	if svc.events != nil {
		r := s.records[s.inFlight]
		ev := AnswerEvent{
			SessionID:    s.ID(),
			CourseID:     s.Course().ID,
			BlockID:      r.BlockID,
			QuestionID:   r.QuestionID,
			QuestionType: r.QuestionType,
			Result:       r.Result,
			Attempt:      r.Attempts,
			HintsUsed:    r.HintsUsed,
			TimeSpent:    r.TimeSpent,
			Answer:       r.LastAnswer,
			At:           r.AnsweredAt,
		}
		if err := svc.events.AppendAnswer(ctx, ev); err != nil {
			svc.log.WithError(err).WithField("session", s.ID()).Warn("failed to append answer event")
			return result, fmt.Errorf("append answer event: %w", err)
		}
	}
	if err := svc.save(ctx, s); err != nil {
		return result, err
	}
	return result, nil
}

// Hint counts a hint on the in-flight question and saves.
func (svc *Service) Hint(ctx context.Context, s *Session) error {
	if err := s.UseHint(); err != nil {
		return err
	}
	return svc.save(ctx, s)
}

// Finish closes the session, refreshes its statistics and saves it.
func (svc *Service) Finish(ctx context.Context, s *Session) (Statistics, error) {
	s.Finish()
	st := s.RefreshStatistics()
	svc.log.WithFields(logrus.Fields{
		"session":  s.ID(),
		"accuracy": st.Accuracy,
		"score":    st.Score,
		"seconds":  s.TimeSeconds(),
	}).Info("session finished")
	return st, svc.save(ctx, s)
}

// Resume loads a stored session and rebuilds it against c.
func (svc *Service) Resume(ctx context.Context, id string, c *course.Course) (*Session, error) {
	sn, err := svc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			svc.log.WithError(err).WithField("session", id).Error("failed to load session")
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if c == nil {
		return nil, &ValidationError{Field: "course", Message: "must not be nil"}
	}
	sel, err := svc.strategies.Resume(sn.Strategy, c.Questions())
	if err != nil {
		return nil, fmt.Errorf("restore strategy: %w", err)
	}
	s, err := Restore(sn, c, sel, svc.opts...)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	svc.log.WithFields(logrus.Fields{
		"session":  id,
		"strategy": sel.Name(),
		"records":  len(sn.Records),
	}).Debug("session resumed")
	return s, nil
}

// Save persists the session as is.
func (svc *Service) Save(ctx context.Context, s *Session) error {
	return svc.save(ctx, s)
}

func (svc *Service) save(ctx context.Context, s *Session) error {
	if svc.repo == nil {
		return nil
	}
	if err := svc.repo.Save(ctx, s.Snapshot()); err != nil {
		svc.log.WithError(err).WithField("session", s.ID()).Error("failed to save session")
		return fmt.Errorf("save session %s: %w", s.ID(), err)
	}
	return nil
}
