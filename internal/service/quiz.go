// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/will1001/flashcard-japan/internal/domain/card"
	"github.com/will1001/flashcard-japan/internal/domain/quiz"
	"github.com/will1001/flashcard-japan/internal/id"
	"github.com/will1001/flashcard-japan/internal/store"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrQuizClosed      = errors.New("quiz is no longer active")
	ErrTooManyQuizzes  = errors.New("too many quizzes in progress")
)

const (
	defaultIdleTimeout = 30 * time.Minute
	defaultMaxQuizzes  = 10000
)

// CardLister supplies the catalog snapshot a quiz is built from.
type CardLister interface {
	ListCards(ctx context.Context) ([]card.Card, error)
}

// ResultSaver persists the summary of a finished quiz.
type ResultSaver interface {
	SaveResult(ctx context.Context, r store.StoredResult) error
}

// AnswerOutcome is what the quiz taker learns after answering.
type AnswerOutcome struct {
	Correct      bool
	CorrectIndex int
	Score        int
	Answered     int
}

// QuizService runs many quizzes at once. Each quiz owns a quiz.Engine that is
// only touched while holding that quiz's lock.
type QuizService struct {
	cards   CardLister
	results ResultSaver
	logger  *slog.Logger

	newSource   func() quiz.Source
	now         func() time.Time
	idleTimeout time.Duration
	maxQuizzes  int

	mu      sync.RWMutex
	quizzes map[string]*trackedQuiz // quizID → quiz
}

type trackedQuiz struct {
	mu       sync.Mutex
	engine   *quiz.Engine
	answered map[int]bool // positions with a submitted answer
	recorded bool

	lastSeen atomic.Int64 // unix nanoseconds of the last access
}

type Option func(*QuizService)

// WithSourceFactory sets how each quiz gets its random source.
func WithSourceFactory(f func() quiz.Source) Option {
	return func(s *QuizService) {
		s.newSource = f
	}
}

// WithClock overrides the time used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) {
		s.now = now
	}
}

// WithIdleTimeout sets how long a quiz may go untouched before it is
// forgotten.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *QuizService) {
		s.idleTimeout = d
	}
}

// WithMaxQuizzes caps the number of quizzes held in memory.
func WithMaxQuizzes(n int) Option {
	return func(s *QuizService) {
		s.maxQuizzes = n
	}
}

// NewQuizService creates a QuizService. results may be nil when finished
// quizzes should not be persisted.
func NewQuizService(cards CardLister, results ResultSaver, logger *slog.Logger, opts ...Option) *QuizService {
	s := &QuizService{
		cards:     cards,
		results:   results,
		logger:    logger,
		newSource:   quiz.NewSource,
		now:         time.Now,
		idleTimeout: defaultIdleTimeout,
		maxQuizzes:  defaultMaxQuizzes,
		quizzes:     make(map[string]*trackedQuiz),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds a quiz from the current catalog and returns its id and first
// question.
func (s *QuizService) Start(ctx context.Context, cfg quiz.Config) (string, *quiz.Question, error) {
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load catalog: %w", err)
	}

	engine := quiz.NewEngine(cards, quiz.WithSource(s.newSource()))
	first, err := engine.Start(cfg)
	if err != nil {
		return "", nil, err
	}

	tq := &trackedQuiz{
		engine:   engine,
		answered: make(map[int]bool),
	}
	tq.lastSeen.Store(s.now().UnixNano())

	quizID := id.GenerateID()
	s.mu.Lock()
	if evicted := s.evictIdleLocked(); evicted > 0 {
		s.logger.Info("idle quizzes evicted", "count", evicted)
	}
	if s.maxQuizzes > 0 && len(s.quizzes) >= s.maxQuizzes {
		s.mu.Unlock()
		return "", nil, ErrTooManyQuizzes
	}
	s.quizzes[quizID] = tq
	s.mu.Unlock()

	s.logger.Info("quiz started",
		"quiz_id", quizID,
		"tier", cfg.Tier.String(),
		"mode", string(cfg.Mode),
		"questions", len(engine.Questions()),
	)
	return quizID, first, nil
}

// Answer submits selected for the open question of the quiz.
func (s *QuizService) Answer(quizID string, selected int) (AnswerOutcome, error) {
	tq, err := s.get(quizID)
	if err != nil {
		return AnswerOutcome{}, err
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()

	q := tq.engine.CurrentQuestion()
	if q == nil {
		return AnswerOutcome{}, ErrQuizClosed
	}
	pos := tq.engine.Position()
	if tq.answered[pos] {
		return AnswerOutcome{}, ErrAlreadyAnswered
	}

	correct := tq.engine.CheckAnswer(selected)
	tq.answered[pos] = true
	res := tq.engine.Results()
	return AnswerOutcome{
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		Score:        res.Correct,
		Answered:     len(res.History),
	}, nil
}

// Next advances the quiz. A nil question means the quiz is over; its result
// is recorded then.
func (s *QuizService) Next(ctx context.Context, quizID string) (*quiz.Question, error) {
	tq, err := s.get(quizID)
	if err != nil {
		return nil, err
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()

	next := tq.engine.NextQuestion()
	if next == nil {
		s.record(ctx, quizID, tq)
	}
	return next, nil
}

// QuizState is a read-only view of where a quiz stands.
type QuizState struct {
	Question *quiz.Question // nil once the quiz is over
	Position int
	Total    int
	Active   bool
}

// Current returns the open question and the quiz position.
func (s *QuizService) Current(quizID string) (QuizState, error) {
	tq, err := s.get(quizID)
	if err != nil {
		return QuizState{}, err
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()

	return QuizState{
		Question: tq.engine.CurrentQuestion(),
		Position: tq.engine.Position(),
		Total:    len(tq.engine.Questions()),
		Active:   tq.engine.Active(),
	}, nil
}

// Results returns the score so far, whether or not the quiz is over.
func (s *QuizService) Results(quizID string) (quiz.Results, bool, error) {
	tq, err := s.get(quizID)
	if err != nil {
		return quiz.Results{}, false, err
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()

	return tq.engine.Results(), !tq.engine.Active(), nil
}

// End closes the quiz early and records its result.
func (s *QuizService) End(ctx context.Context, quizID string) (quiz.Results, error) {
	tq, err := s.get(quizID)
	if err != nil {
		return quiz.Results{}, err
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()

	tq.engine.EndSession()
	s.record(ctx, quizID, tq)
	return tq.engine.Results(), nil
}

// Discard forgets the quiz.
func (s *QuizService) Discard(quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[quizID]; !ok {
		return ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	return nil
}

func (s *QuizService) get(quizID string) (*trackedQuiz, error) {
	s.mu.RLock()
	tq, ok := s.quizzes[quizID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrQuizNotFound
	}
	tq.lastSeen.Store(s.now().UnixNano())
	return tq, nil
}

// Sweep forgets every quiz idle for longer than the idle timeout and
// returns how many were dropped.
func (s *QuizService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked()
}

// Len returns the number of quizzes held in memory.
func (s *QuizService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *QuizService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("idle quizzes evicted", "count", n)
			}
		}
	}
}

// evictIdleLocked requires s.mu held for writing.
func (s *QuizService) evictIdleLocked() int {
	if s.idleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTimeout).UnixNano()
	evicted := 0
	for quizID, tq := range s.quizzes {
		if tq.lastSeen.Load() < cutoff {
			delete(s.quizzes, quizID)
			evicted++
		}
	}
	return evicted
}

// record persists the result once. Callers hold tq.mu. Failures are logged
// only: the quiz taker still gets their results.
func (s *QuizService) record(ctx context.Context, quizID string, tq *trackedQuiz) {
	if tq.recorded {
		return
	}
	tq.recorded = true

	res := tq.engine.Results()
	cfg, _ := tq.engine.Config()
	s.logger.Info("quiz finished",
		"quiz_id", quizID,
		"total", res.Total,
		"correct", res.Correct,
		"percentage", res.Percentage,
	)

	if s.results == nil {
		return
	}
	err := s.results.SaveResult(ctx, store.StoredResult{
		QuizID:     quizID,
		Tier:       cfg.Tier,
		Mode:       string(cfg.Mode),
		Total:      res.Total,
		Correct:    res.Correct,
		Wrong:      res.Wrong,
		Percentage: res.Percentage,
		EndedEarly: !tq.engine.IsFinished(),
		FinishedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to save quiz result",
			"quiz_id", quizID,
			"error", err,
		)
	}
}
