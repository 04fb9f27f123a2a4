package quiz

import (
	"errors"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// MinPoolSize is the smallest pool that can supply an answer plus three
// distractors.
const MinPoolSize = OptionCount

var (
	ErrNotEnoughCards = errors.New("not enough cards for a quiz")
	ErrUnknownMode    = errors.New("unknown quiz mode")
	ErrNegativeCount  = errors.New("question count cannot be negative")
	ErrEmptyQuiz      = errors.New("quiz has no questions")
)

// Engine runs one quiz at a time over a fixed catalog. It is not safe for
// concurrent use; callers that share an Engine must serialise access.
type Engine struct {
	catalog []card.Card
	src     Source
	session *Session
}

type Option func(*Engine)

// WithSource replaces the default random source.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// NewEngine creates an engine over a copy of catalog.
func NewEngine(catalog []card.Card, opts ...Option) *Engine {
	e := &Engine{
		catalog: append([]card.Card(nil), catalog...),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = NewSource()
	}
	return e
}

// Start builds a new quiz and returns its first question. On error the
// previous session, if any, is kept.
func (e *Engine) Start(cfg Config) (*Question, error) {
	strat, err := strategyFor(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.Count < 0 {
		return nil, ErrNegativeCount
	}

	pool := card.FilterByTier(e.catalog, cfg.Tier)
	if len(pool) < MinPoolSize {
		return nil, ErrNotEnoughCards
	}

	selected := append([]card.Card(nil), pool...)
	shuffle(e.src, selected)
	selected = uniqueCards(selected)

	count := cfg.Count
	if count == 0 || count > len(selected) {
		count = len(selected)
	}
	selected = selected[:count]

	sequence := make([]Question, 0, len(selected))
	for _, c := range selected {
		sequence = append(sequence, buildQuestion(e.src, strat, cfg.Mode, c, pool))
	}
	sequence = uniqueQuestions(sequence)
	if len(sequence) == 0 {
		return nil, ErrEmptyQuiz
	}

	e.session = newSession(cfg, pool, sequence)
	return e.session.current(), nil
}

// CheckAnswer scores selected against the current question. It returns
// false without recording anything when no question is open.
func (e *Engine) CheckAnswer(selected int) bool {
	s := e.session
	if s == nil || !s.active || s.cursor >= len(s.sequence) {
		return false
	}

	q := s.sequence[s.cursor]
	correct := selected == q.CorrectIndex
	if correct {
		s.score++
	}
	s.history = append(s.history, HistoryEntry{
		Question: q.clone(),
		Selected: selected,
		Correct:  correct,
	})
	return correct
}

// NextQuestion advances to the next question. It returns nil and closes the
// session once the sequence is exhausted.
func (e *Engine) NextQuestion() *Question {
	s := e.session
	if s == nil || !s.active {
		return nil
	}

	s.cursor++
	if s.cursor >= len(s.sequence) {
		s.active = false
		return nil
	}
	return s.current()
}

// CurrentQuestion returns the open question or nil.
func (e *Engine) CurrentQuestion() *Question {
	if e.session == nil {
		return nil
	}
	return e.session.current()
}

// IsFinished reports whether the cursor has moved past the last question.
// Without a session there is nothing left to answer.
func (e *Engine) IsFinished() bool {
	if e.session == nil {
		return true
	}
	return e.session.cursor >= len(e.session.sequence)
}

// Active reports whether the session still accepts answers.
func (e *Engine) Active() bool {
	return e.session != nil && e.session.active
}

// EndSession closes the session regardless of the cursor position.
func (e *Engine) EndSession() {
	if e.session != nil {
		e.session.active = false
	}
}

// Results returns the aggregate score. A zero Results is returned when no
// quiz was started.
func (e *Engine) Results() Results {
	if e.session == nil {
		return Results{History: []HistoryEntry{}}
	}
	return e.session.results()
}

// Position returns the 0-based cursor of the session.
func (e *Engine) Position() int {
	if e.session == nil {
		return 0
	}
	return e.session.cursor
}

// Pool returns the tier-filtered cards the session draws from.
func (e *Engine) Pool() []card.Card {
	if e.session == nil {
		return nil
	}
	return append([]card.Card(nil), e.session.pool...)
}

// Questions returns a copy of the session's question sequence.
func (e *Engine) Questions() []Question {
	if e.session == nil {
		return nil
	}
	out := make([]Question, len(e.session.sequence))
	for i, q := range e.session.sequence {
		out[i] = q.clone()
	}
	return out
}

// Config returns the configuration the session was started with.
func (e *Engine) Config() (Config, bool) {
	if e.session == nil {
		return Config{}, false
	}
	return e.session.config, true
}

func uniqueCards(cards []card.Card) []card.Card {
	seen := make(map[int64]struct{}, len(cards))
	out := cards[:0]
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func uniqueQuestions(questions []Question) []Question {
	seen := make(map[int64]struct{}, len(questions))
	out := questions[:0]
	for _, q := range questions {
		if _, dup := seen[q.Card.ID]; dup {
			continue
		}
		seen[q.Card.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}
