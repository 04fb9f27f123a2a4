package quiz

import (
	"math"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// HistoryEntry records one submitted answer.
type HistoryEntry struct {
	Question Question
	Selected int
	Correct  bool
}

// Results summarises a quiz run.
type Results struct {
	Total      int
	Correct    int
	Wrong      int
	Percentage int
	History    []HistoryEntry
}

// Session is the run-time state of one quiz. A new Session is created by
// every Engine.Start; nothing carries over from the previous one.
type Session struct {
	config   Config
	pool     []card.Card
	sequence []Question
	cursor   int
	score    int
	history  []HistoryEntry
	active   bool
}

func newSession(cfg Config, pool []card.Card, sequence []Question) *Session {
	return &Session{
		config:   cfg,
		pool:     pool,
		sequence: sequence,
		cursor:   0,
		score:    0,
		history:  []HistoryEntry{},
		active:   true,
	}
}

func (s *Session) current() *Question {
	if !s.active || s.cursor >= len(s.sequence) {
		return nil
	}
	q := s.sequence[s.cursor].clone()
	return &q
}

func (s *Session) results() Results {
	total := len(s.sequence)
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	return Results{
		Total:      total,
		Correct:    s.score,
		Wrong:      total - s.score,
		Percentage: percentage(s.score, total),
		History:    history,
	}
}

// percentage rounds half away from zero; 0 when there is nothing to score.
func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
