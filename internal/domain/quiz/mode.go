package quiz

import (
	"fmt"
	"strings"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// Mode selects which card attribute a question tests.
type Mode string

const (
	ModeTranslation Mode = "translation" // show the term, pick its meaning
	ModeReading     Mode = "reading"     // show the term, pick its reading
)

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategies[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// strategy holds the per-mode field selection used by both the question
// builder and the distractor picker.
type strategy struct {
	answerOf func(card.Card) string
	hintOf   func(card.Card) string // nil when the mode carries no hints
}

var strategies = map[Mode]strategy{
	ModeTranslation: {
		answerOf: card.Card.Translation,
	},
	ModeReading: {
		answerOf: func(c card.Card) string { return c.Reading },
		hintOf:   func(c card.Card) string { return c.Romanized },
	},
}

func strategyFor(m Mode) (strategy, error) {
	s, ok := strategies[m]
	if !ok {
		return strategy{}, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
	return s, nil
}

// CorrectAnswer returns the answer the given mode expects for c.
func CorrectAnswer(m Mode, c card.Card) (string, error) {
	s, err := strategyFor(m)
	if err != nil {
		return "", err
	}
	return s.answerOf(c), nil
}
