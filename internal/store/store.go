package store

import (
	"errors"
	"time"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

var (
	ErrNotFound = errors.New("not found")
)

// StoredResult is the persisted summary of a finished quiz.
type StoredResult struct {
	QuizID     string
	Tier       card.Tier
	Mode       string
	Total      int
	Correct    int
	Wrong      int
	Percentage int
	EndedEarly bool
	FinishedAt time.Time
}
