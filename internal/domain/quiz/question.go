package quiz

import "github.com/will1001/flashcard-japan/internal/domain/card"

const (
	// OptionCount is the number of options a question has when the pool is
	// diverse enough.
	OptionCount = 4
	distractors = OptionCount - 1
)

// Question is one multiple-choice item built from a card.
type Question struct {
	Card         card.Card
	Options      []string
	OptionHints  []string // parallel to Options, reading mode only
	CorrectIndex int
	Mode         Mode
}

// Degraded reports whether the pool could not supply enough distinct
// distractors for a full set of options.
func (q Question) Degraded() bool {
	return len(q.Options) < OptionCount
}

// Answer returns the correct option text.
func (q Question) Answer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

func (q Question) clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	if q.OptionHints != nil {
		c.OptionHints = append([]string(nil), q.OptionHints...)
	}
	return c
}

type option struct {
	answer  string
	hint    string
	correct bool
}

// buildQuestion assembles the question for target, drawing distractors from
// pool. Fewer than OptionCount options are produced when the pool does not
// hold enough distinct answers.
func buildQuestion(src Source, strat strategy, mode Mode, target card.Card, pool []card.Card) Question {
	correct := strat.answerOf(target)

	opts := pickDistractors(src, strat, target, correct, pool)
	opts = append(opts, option{answer: correct, hint: hintOf(strat, target), correct: true})
	shuffle(src, opts)

	q := Question{
		Card:         target,
		Options:      make([]string, len(opts)),
		CorrectIndex: -1,
		Mode:         mode,
	}
	if strat.hintOf != nil {
		q.OptionHints = make([]string, len(opts))
	}
	for i, o := range opts {
		q.Options[i] = o.answer
		if q.OptionHints != nil {
			q.OptionHints[i] = o.hint
		}
		if o.correct {
			q.CorrectIndex = i
		}
	}
	return q
}

// pickDistractors walks a shuffled copy of pool without target and accepts
// each candidate whose answer has not been seen yet.
func pickDistractors(src Source, strat strategy, target card.Card, correct string, pool []card.Card) []option {
	candidates := make([]card.Card, 0, len(pool))
	for _, c := range pool {
		if c.ID != target.ID {
			candidates = append(candidates, c)
		}
	}
	shuffle(src, candidates)

	seen := map[string]struct{}{correct: {}}
	picked := make([]option, 0, OptionCount)
	for _, c := range candidates {
		if len(picked) == distractors {
			break
		}
		answer := strat.answerOf(c)
		if _, dup := seen[answer]; dup {
			continue
		}
		seen[answer] = struct{}{}
		picked = append(picked, option{answer: answer, hint: hintOf(strat, c)})
	}
	return picked
}

func hintOf(strat strategy, c card.Card) string {
	if strat.hintOf == nil {
		return ""
	}
	return strat.hintOf(c)
}
