package quiz_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/will1001/flashcard-japan/internal/domain/card"
	"github.com/will1001/flashcard-japan/internal/domain/quiz"
)

func createCatalog(n int, tier card.Tier) []card.Card {
	cards := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, card.Card{
			ID:                 int64(i + 1),
			Term:               fmt.Sprintf("term-%d", i+1),
			Reading:            fmt.Sprintf("reading-%d", i+1),
			Romanized:          fmt.Sprintf("romaji-%d", i+1),
			TranslationPrimary: fmt.Sprintf("meaning-%d", i+1),
			Tier:               tier,
		})
	}
	return cards
}

func mixedCatalog() []card.Card {
	var cards []card.Card
	cards = append(cards, createCatalog(6, card.TierN5)...)
	for i, c := range createCatalog(5, card.TierN4) {
		c.ID = int64(100 + i)
		c.TranslationPrimary = fmt.Sprintf("n4-meaning-%d", i)
		c.Reading = fmt.Sprintf("n4-reading-%d", i)
		cards = append(cards, c)
	}
	for i, c := range createCatalog(2, card.TierN3) {
		c.ID = int64(200 + i)
		c.TranslationPrimary = fmt.Sprintf("n3-meaning-%d", i)
		cards = append(cards, c)
	}
	return cards
}

func newEngine(cards []card.Card) *quiz.Engine {
	return quiz.NewEngine(cards, quiz.WithSource(quiz.NewSeededSource(42)))
}

func TestStart_NotEnoughCards(t *testing.T) {
	cards := mixedCatalog() // only 2 N3 cards

	for _, mode := range []quiz.Mode{quiz.ModeTranslation, quiz.ModeReading} {
		for _, count := range []int{0, 1, 10} {
			e := newEngine(cards)
			q, err := e.Start(quiz.Config{Tier: card.TierN3, Count: count, Mode: mode})
			if !errors.Is(err, quiz.ErrNotEnoughCards) {
				t.Errorf("mode %s count %d: expected ErrNotEnoughCards, got %v", mode, count, err)
			}
			if q != nil {
				t.Errorf("mode %s count %d: expected nil question", mode, count)
			}
			if e.Active() {
				t.Errorf("mode %s count %d: expected no active session", mode, count)
			}
		}
	}

	e := newEngine(createCatalog(3, card.TierN5))
	if _, err := e.Start(quiz.DefaultConfig()); !errors.Is(err, quiz.ErrNotEnoughCards) {
		t.Errorf("expected ErrNotEnoughCards for 3 cards, got %v", err)
	}
}

func TestStart_PoolFiltering(t *testing.T) {
	cards := mixedCatalog()

	tests := []struct {
		tier card.Tier
		want int
	}{
		{card.TierN5, 6},
		{card.TierN4, 5},
		{card.TierAll, 13},
	}

	for _, tt := range tests {
		e := newEngine(cards)
		if _, err := e.Start(quiz.Config{Tier: tt.tier, Mode: quiz.ModeTranslation}); err != nil {
			t.Fatalf("tier %s: unexpected error: %v", tt.tier, err)
		}

		pool := e.Pool()
		if len(pool) != tt.want {
			t.Errorf("tier %s: expected pool of %d, got %d", tt.tier, tt.want, len(pool))
		}
		for _, c := range pool {
			if !tt.tier.Matches(c.Tier) {
				t.Errorf("tier %s: card %d with tier %s leaked into the pool", tt.tier, c.ID, c.Tier)
			}
		}
		for _, q := range e.Questions() {
			if !tt.tier.Matches(q.Card.Tier) {
				t.Errorf("tier %s: question for card %d has tier %s", tt.tier, q.Card.ID, q.Card.Tier)
			}
		}
	}
}

func TestStart_CountSemantics(t *testing.T) {
	cards := createCatalog(10, card.TierN5)

	tests := []struct {
		count int
		want  int
	}{
		{0, 10},
		{1, 1},
		{4, 4},
		{10, 10},
		{25, 10},
	}

	for _, tt := range tests {
		e := newEngine(cards)
		if _, err := e.Start(quiz.Config{Tier: card.TierN5, Count: tt.count, Mode: quiz.ModeTranslation}); err != nil {
			t.Fatalf("count %d: unexpected error: %v", tt.count, err)
		}
		if got := len(e.Questions()); got != tt.want {
			t.Errorf("count %d: expected %d questions, got %d", tt.count, tt.want, got)
		}
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	e := newEngine(createCatalog(5, card.TierN5))

	if _, err := e.Start(quiz.Config{Tier: card.TierAll, Mode: "kanji"}); !errors.Is(err, quiz.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := e.Start(quiz.Config{Tier: card.TierAll, Count: -1, Mode: quiz.ModeReading}); !errors.Is(err, quiz.ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}

func TestStart_NoRepeatedCards(t *testing.T) {
	cards := createCatalog(8, card.TierN5)
	// A duplicated id slips through upstream validation.
	cards = append(cards, cards[0], cards[3])

	for i := 0; i < 20; i++ {
		e := quiz.NewEngine(cards, quiz.WithSource(quiz.NewSeededSource(uint64(i))))
		if _, err := e.Start(quiz.DefaultConfig()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seen := map[int64]bool{}
		for _, q := range e.Questions() {
			if seen[q.Card.ID] {
				t.Fatalf("card %d appears twice in the sequence", q.Card.ID)
			}
			seen[q.Card.ID] = true
		}
		if len(seen) != 8 {
			t.Errorf("expected 8 distinct cards, got %d", len(seen))
		}
	}
}

func TestQuestions_OptionIntegrity(t *testing.T) {
	cards := mixedCatalog()

	for _, mode := range []quiz.Mode{quiz.ModeTranslation, quiz.ModeReading} {
		for seed := uint64(0); seed < 10; seed++ {
			e := quiz.NewEngine(cards, quiz.WithSource(quiz.NewSeededSource(seed)))
			if _, err := e.Start(quiz.Config{Tier: card.TierAll, Mode: mode}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, q := range e.Questions() {
				if len(q.Options) > quiz.OptionCount {
					t.Errorf("card %d: %d options", q.Card.ID, len(q.Options))
				}
				seen := map[string]bool{}
				for _, o := range q.Options {
					if seen[o] {
						t.Errorf("card %d: duplicate option %q", q.Card.ID, o)
					}
					seen[o] = true
				}

				want, err := quiz.CorrectAnswer(mode, q.Card)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if q.Answer() != want {
					t.Errorf("card %d: correct index points at %q, want %q", q.Card.ID, q.Answer(), want)
				}
				if q.Mode != mode {
					t.Errorf("card %d: expected mode %s, got %s", q.Card.ID, mode, q.Mode)
				}
			}
		}
	}
}

func TestQuestions_ReadingHintsStayPaired(t *testing.T) {
	cards := createCatalog(12, card.TierN5)
	romajiOf := map[string]string{}
	for _, c := range cards {
		romajiOf[c.Reading] = c.Romanized
	}

	e := newEngine(cards)
	if _, err := e.Start(quiz.Config{Tier: card.TierN5, Mode: quiz.ModeReading}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, q := range e.Questions() {
		if len(q.OptionHints) != len(q.Options) {
			t.Fatalf("card %d: %d hints for %d options", q.Card.ID, len(q.OptionHints), len(q.Options))
		}
		for i, o := range q.Options {
			if q.OptionHints[i] != romajiOf[o] {
				t.Errorf("card %d: option %q paired with hint %q, want %q", q.Card.ID, o, q.OptionHints[i], romajiOf[o])
			}
		}
	}
}

func TestQuestions_TranslationModeHasNoHints(t *testing.T) {
	e := newEngine(createCatalog(5, card.TierN5))
	q, err := e.Start(quiz.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.OptionHints != nil {
		t.Errorf("expected no hints in translation mode, got %v", q.OptionHints)
	}
}

func TestQuestions_SecondaryTranslationPreferred(t *testing.T) {
	cards := createCatalog(4, card.TierN5)
	for i := range cards {
		cards[i].TranslationSecondary = fmt.Sprintf("english-%d", i)
	}

	e := newEngine(cards)
	if _, err := e.Start(quiz.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range e.Questions() {
		if q.Answer() != q.Card.TranslationSecondary {
			t.Errorf("card %d: expected answer %q, got %q", q.Card.ID, q.Card.TranslationSecondary, q.Answer())
		}
	}
}

func TestScenario_FiveDistinctTranslations(t *testing.T) {
	cards := createCatalog(5, "T")
	for i, tr := range []string{"A", "B", "C", "D", "E"} {
		cards[i].TranslationPrimary = tr
	}

	e := newEngine(cards)
	if _, err := e.Start(quiz.Config{Tier: "T", Count: 3, Mode: quiz.ModeTranslation}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	questions := e.Questions()
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("card %d: expected 4 options, got %d", q.Card.ID, len(q.Options))
		}
		n := 0
		for _, o := range q.Options {
			if o == q.Card.TranslationPrimary {
				n++
			}
		}
		if n != 1 {
			t.Errorf("card %d: translation appears %d times", q.Card.ID, n)
		}
		if q.Degraded() {
			t.Errorf("card %d: unexpected degraded question", q.Card.ID)
		}
	}
}

func TestScenario_SharedTranslationDegrades(t *testing.T) {
	cards := createCatalog(4, card.TierN5)
	for i, tr := range []string{"X", "X", "Y", "Z"} {
		cards[i].TranslationPrimary = tr
	}

	e := newEngine(cards)
	if _, err := e.Start(quiz.Config{Tier: card.TierAll, Count: 0, Mode: quiz.ModeTranslation}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	degradedX := false
	for _, q := range e.Questions() {
		if q.Card.TranslationPrimary == "X" && len(q.Options) < 4 {
			degradedX = true
		}
		if len(q.Options) != 3 {
			t.Errorf("card %d: expected 3 options, got %d %v", q.Card.ID, len(q.Options), q.Options)
		}
	}
	if !degradedX {
		t.Error("expected at least one X question with fewer than 4 options")
	}
}

func TestScoring(t *testing.T) {
	e := newEngine(createCatalog(6, card.TierN5))
	q, err := e.Start(quiz.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	correctAnswers := 0
	for i := 0; q != nil; i++ {
		selected := q.CorrectIndex
		if i%3 == 0 {
			selected = (q.CorrectIndex + 1) % len(q.Options)
		} else {
			correctAnswers++
		}

		if got := e.CheckAnswer(selected); got != (selected == q.CorrectIndex) {
			t.Errorf("question %d: CheckAnswer returned %v", i, got)
		}
		q = e.NextQuestion()
	}

	res := e.Results()
	if res.Total != 6 {
		t.Errorf("expected total 6, got %d", res.Total)
	}
	if res.Correct != correctAnswers {
		t.Errorf("expected %d correct, got %d", correctAnswers, res.Correct)
	}
	if res.Wrong != 6-correctAnswers {
		t.Errorf("expected %d wrong, got %d", 6-correctAnswers, res.Wrong)
	}
	if res.Percentage != 67 {
		t.Errorf("expected 67%%, got %d%%", res.Percentage)
	}
	if len(res.History) != 6 {
		t.Fatalf("expected 6 history entries, got %d", len(res.History))
	}
	for i, h := range res.History {
		if h.Correct != (h.Selected == h.Question.CorrectIndex) {
			t.Errorf("history %d: inconsistent correctness", i)
		}
	}
}

func TestLifecycle_Exhaustion(t *testing.T) {
	e := newEngine(createCatalog(4, card.TierN5))
	first, err := e.Start(quiz.Config{Tier: card.TierN5, Count: 2, Mode: quiz.ModeReading})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cur := e.CurrentQuestion(); cur == nil || cur.Card.ID != first.Card.ID {
		t.Fatal("expected the current question to be the first one")
	}
	if e.IsFinished() {
		t.Error("expected quiz not finished at start")
	}

	if e.NextQuestion() == nil {
		t.Fatal("expected a second question")
	}
	if e.NextQuestion() != nil {
		t.Fatal("expected nil after the last question")
	}

	if !e.IsFinished() {
		t.Error("expected quiz finished")
	}
	if e.Active() {
		t.Error("expected session inactive once exhausted")
	}
	if e.CurrentQuestion() != nil {
		t.Error("expected no current question")
	}
	if e.CheckAnswer(0) {
		t.Error("expected CheckAnswer to be a no-op after exhaustion")
	}
	if e.NextQuestion() != nil {
		t.Error("expected NextQuestion to stay nil")
	}
	if got := len(e.Results().History); got != 0 {
		t.Errorf("expected no history, got %d", got)
	}
}

func TestEndSession(t *testing.T) {
	e := newEngine(createCatalog(6, card.TierN5))
	q, err := e.Start(quiz.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !e.CheckAnswer(q.CorrectIndex) {
		t.Fatal("expected correct answer")
	}
	e.NextQuestion()
	e.EndSession()

	if e.Active() {
		t.Error("expected inactive session")
	}
	next := e.CurrentQuestion()
	if e.CheckAnswer(0) || (next != nil && e.CheckAnswer(next.CorrectIndex)) {
		t.Error("expected CheckAnswer to return false after EndSession")
	}
	if e.NextQuestion() != nil {
		t.Error("expected NextQuestion to return nil after EndSession")
	}

	res := e.Results()
	if res.Total != 6 || res.Correct != 1 || res.Wrong != 5 || res.Percentage != 17 {
		t.Errorf("unexpected results after early exit: %+v", res)
	}
}

func TestResults_NoSession(t *testing.T) {
	e := newEngine(createCatalog(6, card.TierN5))

	res := e.Results()
	if res.Total != 0 || res.Correct != 0 || res.Percentage != 0 {
		t.Errorf("expected zero results, got %+v", res)
	}
	if e.CheckAnswer(0) {
		t.Error("expected CheckAnswer false without session")
	}
	if e.NextQuestion() != nil || e.CurrentQuestion() != nil {
		t.Error("expected no questions without session")
	}
	if !e.IsFinished() {
		t.Error("expected IsFinished without session")
	}
	if _, ok := e.Config(); ok {
		t.Error("expected no config without session")
	}
}

func TestStart_ReplacesSession(t *testing.T) {
	cards := mixedCatalog()
	e := newEngine(cards)

	q, err := e.Start(quiz.Config{Tier: card.TierN5, Mode: quiz.ModeTranslation})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.CheckAnswer(q.CorrectIndex)
	e.NextQuestion()

	if _, err := e.Start(quiz.Config{Tier: card.TierN4, Count: 2, Mode: quiz.ModeReading}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := e.Results()
	if res.Total != 2 || res.Correct != 0 || len(res.History) != 0 {
		t.Errorf("expected fresh session, got %+v", res)
	}
	if e.Position() != 0 {
		t.Errorf("expected cursor 0, got %d", e.Position())
	}
	cfg, _ := e.Config()
	if cfg.Tier != card.TierN4 || cfg.Mode != quiz.ModeReading {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestStart_FailureKeepsPreviousSession(t *testing.T) {
	e := newEngine(mixedCatalog())

	if _, err := e.Start(quiz.Config{Tier: card.TierN5, Count: 3, Mode: quiz.ModeTranslation}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Start(quiz.Config{Tier: card.TierN3, Mode: quiz.ModeTranslation}); err == nil {
		t.Fatal("expected error for N3")
	}

	if !e.Active() || len(e.Questions()) != 3 {
		t.Error("expected the N5 session to survive a failed start")
	}
}

func TestStart_SeededSourceIsReproducible(t *testing.T) {
	cards := mixedCatalog()

	order := func() []string {
		e := quiz.NewEngine(cards, quiz.WithSource(quiz.NewSeededSource(7)))
		if _, err := e.Start(quiz.DefaultConfig()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out []string
		for _, q := range e.Questions() {
			out = append(out, fmt.Sprintf("%d:%v:%d", q.Card.ID, q.Options, q.CorrectIndex))
		}
		return out
	}

	a, b := order(), order()
	if len(a) != len(b) {
		t.Fatal("sequences differ in length")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequences differ at %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestQuestionsAreCopies(t *testing.T) {
	e := newEngine(createCatalog(5, card.TierN5))
	q, err := e.Start(quiz.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := q.Options[0]
	q.Options[0] = "tampered"
	q.CorrectIndex = 99

	cur := e.CurrentQuestion()
	if cur.Options[0] != want {
		t.Error("expected session options to be unaffected by caller mutation")
	}
	if cur.CorrectIndex == 99 {
		t.Error("expected session correct index to be unaffected")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := quiz.ParseMode(" Reading "); err != nil || m != quiz.ModeReading {
		t.Errorf("expected reading mode, got %q, %v", m, err)
	}
	if _, err := quiz.ParseMode("romaji"); !errors.Is(err, quiz.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestNewEngine_CopiesCatalog(t *testing.T) {
	cards := createCatalog(4, card.TierN5)
	e := newEngine(cards)

	cards[0].Tier = card.TierN1
	cards[1].Tier = card.TierN1

	if _, err := e.Start(quiz.Config{Tier: card.TierN5, Mode: quiz.ModeTranslation}); err != nil {
		t.Errorf("expected engine to keep its own catalog snapshot, got %v", err)
	}
}

func TestCorrectAnswer(t *testing.T) {
	c := card.Card{
		Term:                 "食べる",
		Reading:              "たべる",
		TranslationPrimary:   "makan",
		TranslationSecondary: "to eat",
	}

	tests := []struct {
		mode    quiz.Mode
		want    string
		wantErr bool
	}{
		{quiz.ModeTranslation, "to eat", false},
		{quiz.ModeReading, "たべる", false},
		{quiz.Mode("kanji"), "", true},
	}

	for _, tt := range tests {
		got, err := quiz.CorrectAnswer(tt.mode, c)
		if tt.wantErr {
			if !errors.Is(err, quiz.ErrUnknownMode) {
				t.Errorf("mode %q: expected ErrUnknownMode, got %v", tt.mode, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("mode %q: expected %q, got %q (%v)", tt.mode, tt.want, got, err)
		}
	}
}
