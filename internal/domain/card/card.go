package card

import (
	"errors"
	"fmt"
	"strings"
)

type Tier string

const (
	TierN5 Tier = "N5"
	TierN4 Tier = "N4"
	TierN3 Tier = "N3"
	TierN2 Tier = "N2"
	TierN1 Tier = "N1"

	// TierUnassigned marks a card that has not been levelled yet.
	TierUnassigned Tier = ""

	// TierAll is a filter sentinel. It never appears on a card.
	TierAll Tier = "all"
)

var levels = []Tier{TierN5, TierN4, TierN3, TierN2, TierN1}

// Card is a single vocabulary entry. Cards are authored offline and treated
// as read-only by everything in this module except the store.
type Card struct {
	ID                   int64
	Term                 string // word or kanji
	Reading              string // hiragana / katakana
	Romanized            string // may be empty
	TranslationPrimary   string
	TranslationSecondary string // optional, falls back to TranslationPrimary
	Tier                 Tier
}

// Translation returns the secondary translation, or the primary one when the
// secondary is missing.
func (c Card) Translation() string {
	if strings.TrimSpace(c.TranslationSecondary) != "" {
		return c.TranslationSecondary
	}
	return c.TranslationPrimary
}

// Validate checks the fields an authored card must carry.
func (c Card) Validate() error {
	if c.ID <= 0 {
		return errors.New("card id must be positive")
	}
	if strings.TrimSpace(c.Term) == "" {
		return errors.New("card term cannot be empty")
	}
	if strings.TrimSpace(c.Reading) == "" {
		return errors.New("card reading cannot be empty")
	}
	if strings.TrimSpace(c.TranslationPrimary) == "" {
		return errors.New("card primary translation cannot be empty")
	}
	if !c.Tier.Assignable() {
		return fmt.Errorf("invalid tier %q", string(c.Tier))
	}
	return nil
}

// Assignable reports whether t may be stored on a card.
func (t Tier) Assignable() bool {
	if t == TierUnassigned {
		return true
	}
	for _, l := range levels {
		if t == l {
			return true
		}
	}
	return false
}

// Matches reports whether a card with tier other passes the filter t.
func (t Tier) Matches(other Tier) bool {
	return t == TierAll || t == other
}

func (t Tier) String() string {
	if t == TierUnassigned {
		return "unassigned"
	}
	return string(t)
}

// ParseTier accepts "N5".."N1" in any case, "all" and "unassigned".
func ParseTier(s string) (Tier, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "all":
		return TierAll, nil
	case "unassigned":
		return TierUnassigned, nil
	}
	t := Tier(strings.ToUpper(v))
	for _, l := range levels {
		if t == l {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Levels returns the assignable levels from easiest to hardest.
func Levels() []Tier {
	out := make([]Tier, len(levels))
	copy(out, levels)
	return out
}
