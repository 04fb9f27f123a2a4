package quiz

import "github.com/will1001/flashcard-japan/internal/domain/card"

// Config holds the parameters of one quiz run.
type Config struct {
	Tier  card.Tier // card.TierAll = every tier
	Count int       // 0 = every eligible card
	Mode  Mode
}

// DefaultConfig returns a config with no constraints in translation mode.
func DefaultConfig() Config {
	return Config{
		Tier:  card.TierAll,
		Count: 0,
		Mode:  ModeTranslation,
	}
}
