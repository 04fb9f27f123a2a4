package card

import "fmt"

// FilterByTier returns the cards matching tier, in catalog order.
func FilterByTier(cards []Card, tier Tier) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if tier.Matches(c.Tier) {
			out = append(out, c)
		}
	}
	return out
}

// CheckUniqueIDs returns an error for the first id that appears twice.
func CheckUniqueIDs(cards []Card) error {
	seen := make(map[int64]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate card id %d", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// ValidateCatalog validates every card and the uniqueness of their ids.
func ValidateCatalog(cards []Card) error {
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %d (index %d): %w", c.ID, i, err)
		}
	}
	return CheckUniqueIDs(cards)
}
