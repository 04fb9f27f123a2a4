package card_test

import (
	"testing"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

func sample(id int64, tier card.Tier) card.Card {
	return card.Card{
		ID:                 id,
		Term:               "水",
		Reading:            "みず",
		Romanized:          "mizu",
		TranslationPrimary: "air",
		Tier:               tier,
	}
}

func TestTranslation_FallsBackToPrimary(t *testing.T) {
	c := sample(1, card.TierN5)

	if got := c.Translation(); got != "air" {
		t.Errorf("expected fallback %q, got %q", "air", got)
	}

	c.TranslationSecondary = "   "
	if got := c.Translation(); got != "air" {
		t.Errorf("expected fallback for blank secondary, got %q", got)
	}

	c.TranslationSecondary = "water"
	if got := c.Translation(); got != "water" {
		t.Errorf("expected %q, got %q", "water", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*card.Card)
		wantErr bool
	}{
		{"valid", func(c *card.Card) {}, false},
		{"unassigned tier is valid", func(c *card.Card) { c.Tier = card.TierUnassigned }, false},
		{"zero id", func(c *card.Card) { c.ID = 0 }, true},
		{"empty term", func(c *card.Card) { c.Term = "" }, true},
		{"empty reading", func(c *card.Card) { c.Reading = " " }, true},
		{"empty translation", func(c *card.Card) { c.TranslationPrimary = "" }, true},
		{"all sentinel is not a tier", func(c *card.Card) { c.Tier = card.TierAll }, true},
		{"unknown tier", func(c *card.Card) { c.Tier = "N9" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sample(1, card.TierN5)
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    card.Tier
		wantErr bool
	}{
		{"N5", card.TierN5, false},
		{"n4", card.TierN4, false},
		{" N3 ", card.TierN3, false},
		{"all", card.TierAll, false},
		{"ALL", card.TierAll, false},
		{"unassigned", card.TierUnassigned, false},
		{"", "", true},
		{"N6", "", true},
	}

	for _, tt := range tests {
		got, err := card.ParseTier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterByTier(t *testing.T) {
	cards := []card.Card{
		sample(1, card.TierN5),
		sample(2, card.TierN4),
		sample(3, card.TierN5),
		sample(4, card.TierUnassigned),
	}

	n5 := card.FilterByTier(cards, card.TierN5)
	if len(n5) != 2 || n5[0].ID != 1 || n5[1].ID != 3 {
		t.Errorf("expected cards 1 and 3, got %+v", n5)
	}

	unassigned := card.FilterByTier(cards, card.TierUnassigned)
	if len(unassigned) != 1 || unassigned[0].ID != 4 {
		t.Errorf("expected card 4, got %+v", unassigned)
	}

	if all := card.FilterByTier(cards, card.TierAll); len(all) != 4 {
		t.Errorf("expected all 4 cards, got %d", len(all))
	}

	if none := card.FilterByTier(cards, card.TierN1); len(none) != 0 {
		t.Errorf("expected no N1 cards, got %d", len(none))
	}
}

func TestValidateCatalog_DuplicateID(t *testing.T) {
	cards := []card.Card{sample(1, card.TierN5), sample(2, card.TierN5), sample(1, card.TierN4)}

	if err := card.ValidateCatalog(cards); err == nil {
		t.Error("expected error for duplicate id, got nil")
	}

	if err := card.ValidateCatalog(cards[:2]); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTierString(t *testing.T) {
	if card.TierUnassigned.String() != "unassigned" {
		t.Errorf("expected %q, got %q", "unassigned", card.TierUnassigned.String())
	}
	if card.TierN5.String() != "N5" {
		t.Errorf("expected %q, got %q", "N5", card.TierN5.String())
	}
}
