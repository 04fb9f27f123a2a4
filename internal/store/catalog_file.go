package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// CardRecord is the on-disk JSON shape of a card.
type CardRecord struct {
	ID                   int64  `json:"id"`
	Term                 string `json:"term"`
	Reading              string `json:"reading"`
	Romanized            string `json:"romanized,omitempty"`
	TranslationPrimary   string `json:"translation_primary"`
	TranslationSecondary string `json:"translation_secondary,omitempty"`
	Tier                 string `json:"tier,omitempty"`
}

func (r CardRecord) Card() card.Card {
	return card.Card{
		ID:                   r.ID,
		Term:                 r.Term,
		Reading:              r.Reading,
		Romanized:            r.Romanized,
		TranslationPrimary:   r.TranslationPrimary,
		TranslationSecondary: r.TranslationSecondary,
		Tier:                 card.Tier(r.Tier),
	}
}

func RecordFromCard(c card.Card) CardRecord {
	return CardRecord{
		ID:                   c.ID,
		Term:                 c.Term,
		Reading:              c.Reading,
		Romanized:            c.Romanized,
		TranslationPrimary:   c.TranslationPrimary,
		TranslationSecondary: c.TranslationSecondary,
		Tier:                 string(c.Tier),
	}
}

// DecodeCatalog reads a JSON array of card records and validates it.
func DecodeCatalog(r io.Reader) ([]card.Card, error) {
	var records []CardRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cards := make([]card.Card, len(records))
	for i, rec := range records {
		cards[i] = rec.Card()
	}
	if err := card.ValidateCatalog(cards); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cards, nil
}

// LoadCatalogFile reads the catalog from a JSON file.
func LoadCatalogFile(path string) ([]card.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCatalog(f)
}
