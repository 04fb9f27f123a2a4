package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// ── Request / Response types ────────────────────────────────────────────────

type CardRequest struct {
	Term                 string `json:"term" example:"食べる"`
	Reading              string `json:"reading" example:"たべる"`
	Romanized            string `json:"romanized,omitempty" example:"taberu"`
	TranslationPrimary   string `json:"translation_primary" example:"makan"`
	TranslationSecondary string `json:"translation_secondary,omitempty" example:"to eat"`
	Tier                 string `json:"tier,omitempty" example:"N5"`
}

func (r *CardRequest) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return errors.New("term is required")
	}
	if strings.TrimSpace(r.Reading) == "" {
		return errors.New("reading is required")
	}
	if strings.TrimSpace(r.TranslationPrimary) == "" {
		return errors.New("translation_primary is required")
	}
	if _, err := parseCardTier(r.Tier); err != nil {
		return err
	}
	return nil
}

func (r *CardRequest) toCard(id int64) card.Card {
	tier, _ := parseCardTier(r.Tier)
	return card.Card{
		ID:                   id,
		Term:                 strings.TrimSpace(r.Term),
		Reading:              strings.TrimSpace(r.Reading),
		Romanized:            strings.TrimSpace(r.Romanized),
		TranslationPrimary:   strings.TrimSpace(r.TranslationPrimary),
		TranslationSecondary: strings.TrimSpace(r.TranslationSecondary),
		Tier:                 tier,
	}
}

type CardResponse struct {
	ID                   int64  `json:"id" example:"12"`
	Term                 string `json:"term" example:"食べる"`
	Reading              string `json:"reading" example:"たべる"`
	Romanized            string `json:"romanized" example:"taberu"`
	TranslationPrimary   string `json:"translation_primary" example:"makan"`
	TranslationSecondary string `json:"translation_secondary" example:"to eat"`
	Tier                 string `json:"tier" example:"N5"`
}

func toCardResponse(c card.Card) CardResponse {
	return CardResponse{
		ID:                   c.ID,
		Term:                 c.Term,
		Reading:              c.Reading,
		Romanized:            c.Romanized,
		TranslationPrimary:   c.TranslationPrimary,
		TranslationSecondary: c.TranslationSecondary,
		Tier:                 c.Tier.String(),
	}
}

// parseCardTier accepts the tiers a card may carry. Empty means unassigned.
func parseCardTier(s string) (card.Tier, error) {
	if strings.TrimSpace(s) == "" {
		return card.TierUnassigned, nil
	}
	t, err := card.ParseTier(s)
	if err != nil {
		return "", err
	}
	if t == card.TierAll {
		return "", errors.New(`tier "all" cannot be assigned to a card`)
	}
	return t, nil
}

// parseTierFilter reads a tier query value. Empty means every tier.
func parseTierFilter(s string) (card.Tier, error) {
	if strings.TrimSpace(s) == "" {
		return card.TierAll, nil
	}
	return card.ParseTier(s)
}

func parseCardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("cardID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return 0, false
	}
	return id, true
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /cards?tier=N5
func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tier, err := parseTierFilter(r.URL.Query().Get("tier"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := h.store.ListCardsByTier(ctx, tier)
	if h.handleStoreError(w, err, "cards") {
		return
	}

	response := make([]CardResponse, len(cards))
	for i, c := range cards {
		response[i] = toCardResponse(c)
	}
	respondJSON(w, http.StatusOK, response)
}

// POST /cards
func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.store.CreateCard(ctx, req.toCard(0))
	if h.handleStoreError(w, err, "card") {
		return
	}

	respondJSON(w, http.StatusCreated, toCardResponse(created))
}

// GET /cards/{cardID}
func (h *Handler) getCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardID, ok := parseCardID(w, r)
	if !ok {
		return
	}

	c, err := h.store.GetCard(ctx, cardID)
	if h.handleStoreError(w, err, "card") {
		return
	}

	respondJSON(w, http.StatusOK, toCardResponse(c))
}

// PUT /cards/{cardID}
func (h *Handler) updateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardID, ok := parseCardID(w, r)
	if !ok {
		return
	}

	if _, err := h.store.GetCard(ctx, cardID); h.handleStoreError(w, err, "card") {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated := req.toCard(cardID)
	if h.handleStoreError(w, h.store.SaveCard(ctx, updated), "card") {
		return
	}

	respondJSON(w, http.StatusOK, toCardResponse(updated))
}

// DELETE /cards/{cardID}
func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardID, ok := parseCardID(w, r)
	if !ok {
		return
	}

	if h.handleStoreError(w, h.store.DeleteCard(ctx, cardID), "card") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
