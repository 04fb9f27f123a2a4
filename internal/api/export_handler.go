package api

import (
	"net/http"
	"time"

	"github.com/will1001/flashcard-japan/internal/domain/card"
	"github.com/will1001/flashcard-japan/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportData struct {
	Version    string             `json:"version"`
	ExportedAt string             `json:"exported_at"`
	Cards      []store.CardRecord `json:"cards"`
}

type ImportResult struct {
	CardsImported int `json:"cards_imported"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /export
func (h *Handler) exportCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cards, err := h.store.ListCards(ctx)
	if h.handleStoreError(w, err, "cards") {
		return
	}

	data := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Cards:      make([]store.CardRecord, len(cards)),
	}
	for i, c := range cards {
		data.Cards[i] = store.RecordFromCard(c)
	}

	w.Header().Set("Content-Disposition", "attachment; filename=flashcards-export.json")
	respondJSON(w, http.StatusOK, data)
}

// POST /import
func (h *Handler) importCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data ExportData
	if !decodeJSON(w, r, &data) {
		return
	}

	cards := make([]card.Card, len(data.Cards))
	for i, rec := range data.Cards {
		cards[i] = rec.Card()
	}
	if err := card.ValidateCatalog(cards); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.store.ImportCards(ctx, cards)
	if h.handleStoreError(w, err, "cards") {
		return
	}

	h.logger.Info("catalog imported", "cards", n)
	respondJSON(w, http.StatusOK, ImportResult{CardsImported: n})
}
