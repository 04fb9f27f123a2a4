package api

import (
	"net/http"
	"strconv"
	"time"
)

const defaultResultsLimit = 20

type StoredResultResponse struct {
	QuizID     string `json:"quiz_id" example:"x9y8z7w6v5u4t3s2"`
	Tier       string `json:"tier" example:"N5"`
	Mode       string `json:"mode" example:"reading"`
	Total      int    `json:"total" example:"10"`
	Correct    int    `json:"correct" example:"8"`
	Wrong      int    `json:"wrong" example:"2"`
	Percentage int    `json:"percentage" example:"80"`
	EndedEarly bool   `json:"ended_early"`
	FinishedAt string `json:"finished_at" example:"2026-01-02T03:04:05Z"`
}

// GET /results?limit=20
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := h.store.ListResults(ctx, limit)
	if h.handleStoreError(w, err, "results") {
		return
	}

	response := make([]StoredResultResponse, len(results))
	for i, res := range results {
		response[i] = StoredResultResponse{
			QuizID:     res.QuizID,
			Tier:       res.Tier.String(),
			Mode:       res.Mode,
			Total:      res.Total,
			Correct:    res.Correct,
			Wrong:      res.Wrong,
			Percentage: res.Percentage,
			EndedEarly: res.EndedEarly,
			FinishedAt: res.FinishedAt.UTC().Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, response)
}
