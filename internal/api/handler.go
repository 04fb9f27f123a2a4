// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/will1001/flashcard-japan/internal/domain/quiz"
	"github.com/will1001/flashcard-japan/internal/service"
	"github.com/will1001/flashcard-japan/internal/store"
)

// maxBodyBytes bounds request bodies; catalog imports are the largest.
const maxBodyBytes = 8 << 20

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store   *store.SQLStore
	quizzes *service.QuizService
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLStore, quizzes *service.QuizService, logger *slog.Logger) *Handler {
	return &Handler{
		store:   s,
		quizzes: quizzes,
		logger:  logger,
	}
}

type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. Returns false if a response
// was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleQuizError maps engine and service errors to HTTP responses.
func (h *Handler) handleQuizError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrQuizNotFound):
		respondError(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, quiz.ErrNotEnoughCards),
		errors.Is(err, quiz.ErrEmptyQuiz),
		errors.Is(err, quiz.ErrUnknownMode),
		errors.Is(err, quiz.ErrNegativeCount):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, service.ErrQuizClosed):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTooManyQuizzes):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("quiz error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
