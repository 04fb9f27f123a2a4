package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Cards
	mux.HandleFunc("GET /cards", h.listCards)
	mux.HandleFunc("POST /cards", h.createCard)
	mux.HandleFunc("GET /cards/{cardID}", h.getCard)
	mux.HandleFunc("PUT /cards/{cardID}", h.updateCard)
	mux.HandleFunc("DELETE /cards/{cardID}", h.deleteCard)

	// Quizzes
	mux.HandleFunc("POST /quizzes", h.startQuiz)
	mux.HandleFunc("GET /quizzes/{quizID}/question", h.currentQuestion)
	mux.HandleFunc("POST /quizzes/{quizID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /quizzes/{quizID}/next", h.nextQuestion)
	mux.HandleFunc("POST /quizzes/{quizID}/end", h.endQuiz)
	mux.HandleFunc("GET /quizzes/{quizID}/results", h.quizResults)
	mux.HandleFunc("DELETE /quizzes/{quizID}", h.discardQuiz)

	// History
	mux.HandleFunc("GET /results", h.listResults)

	// Export / Import
	mux.HandleFunc("GET /export", h.exportCatalog)
	mux.HandleFunc("POST /import", h.importCatalog)
}
