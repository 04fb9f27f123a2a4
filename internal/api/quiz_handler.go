package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/will1001/flashcard-japan/internal/domain/quiz"
	"github.com/will1001/flashcard-japan/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartQuizRequest struct {
	Tier  string `json:"tier,omitempty" example:"N5"`
	Count int    `json:"count" example:"10"`
	Mode  string `json:"mode,omitempty" example:"translation"`
}

func (r *StartQuizRequest) Validate() error {
	_, err := r.config()
	return err
}

func (r *StartQuizRequest) config() (quiz.Config, error) {
	cfg := quiz.DefaultConfig()

	tier, err := parseTierFilter(r.Tier)
	if err != nil {
		return quiz.Config{}, err
	}
	cfg.Tier = tier

	if r.Count < 0 {
		return quiz.Config{}, errors.New("count cannot be negative")
	}
	cfg.Count = r.Count

	if strings.TrimSpace(r.Mode) != "" {
		mode, err := quiz.ParseMode(r.Mode)
		if err != nil {
			return quiz.Config{}, err
		}
		cfg.Mode = mode
	}
	return cfg, nil
}

// QuestionResponse never carries the correct index.
type QuestionResponse struct {
	CardID      int64    `json:"card_id" example:"12"`
	Term        string   `json:"term" example:"食べる"`
	Reading     string   `json:"reading,omitempty" example:"たべる"`
	Romanized   string   `json:"romanized,omitempty" example:"taberu"`
	Translation string   `json:"translation,omitempty" example:"to eat"`
	Mode        string   `json:"mode" example:"translation"`
	Options     []string `json:"options"`
	OptionHints []string `json:"option_hints,omitempty"`
	Position    int      `json:"position" example:"0"`
	Total       int      `json:"total" example:"10"`
}

func toQuestionResponse(q *quiz.Question, position, total int) *QuestionResponse {
	resp := &QuestionResponse{
		CardID:      q.Card.ID,
		Term:        q.Card.Term,
		Mode:        string(q.Mode),
		Options:     q.Options,
		OptionHints: q.OptionHints,
		Position:    position,
		Total:       total,
	}
	// Show the side of the card that is not being asked.
	switch q.Mode {
	case quiz.ModeTranslation:
		resp.Reading = q.Card.Reading
		resp.Romanized = q.Card.Romanized
	case quiz.ModeReading:
		resp.Translation = q.Card.Translation()
	}
	return resp
}

type StartQuizResponse struct {
	ID       string            `json:"id" example:"x9y8z7w6v5u4t3s2"`
	Total    int               `json:"total" example:"10"`
	Question *QuestionResponse `json:"question"`
}

type QuestionStateResponse struct {
	Finished bool              `json:"finished"`
	Question *QuestionResponse `json:"question,omitempty"`
}

type AnswerRequest struct {
	SelectedIndex *int `json:"selected_index" example:"2"`
}

func (r *AnswerRequest) Validate() error {
	if r.SelectedIndex == nil {
		return errors.New("selected_index is required")
	}
	return nil
}

type AnswerResponse struct {
	Correct      bool `json:"correct"`
	CorrectIndex int  `json:"correct_index" example:"1"`
	Score        int  `json:"score" example:"3"`
	Answered     int  `json:"answered" example:"4"`
}

type HistoryResponse struct {
	CardID        int64  `json:"card_id"`
	Term          string `json:"term"`
	Selected      int    `json:"selected"`
	CorrectIndex  int    `json:"correct_index"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

type QuizResultsResponse struct {
	QuizID     string            `json:"quiz_id"`
	Finished   bool              `json:"finished"`
	Total      int               `json:"total"`
	Correct    int               `json:"correct"`
	Wrong      int               `json:"wrong"`
	Percentage int               `json:"percentage"`
	History    []HistoryResponse `json:"history"`
}

func toResultsResponse(quizID string, res quiz.Results, finished bool) QuizResultsResponse {
	history := make([]HistoryResponse, len(res.History))
	for i, h := range res.History {
		history[i] = HistoryResponse{
			CardID:        h.Question.Card.ID,
			Term:          h.Question.Card.Term,
			Selected:      h.Selected,
			CorrectIndex:  h.Question.CorrectIndex,
			CorrectAnswer: h.Question.Answer(),
			Correct:       h.Correct,
		}
	}
	return QuizResultsResponse{
		QuizID:     quizID,
		Finished:   finished,
		Total:      res.Total,
		Correct:    res.Correct,
		Wrong:      res.Wrong,
		Percentage: res.Percentage,
		History:    history,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /quizzes
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req StartQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	cfg, _ := req.config()

	quizID, first, err := h.quizzes.Start(ctx, cfg)
	if h.handleQuizError(w, err) {
		return
	}

	state, err := h.quizzes.Current(quizID)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, StartQuizResponse{
		ID:       quizID,
		Total:    state.Total,
		Question: toQuestionResponse(first, 0, state.Total),
	})
}

// GET /quizzes/{quizID}/question
func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	state, err := h.quizzes.Current(quizID)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, questionState(state))
}

// POST /quizzes/{quizID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outcome, err := h.quizzes.Answer(quizID, *req.SelectedIndex)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, AnswerResponse{
		Correct:      outcome.Correct,
		CorrectIndex: outcome.CorrectIndex,
		Score:        outcome.Score,
		Answered:     outcome.Answered,
	})
}

// POST /quizzes/{quizID}/next
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	quizID := r.PathValue("quizID")

	if _, err := h.quizzes.Next(ctx, quizID); h.handleQuizError(w, err) {
		return
	}

	state, err := h.quizzes.Current(quizID)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, questionState(state))
}

// POST /quizzes/{quizID}/end
func (h *Handler) endQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	quizID := r.PathValue("quizID")

	res, err := h.quizzes.End(ctx, quizID)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, toResultsResponse(quizID, res, true))
}

// GET /quizzes/{quizID}/results
func (h *Handler) quizResults(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	res, finished, err := h.quizzes.Results(quizID)
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, toResultsResponse(quizID, res, finished))
}

// DELETE /quizzes/{quizID}
func (h *Handler) discardQuiz(w http.ResponseWriter, r *http.Request) {
	if h.handleQuizError(w, h.quizzes.Discard(r.PathValue("quizID"))) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func questionState(state service.QuizState) QuestionStateResponse {
	if state.Question == nil {
		return QuestionStateResponse{Finished: true}
	}
	return QuestionStateResponse{
		Finished: false,
		Question: toQuestionResponse(state.Question, state.Position, state.Total),
	}
}
