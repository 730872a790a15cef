package http

import (
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type AttemptsHandler struct {
	QuizService *service.QuizService
}

type attemptRequest struct {
	Answers []domain.Answer `json:"answers" validate:"required,dive"`
}

type attemptResponse struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quizId"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type attemptResultsResponse struct {
	Attempt   attemptResponse         `json:"attempt"`
	QuizTitle string                  `json:"quizTitle"`
	Results   []domain.QuestionResult `json:"results"`
}

func newAttemptResponse(a domain.Attempt) attemptResponse {
	return attemptResponse{
		ID:        a.ID,
		QuizID:    a.QuizID,
		Score:     a.Score,
		Total:     a.Total,
		CreatedAt: a.CreatedAt,
	}
}

// HandleSubmit scores and records an attempt at a quiz.
//
//	@Summary		Attempt quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			quizID	path		string			true	"Quiz id"
//	@Param			body	body		attemptRequest	true	"Selected answers"
//	@Success		200		{object}	attemptResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Answer references an unknown question"
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/v1/quizzes/{quizID}/attempt [post].
func (h *AttemptsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[attemptRequest](w, r)
	if !ok {
		return
	}

	userID := httpx.UserIDFromContext(r.Context())

	attempt, err := h.QuizService.SubmitAttempt(r.Context(), r.PathValue("quizID"), userID, payload.Answers)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAttemptResponse(attempt))
}

// HandleResults returns the per-question breakdown of an attempt. Only the
// taker or the quiz owner may view it.
//
//	@Summary		Attempt results
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			attemptID	path		string	true	"Attempt id"
//	@Success		200			{object}	attemptResultsResponse
//	@Failure		403			{object}	httpx.ErrorResponse	"Not the taker or quiz owner"
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Router			/api/v1/quizzes/attempt/{attemptID}/results [get].
func (h *AttemptsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	attempt, results, err := h.QuizService.AttemptResults(r.Context(), r.PathValue("attemptID"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, attemptResultsResponse{
		Attempt:   newAttemptResponse(attempt),
		QuizTitle: attempt.QuizTitle,
		Results:   results,
	})
}

type leaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// HandleLeaderboard returns the quiz's top scores.
//
//	@Summary		Quiz leaderboard
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			quizID	path		string	true	"Quiz id"
//	@Success		200		{object}	leaderboardResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/v1/quizzes/{quizID}/leaderboard [get].
func (h *AttemptsHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.QuizService.Leaderboard(r.Context(), r.PathValue("quizID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, leaderboardResponse{Entries: entries})
}

// HandleUserAttempts lists the caller's attempts (same data as the account
// history endpoint, kept under /quizzes for the quiz screens).
//
//	@Summary		Own attempts
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	attemptResponse
//	@Router			/api/v1/quizzes/user/attempts [get].
func (h *AttemptsHandler) HandleUserAttempts(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	attempts, err := h.QuizService.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	responses := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		responses = append(responses, newAttemptResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, responses)
}
