package http

import (
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

// userResponse is the public view of an account. The hash, refresh token
// and reset state never leave the server.
type userResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

type UsersHandler struct {
	UserService *service.UserService
	QuizService *service.QuizService
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// HandleCurrentUser returns the signed-in account.
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	userResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/api/v1/users/current-user [get].
func (h *UsersHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	u, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(u))
}

// HandleUpdateAccount updates the display name and email.
//
//	@Summary		Update account
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		updateAccountRequest	true	"New details"
//	@Success		200		{object}	userResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Email already taken"
//	@Router			/api/v1/users/update-account [patch].
func (h *UsersHandler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[updateAccountRequest](w, r)
	if !ok {
		return
	}

	userID := httpx.UserIDFromContext(r.Context())

	u, err := h.UserService.UpdateAccount(r.Context(), userID, payload.FullName, payload.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(u))
}

type attemptSummary struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quizId"`
	QuizTitle string    `json:"quizTitle"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type historyResponse struct {
	Attempts []attemptSummary `json:"attempts"`
}

// HandleHistory lists the signed-in user's quiz attempts.
//
//	@Summary		Attempt history
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	historyResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/api/v1/users/history [get].
func (h *UsersHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	attempts, err := h.QuizService.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summaries := make([]attemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, attemptSummary{
			ID:        a.ID,
			QuizID:    a.QuizID,
			QuizTitle: a.QuizTitle,
			Score:     a.Score,
			Total:     a.Total,
			CreatedAt: a.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, historyResponse{Attempts: summaries})
}
