package http

import (
	"errors"
	"net/http"

	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type PasswordHandler struct {
	ResetService *service.PasswordResetService
	UserService  *service.UserService
	Cookies      CookieConfig
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// HandleForgot issues a reset token and emails the link.
//
//	@Summary		Request password reset
//	@Description	Emails a single-use reset link to the account. Responds 404 when no account has that email.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		forgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	messageResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown email"
//	@Failure		502		{object}	httpx.ErrorResponse	"Email delivery failed"
//	@Router			/api/v1/users/forgot-password [post].
func (h *PasswordHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[forgotPasswordRequest](w, r)
	if !ok {
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), payload.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Message: "reset link sent, check your email",
	})
}

// HandleReset redeems a reset token from the URL path and sets the new
// password.
//
//	@Summary		Complete password reset
//	@Description	Redeems the emailed reset token and sets the new password. The token works exactly once; all sessions are signed out.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string					true	"Reset token from the emailed link"
//	@Param			body	body		resetPasswordRequest	true	"New password"
//	@Success		200		{object}	messageResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid or expired token"
//	@Router			/api/v1/users/reset-password/{token} [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeServiceError(w, r, service.ErrInvalidResetToken)
		return
	}

	payload, ok := decodeValid[resetPasswordRequest](w, r)
	if !ok {
		return
	}

	if err := h.ResetService.CompleteReset(r.Context(), token, payload.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Message: "password updated, log in with your new password",
	})
}

// HandleChange changes the password for the signed-in user.
//
//	@Summary		Change password
//	@Description	Verifies the current password before setting the new one.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		changePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	messageResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Wrong current password"
//	@Router			/api/v1/users/change-password [post].
func (h *PasswordHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[changePasswordRequest](w, r)
	if !ok {
		return
	}

	userID := httpx.UserIDFromContext(r.Context())

	err := h.UserService.ChangePassword(r.Context(), userID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		// Wrong current password is a client mistake, not an auth failure:
		// the caller already holds a valid access token.
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusBadRequest, "wrong_password",
				"current password is incorrect")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "password changed"})
}
