package http

import (
	"net/http"

	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
	Cookies             CookieConfig
}

type registerRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type verifyOTPRequest struct {
	OTP int `json:"otp" validate:"required,min=100000,max=999999"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleBegin stages a registration and emails the verification code.
//
//	@Summary		Begin registration
//	@Description	Stages a registration under the caller's session and emails a six-digit verification code. No account exists until the code is verified.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration form"
//	@Success		200		{object}	messageResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	httpx.ErrorResponse	"Email or username taken"
//	@Router			/api/v1/users/register [post].
func (h *RegisterHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[registerRequest](w, r)
	if !ok {
		return
	}

	sid := h.Cookies.ensureSessionID(w, r)

	err := h.RegistrationService.Begin(r.Context(), sid, service.RegistrationInput{
		FullName: payload.FullName,
		Email:    payload.Email,
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Message: "verification code sent, check your email",
	})
}

// HandleVerify redeems the emailed code, creating the account and signing
// the user in.
//
//	@Summary		Verify registration code
//	@Description	Redeems the emailed verification code for the caller's session, creates the account and signs it in.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		verifyOTPRequest	true	"Verification code"
//	@Success		200		{object}	authResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Wrong or expired code, or no registration in progress"
//	@Router			/api/v1/users/verify-otp [post].
func (h *RegisterHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[verifyOTPRequest](w, r)
	if !ok {
		return
	}

	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		writeServiceError(w, r, service.ErrNoPendingRegistration)
		return
	}

	user, pair, err := h.RegistrationService.Confirm(r.Context(), cookie.Value, payload.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair)
	h.Cookies.clear(w, sessionCookie)

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		User:         newUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
