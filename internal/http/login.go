package http

import (
	"net/http"

	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type LoginHandler struct {
	UserService *service.UserService
	Cookies     CookieConfig
}

type loginRequest struct {
	// Identifier is the email or username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// authResponse is returned by login and verify-otp. Tokens also travel as
// httpOnly cookies; the body copy serves non-browser clients.
type authResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ServeHTTP handles password login.
//
//	@Summary		Log in
//	@Description	Authenticates by email or username plus password and issues a fresh token pair, displacing any previous session.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	authResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"Wrong identifier or password"
//	@Router			/api/v1/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeValid[loginRequest](w, r)
	if !ok {
		return
	}

	user, pair, err := h.UserService.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair)

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		User:         newUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type LogoutHandler struct {
	UserService *service.UserService
	Cookies     CookieConfig
}

// ServeHTTP handles logout: clears the stored refresh token and both token
// cookies.
//
//	@Summary		Log out
//	@Description	Invalidates the server-side session and clears the token cookies.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	messageResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/api/v1/users/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	if err := h.UserService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.clearTokenCookies(w)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}
