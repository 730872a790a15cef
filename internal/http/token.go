package http

import (
	"encoding/json"
	"net/http"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/pkg/httpx"
)

type RefreshHandler struct {
	TokenService *service.TokenService
	Cookies      CookieConfig
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshTokenFromRequest reads the refresh token from the cookie or, for
// non-browser clients, the request body.
func refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var payload refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
		return payload.RefreshToken
	}
	return ""
}

// ServeHTTP rotates the refresh token and issues a new pair.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a valid refresh token for a new access/refresh pair. The presented token is invalidated; replaying it invalidates the whole session.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	false	"Refresh token (cookie takes precedence)"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid, expired, rotated or logged-out token"
//	@Router			/api/v1/users/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	presented := refreshTokenFromRequest(r)
	if presented == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing_token",
			"no refresh token provided")
		return
	}

	pair, err := h.TokenService.Rotate(r.Context(), presented)
	if err != nil {
		// A rejected rotation means the session is dead either way.
		h.Cookies.clearTokenCookies(w)
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokenCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, domain.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
