package http

import (
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/pkg/idx"
)

// Cookie names. The frontend reads none of them; everything is httpOnly.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
	sessionCookie      = "sid"
)

// CookieConfig controls the Secure/SameSite attributes, which differ
// between local development (plain http) and deployment (https behind a
// proxy).
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c CookieConfig) sameSite() http.SameSite {
	if c.SameSite == 0 {
		return http.SameSiteLaxMode
	}
	return c.SameSite
}

func (c CookieConfig) set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

func (c CookieConfig) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

// setTokenCookies stores the freshly issued pair on the client.
func (c CookieConfig) setTokenCookies(w http.ResponseWriter, pair domain.TokenPair) {
	c.set(w, accessTokenCookie, pair.AccessToken, c.AccessTTL)
	c.set(w, refreshTokenCookie, pair.RefreshToken, c.RefreshTTL)
}

// clearTokenCookies removes both token cookies (logout, failed rotation).
func (c CookieConfig) clearTokenCookies(w http.ResponseWriter) {
	c.clear(w, accessTokenCookie)
	c.clear(w, refreshTokenCookie)
}

// ensureSessionID returns the registration session id from the sid cookie,
// minting and setting one when the browser doesn't have one yet. The id ties
// the verify-otp call back to the staged registration.
func (c CookieConfig) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := idx.New().String()
	c.set(w, sessionCookie, sid, 30*time.Minute)
	return sid
}
