package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/httpx"
	"github.com/quizforge/quizforge/pkg/jwtx"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// accessTokenFromRequest pulls the access token from the accessToken cookie
// or, failing that, an Authorization bearer header.
func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// AuthGate verifies the access token and loads the account before letting
// the request through. Every failure is a 401; the error code narrows the
// reason enough for the frontend to decide between refresh and re-login
// without leaking account state.
func (rt *Router) AuthGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := slogx.FromContext(ctx)

		token := accessTokenFromRequest(r)
		if token == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "missing_token",
				"no access token provided")
			return
		}

		claims, err := rt.accessVerifier.Verify(token)
		if err != nil {
			if errors.Is(err, jwtx.ErrExpired) {
				httpx.WriteError(w, http.StatusUnauthorized, "token_expired",
					"access token has expired")
				return
			}
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token",
				"access token is invalid")
			return
		}

		u, err := rt.store.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid_token",
					"account no longer exists")
				return
			}
			l.Error("auth gate failed to load account", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
			return
		}

		if !u.Verified {
			httpx.WriteError(w, http.StatusUnauthorized, "account_unverified",
				"account has not completed email verification")
			return
		}

		ctx = context.WithValue(ctx, httpx.CtxKeyUserID, u.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
