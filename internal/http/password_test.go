package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	s, _ := env.signup("Jane Doe", "jane@example.com", "janedoe", "oldpassword")

	// Wrong current password is a client mistake, not an auth failure.
	resp := s.post("/api/v1/users/change-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newpassword",
	})
	requireErrorResponse(t, resp, http.StatusBadRequest, "wrong_password")

	resp = s.post("/api/v1/users/change-password", map[string]string{
		"currentPassword": "oldpassword",
		"newPassword":     "newpassword",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.session().post("/api/v1/users/login", loginForm{Identifier: "janedoe", Password: "newpassword"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.session().post("/api/v1/users/forgot-password", map[string]string{
		"email": "nobody@example.com",
	})
	requireErrorResponse(t, resp, http.StatusNotFound, "unknown_email")
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount("alice@example.com", "alice", "oldpassword", true)

	s := env.session()
	resp := s.post("/api/v1/users/forgot-password", map[string]string{
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The emailed link ends in the plaintext token.
	link := env.notifier.lastResetURL(t)
	token := link[strings.LastIndex(link, "/")+1:]
	require.NotEmpty(t, token)

	resp = s.post("/api/v1/users/reset-password/"+token, map[string]string{
		"password": "newpassword",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The token is single use.
	resp = s.post("/api/v1/users/reset-password/"+token, map[string]string{
		"password": "anotherpassword",
	})
	requireErrorResponse(t, resp, http.StatusBadRequest, "invalid_reset_token")

	// Only the new password logs in.
	resp = env.session().post("/api/v1/users/login", loginForm{Identifier: "alice", Password: "oldpassword"})
	requireErrorResponse(t, resp, http.StatusUnauthorized, "invalid_credentials")

	resp = env.session().post("/api/v1/users/login", loginForm{Identifier: "alice", Password: "newpassword"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestResetWithBogusToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.session().post("/api/v1/users/reset-password/abcdef0123456789", map[string]string{
		"password": "newpassword",
	})
	requireErrorResponse(t, resp, http.StatusBadRequest, "invalid_reset_token")
}
