package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/quizforge/quizforge/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthGateMissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.session().get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "missing_token")
}

func TestAuthGateInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	s := env.session()
	s.bearer = "not-a-token"

	resp := s.get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "invalid_token")
}

func TestAuthGateWrongKey(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedAccount("alice@example.com", "alice", "password123", true)

	other := jwtx.NewHS256([]byte("some-other-secret"), "test-issuer")
	forged, err := other.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, time.Minute, "test-issuer", time.Now()))
	require.NoError(t, err)

	s := env.session()
	s.bearer = forged

	resp := s.get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "invalid_token")
}

func TestAuthGateExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedAccount("alice@example.com", "alice", "password123", true)

	expired, err := env.tokens.AccessCodec.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, time.Minute, "test-issuer",
		time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	s := env.session()
	s.bearer = expired

	resp := s.get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "token_expired")
}

func TestAuthGateBearerHeader(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedAccount("alice@example.com", "alice", "password123", true)

	access, err := env.tokens.AccessCodec.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, time.Minute, "test-issuer", time.Now()))
	require.NoError(t, err)

	s := env.session()
	s.bearer = access

	resp := s.get("/api/v1/users/current-user")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := decodeBody[userResponse](t, resp)
	require.Equal(t, u.ID, me.ID)
}

func TestAuthGateUnverifiedAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedAccount("alice@example.com", "alice", "password123", false)

	access, err := env.tokens.AccessCodec.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, time.Minute, "test-issuer", time.Now()))
	require.NoError(t, err)

	s := env.session()
	s.bearer = access

	resp := s.get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "account_unverified")
}

func TestAuthGateDeletedAccount(t *testing.T) {
	env := newTestEnv(t)

	access, err := env.tokens.AccessCodec.Sign(jwtx.NewAccessClaims(
		"no-such-user", "ghost@example.com", "ghost", "Ghost", time.Minute,
		"test-issuer", time.Now()))
	require.NoError(t, err)

	s := env.session()
	s.bearer = access

	resp := s.get("/api/v1/users/current-user")
	requireErrorResponse(t, resp, http.StatusUnauthorized, "invalid_token")
}
