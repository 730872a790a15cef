package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLivez(t *testing.T) {
	env := newTestEnv(t)

	resp := env.session().get("/livez")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[healthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)
	require.Nil(t, health.Checks)
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	resp := env.session().get("/readyz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[healthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestReadyzDegraded(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Close())

	resp := env.session().get("/readyz")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	health := decodeBody[healthResponse](t, resp)
	require.Equal(t, "degraded", health.Status)
}
