package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("produces hex of the requested size", func(t *testing.T) {
		tok, err := GenerateToken(ResetTokenSize)
		require.NoError(t, err)
		require.Len(t, tok, ResetTokenSize*2)

		_, err = hex.DecodeString(tok)
		require.NoError(t, err)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)
		_, err = GenerateToken(-1)
		require.Error(t, err)
	})

	t.Run("successive tokens differ", func(t *testing.T) {
		a, err := GenerateToken(ResetTokenSize)
		require.NoError(t, err)
		b, err := GenerateToken(ResetTokenSize)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-token")

	require.Len(t, fp, 64, "sha256 hex digest")
	require.Equal(t, fp, FingerprintToken("some-token"), "fingerprint is deterministic")
	require.NotEqual(t, fp, FingerprintToken("some-other-token"))
}

func TestGenerateOTP(t *testing.T) {
	for range 256 {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.GreaterOrEqual(t, code, 100000)
		require.LessOrEqual(t, code, 999999)
	}
}
