package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ResetTokenSize is the byte length of password-reset tokens before hex
// encoding (40 chars encoded).
const ResetTokenSize = 20

// GenerateToken creates a cryptographically random token of size bytes,
// hex-encoded. The plaintext is handed to the user exactly once; only its
// fingerprint should ever be persisted.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// FingerprintToken returns the deterministic SHA-256 fingerprint of a token,
// hex-encoded. Lookups against stored tokens go through the fingerprint so
// the plaintext never touches the database.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
