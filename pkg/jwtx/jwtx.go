// Package jwtx is the signed-token codec for quizforge. Tokens are compact
// JWS structures signed with a keyed HMAC; verification always checks the
// signature before trusting any claim, including expiry.
package jwtx

import (
	"errors"
	"time"
)

// Default token TTLs. Overridable per-service via app config.
const (
	// DefaultAccessTokenTTL keeps access tokens short-lived; validity is
	// purely signature+expiry, no store lookup.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL bounds how long a session can survive without
	// a fresh login.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
)

// Signer produces a signed compact token from claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a compact token and returns its claims. Failures are
// one of ErrMalformed, ErrInvalidSig, ErrExpired or ErrIssuer so callers can
// distinguish them for diagnostics (and collapse them to 401 at the edge).
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Codec signs and verifies with the same key.
type Codec interface {
	Signer
	Verifier
}
