package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quizforge/quizforge/pkg/idx"
)

// Claims carried by quizforge tokens. Access tokens embed the identity
// fields; refresh tokens carry only the registered subject.
type Claims struct {
	jwt.RegisteredClaims

	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// NewAccessClaims builds the claims for a short-lived access token carrying
// the account's identity fields.
func NewAccessClaims(
	subject, email, username, fullName string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        idx.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:    email,
		Username: username,
		FullName: fullName,
	}
}

// NewRefreshClaims builds the claims for a refresh token: subject, expiry
// and a unique jti so two tokens minted in the same second never collide.
// Everything else is resolved server-side on rotation.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        idx.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiry ensures the token has not expired (exp) and is not used
// before it becomes valid (nbf). Called only after the signature has been
// verified.
func (c *Claims) ValidateExpiry(now time.Time) error {
	now = now.UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIssuer checks the iss claim when an expected issuer is configured.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
