package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Codec signs and verifies tokens with a shared HMAC-SHA256 secret.
// Access and refresh tokens each get their own codec instance so the two
// secrets stay independent.
type HS256Codec struct {
	secret []byte
	issuer string

	// now is swappable so expiry checks are deterministic in tests.
	now func() time.Time
}

// NewHS256 creates a codec from a shared secret. The issuer is embedded on
// sign and enforced on verify when non-empty.
func NewHS256(secret []byte, issuer string) *HS256Codec {
	return &HS256Codec{
		secret: secret,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock overrides the codec's time source. Test hook.
func (c *HS256Codec) WithClock(now func() time.Time) *HS256Codec {
	c.now = now
	return c
}

// Sign turns claims into a signed compact token string.
func (c *HS256Codec) Sign(claims Claims) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("jwtx: empty signing secret")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the signature first, then expiry, then issuer. Claims are
// never trusted before the signature holds; expiry is validated explicitly
// after that so a tampered-but-unexpired token fails as ErrInvalidSig and an
// authentic-but-stale token fails as ErrExpired.
func (c *HS256Codec) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateExpiry(c.now()); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
