package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/cryptox"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// DefaultResetTokenTTL is how long an emailed reset link stays redeemable.
const DefaultResetTokenTTL = 10 * time.Minute

// PasswordResetService issues and redeems single-use password reset tokens.
// Only the SHA-256 fingerprint of a token is ever stored; the plaintext
// leaves the server exactly once, inside the emailed link.
type PasswordResetService struct {
	Store       store.Store
	Notifier    Notifier
	FrontendURL string
	TokenTTL    time.Duration

	Now func() time.Time
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PasswordResetService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultResetTokenTTL
}

// RequestReset issues a reset token for the account and emails the link.
// An unknown email surfaces as ErrUnknownEmail. Issuing a new token
// overwrites any outstanding one, so only the latest link works.
//
// Delivery is synchronous here: if the email cannot be sent the stored
// token state is rolled back and ErrDeliveryFailed is returned, so a dead
// SMTP server never strands the account with an unusable token.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	now := s.now()

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Store.Users().GetUserByIdentifier(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.ResetTokenSize)
	if err != nil {
		return err
	}

	hash := cryptox.FingerprintToken(token)
	if err := s.Store.Users().SetResetToken(ctx, u.ID, hash, now.Add(s.tokenTTL())); err != nil {
		return err
	}

	resetURL := strings.TrimRight(s.FrontendURL, "/") + "/reset-password/" + token
	if err := s.Notifier.SendResetLink(ctx, u.Email, resetURL); err != nil {
		l.Error("failed to send reset link",
			slog.Any("error", err),
			slog.String("user_id", u.ID),
		)
		if clearErr := s.Store.Users().ClearResetToken(ctx, u.ID); clearErr != nil {
			l.Error("failed to roll back reset token", slog.Any("error", clearErr))
		}
		return ErrDeliveryFailed
	}

	return nil
}

// CompleteReset redeems a reset token and sets the new password. Wrong,
// expired and already-used tokens are indistinguishable: all surface as
// ErrInvalidResetToken. The lookup, password update and token clear run in
// one transaction so a token can only ever be redeemed once; the refresh
// slot is cleared too, signing out whoever held the old password.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	now := s.now()
	hash := cryptox.FingerprintToken(token)

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByActiveResetTokenHash(ctx, hash, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}

		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, newHash); err != nil {
			return err
		}
		if err := tx.Users().ClearResetToken(ctx, u.ID); err != nil {
			return err
		}
		return tx.Users().ClearRefreshToken(ctx, u.ID)
	})
}
