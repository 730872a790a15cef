package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/jwtx"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// TokenService issues and rotates the access/refresh token pair. Access and
// refresh tokens are signed with separate keys so a leaked refresh secret
// cannot mint access tokens, and vice versa.
type TokenService struct {
	AccessCodec  jwtx.Codec
	RefreshCodec jwtx.Codec
	Store        store.Store
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssuePair signs a fresh access/refresh pair for the user and persists the
// refresh token in the user's single session slot, displacing any previous
// session. The users repo is passed in so callers can run this inside a
// transaction.
func (s *TokenService) IssuePair(ctx context.Context, users store.Users, u domain.User) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.AccessCodec.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.RefreshCodec.Sign(jwtx.NewRefreshClaims(
		u.ID, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := users.UpdateRefreshToken(ctx, u.ID, refresh); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate exchanges a presented refresh token for a new pair. The swap is a
// compare-and-swap against the stored slot: if the presented token is not the
// one on record it has either been rotated already (reuse) or the session was
// logged out, and in both cases the whole session is invalidated.
//
// Every failure collapses to ErrUnauthorized so callers cannot distinguish a
// forged token from a reused one.
func (s *TokenService) Rotate(ctx context.Context, presented string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.RefreshCodec.Verify(presented)
	if err != nil {
		l.Info("refresh token rejected", slog.Any("error", err))
		return domain.TokenPair{}, ErrUnauthorized
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnauthorized
		}
		return domain.TokenPair{}, err
	}

	now := s.now()

	access, err := s.AccessCodec.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.Username, u.FullName, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.RefreshCodec.Sign(jwtx.NewRefreshClaims(
		u.ID, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Store.Users().RotateRefreshToken(ctx, u.ID, presented, refresh); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A valid signature on a token that is no longer in the slot
			// means an old token was replayed. Kill the live session too.
			l.Warn("refresh token reuse detected", slog.String("user_id", u.ID))
			_ = s.Store.Users().ClearRefreshToken(ctx, u.ID)
			return domain.TokenPair{}, ErrUnauthorized
		}
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
