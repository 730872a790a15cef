package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/cryptox"
)

// UserService covers password login and account management for signed-in
// users.
type UserService struct {
	Store  store.Store
	Tokens *TokenService

	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetByID returns the account.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// Login authenticates by email or username plus password and issues a fresh
// token pair, displacing any previous session. Unknown identifier and wrong
// password both surface as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, identifier, password string) (domain.User, domain.TokenPair, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	u, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(ctx, s.Store.Users(), u)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	refresh := pair.RefreshToken
	u.RefreshToken = &refresh
	return u, pair, nil
}

// Logout clears the user's refresh token slot. A missing user is not an
// error; the cookies get cleared regardless.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	err := s.Store.Users().ClearRefreshToken(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// ChangePassword verifies the current password before setting the new one.
// The session stays live; only a wrong current password is rejected.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(current, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// UpdateAccount changes the display name and email. ErrAlreadyExists
// surfaces when the new email belongs to another account.
func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if err := s.Store.Users().UpdateProfile(ctx, userID, fullName, email); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}
