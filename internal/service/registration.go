package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/cryptox"
	"github.com/quizforge/quizforge/pkg/idx"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// DefaultOTPTTL is how long an emailed verification code stays redeemable.
const DefaultOTPTTL = 5 * time.Minute

// RegistrationInput is the validated registration form.
type RegistrationInput struct {
	FullName string
	Email    string
	Username string
	Password string
}

// RegistrationService runs the two-step email-verified signup: Begin parks
// the submission as a pending registration and emails a code, Confirm turns
// it into an account.
type RegistrationService struct {
	Store    store.Store
	Notifier Notifier
	Tokens   *TokenService
	OTPTTL   time.Duration

	Now func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *RegistrationService) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}

// Begin stages a registration under the caller's session and emails the
// verification code. Resubmitting from the same session replaces the staged
// registration and issues a fresh code; nothing is written to the users table
// until the code is confirmed.
//
// Email delivery is fire-and-forget: a slow or flaky SMTP server must not
// hold the request open, and the user can always resubmit the form.
func (s *RegistrationService) Begin(ctx context.Context, sessionID string, in RegistrationInput) error {
	l := slogx.FromContext(ctx)
	now := s.now()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	taken, err := s.Store.Users().ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyRegistered
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return err
	}

	pending := domain.PendingRegistration{
		SessionID: sessionID,
		FullName:  strings.TrimSpace(in.FullName),
		Email:     email,
		Username:  username,
		Password:  in.Password,
		OTPCode:   code,
		OTPExpiry: now.Add(s.otpTTL()),
		CreatedAt: now,
	}

	if err := s.Store.PendingRegistrations().Upsert(ctx, pending); err != nil {
		return err
	}

	go func() {
		if err := s.Notifier.SendVerificationCode(context.Background(), email, code); err != nil {
			l.Error("failed to send verification code",
				slog.Any("error", err),
				slog.String("email", email),
			)
		}
	}()

	return nil
}

// Confirm redeems the verification code for the caller's session, creating
// the account and signing it in. The pending row is consumed inside the same
// transaction that creates the user, so two racing confirmations can never
// create two accounts: the loser's Consume affects zero rows and fails.
func (s *RegistrationService) Confirm(ctx context.Context, sessionID string, code int) (domain.User, domain.TokenPair, error) {
	now := s.now()

	pending, err := s.Store.PendingRegistrations().Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrNoPendingRegistration
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if pending.OTPCode != code {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCode
	}
	if now.After(pending.OTPExpiry) {
		return domain.User{}, domain.TokenPair{}, ErrCodeExpired
	}

	hash, err := cryptox.HashPassword(pending.Password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		FullName:     pending.FullName,
		Email:        pending.Email,
		Username:     pending.Username,
		PasswordHash: hash,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PendingRegistrations().Consume(ctx, sessionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoPendingRegistration
			}
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyRegistered
			}
			return err
		}

		pair, err = s.Tokens.IssuePair(ctx, tx.Users(), user)
		return err
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	refresh := pair.RefreshToken
	user.RefreshToken = &refresh
	return user, pair, nil
}
