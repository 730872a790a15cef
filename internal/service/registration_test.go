package service

import (
	"context"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/cryptox"
	"github.com/quizforge/quizforge/pkg/idx"
	"github.com/stretchr/testify/require"
)

func registrationFixture(t *testing.T) (*RegistrationService, func(sessionID string) int) {
	t.Helper()

	st := newTestStore(t)

	svc := &RegistrationService{
		Store:    st,
		Notifier: &fakeNotifier{},
		Tokens:   newTokenService(st),
		OTPTTL:   5 * time.Minute,
	}

	// The emailed code is read back from the pending row rather than the
	// notifier: delivery is async and the store is the source of truth.
	codeFor := func(sessionID string) int {
		pending, err := st.PendingRegistrations().Get(context.Background(), sessionID)
		require.NoError(t, err)
		return pending.OTPCode
	}

	return svc, codeFor
}

func TestRegistrationConfirmHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, codeFor := registrationFixture(t)

	sid := idx.New().String()
	in := RegistrationInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	}
	require.NoError(t, svc.Begin(ctx, sid, in))

	// Confirm one minute later, well inside the code's lifetime.
	svc.Now = func() time.Time { return time.Now().Add(time.Minute) }

	user, pair, err := svc.Confirm(ctx, sid, codeFor(sid))
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", user.Email)
	require.Equal(t, "janedoe", user.Username)
	require.Equal(t, "Jane Doe", user.FullName)
	require.True(t, user.Verified)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The account exists with the password hashed, never stored raw.
	stored, err := svc.Store.Users().GetUserByIdentifier(ctx, "janedoe")
	require.NoError(t, err)
	require.NotEqual(t, in.Password, stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword(in.Password, stored.PasswordHash))

	// The refresh token landed in the session slot.
	require.NotNil(t, stored.RefreshToken)
	require.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestRegistrationConfirmConsumesPendingRow(t *testing.T) {
	ctx := context.Background()
	svc, codeFor := registrationFixture(t)

	sid := idx.New().String()
	require.NoError(t, svc.Begin(ctx, sid, RegistrationInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	}))

	code := codeFor(sid)

	_, _, err := svc.Confirm(ctx, sid, code)
	require.NoError(t, err)

	// Replaying the same code later fails: the pending row is gone.
	svc.Now = func() time.Time { return time.Now().Add(6 * time.Minute) }
	_, _, err = svc.Confirm(ctx, sid, code)
	require.ErrorIs(t, err, ErrNoPendingRegistration)
}

func TestRegistrationConfirmWrongCode(t *testing.T) {
	ctx := context.Background()
	svc, codeFor := registrationFixture(t)

	sid := idx.New().String()
	require.NoError(t, svc.Begin(ctx, sid, RegistrationInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	}))

	code := codeFor(sid)
	wrong := code + 1
	if wrong > 999999 {
		wrong = 100000
	}

	_, _, err := svc.Confirm(ctx, sid, wrong)
	require.ErrorIs(t, err, ErrInvalidCode)

	// The right code still works after a wrong guess.
	_, _, err = svc.Confirm(ctx, sid, code)
	require.NoError(t, err)
}

func TestRegistrationConfirmExpiredCode(t *testing.T) {
	ctx := context.Background()
	svc, codeFor := registrationFixture(t)

	sid := idx.New().String()
	require.NoError(t, svc.Begin(ctx, sid, RegistrationInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	}))

	code := codeFor(sid)

	// Six minutes later the five-minute code is dead.
	svc.Now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	_, _, err := svc.Confirm(ctx, sid, code)
	require.ErrorIs(t, err, ErrCodeExpired)

	// No account was created.
	_, err = svc.Store.Users().GetUserByIdentifier(ctx, "janedoe")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegistrationBeginConflicts(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &RegistrationService{
		Store:    st,
		Notifier: &fakeNotifier{},
		Tokens:   newTokenService(st),
	}

	seedUser(t, st, "taken@example.com", "takenuser", "password123")

	err := svc.Begin(ctx, idx.New().String(), RegistrationInput{
		FullName: "Jane Doe",
		Email:    "taken@example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	})
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	err = svc.Begin(ctx, idx.New().String(), RegistrationInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Username: "takenuser",
		Password: "correct horse battery",
	})
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistrationResubmitReplacesCode(t *testing.T) {
	ctx := context.Background()
	svc, codeFor := registrationFixture(t)

	sid := idx.New().String()
	in := RegistrationInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Username: "janedoe",
		Password: "correct horse battery",
	}

	require.NoError(t, svc.Begin(ctx, sid, in))
	first := codeFor(sid)

	require.NoError(t, svc.Begin(ctx, sid, in))
	second := codeFor(sid)

	// Last attempt wins: the earlier code only redeems if it happened to
	// collide with the replacement.
	if first != second {
		_, _, err := svc.Confirm(ctx, sid, first)
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	_, _, err := svc.Confirm(ctx, sid, second)
	require.NoError(t, err)
}
