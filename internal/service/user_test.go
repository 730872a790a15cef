package service

import (
	"context"
	"testing"

	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/internal/store/drivers/sqlite"
	"github.com/quizforge/quizforge/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func userFixture(t *testing.T) (*UserService, *sqlite.Store) {
	t.Helper()

	st := newTestStore(t)
	svc := &UserService{
		Store:  st,
		Tokens: newTokenService(st),
	}
	return svc, st
}

func TestLoginByEmailAndUsername(t *testing.T) {
	ctx := context.Background()
	svc, st := userFixture(t)

	u := seedUser(t, st, "alice@example.com", "alice", "password123")

	for _, identifier := range []string{"alice@example.com", "alice", "Alice@Example.COM"} {
		got, pair, err := svc.Login(ctx, identifier, "password123")
		require.NoError(t, err, "identifier %q", identifier)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, st := userFixture(t)

	seedUser(t, st, "alice@example.com", "alice", "password123")

	_, _, wrongPassword := svc.Login(ctx, "alice", "not-the-password")
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, _, unknownUser := svc.Login(ctx, "nobody", "password123")
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	svc, st := userFixture(t)

	u := seedUser(t, st, "alice@example.com", "alice", "password123")

	_, _, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID))

	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, stored.RefreshToken)

	// Logging out twice is fine.
	require.NoError(t, svc.Logout(ctx, u.ID))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, st := userFixture(t)

	u := seedUser(t, st, "alice@example.com", "alice", "oldpassword")

	t.Run("wrong current password leaves hash intact", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, "wrong", "newpassword")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("oldpassword", stored.PasswordHash))
	})

	t.Run("correct current password updates hash", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, u.ID, "oldpassword", "newpassword"))

		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("newpassword", stored.PasswordHash))
		require.Error(t, cryptox.VerifyPassword("oldpassword", stored.PasswordHash))
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	svc, st := userFixture(t)

	u := seedUser(t, st, "alice@example.com", "alice", "password123")
	seedUser(t, st, "bob@example.com", "bob", "password123")

	t.Run("updates name and email", func(t *testing.T) {
		got, err := svc.UpdateAccount(ctx, u.ID, "Alice Smith", "Alice.Smith@Example.com")
		require.NoError(t, err)
		require.Equal(t, "Alice Smith", got.FullName)
		require.Equal(t, "alice.smith@example.com", got.Email)
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, u.ID, "Alice Smith", "bob@example.com")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}
