package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Now()

	stale := domain.PendingRegistration{
		SessionID: idx.New().String(),
		FullName:  "Stale",
		Email:     "stale@example.com",
		Username:  "stale",
		Password:  "password123",
		OTPCode:   123456,
		OTPExpiry: now.Add(-time.Hour),
		CreatedAt: now.Add(-2 * time.Hour),
	}
	fresh := domain.PendingRegistration{
		SessionID: idx.New().String(),
		FullName:  "Fresh",
		Email:     "fresh@example.com",
		Username:  "fresh",
		Password:  "password123",
		OTPCode:   654321,
		OTPExpiry: now.Add(5 * time.Minute),
		CreatedAt: now,
	}
	require.NoError(t, st.PendingRegistrations().Upsert(ctx, stale))
	require.NoError(t, st.PendingRegistrations().Upsert(ctx, fresh))

	expired := seedUser(t, st, "expired@example.com", "expireduser", "password123")
	live := seedUser(t, st, "live@example.com", "liveuser", "password123")
	require.NoError(t, st.Users().SetResetToken(ctx, expired.ID, "deadhash", now.Add(-time.Minute)))
	require.NoError(t, st.Users().SetResetToken(ctx, live.ID, "livehash", now.Add(10*time.Minute)))

	svc := NewHousekeepingService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	svc.cleanup()

	// The stale registration is reaped, the fresh one survives.
	_, err := st.PendingRegistrations().Get(ctx, stale.SessionID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.PendingRegistrations().Get(ctx, fresh.SessionID)
	require.NoError(t, err)

	// Only the expired reset token is cleared.
	u, err := st.Users().GetUserByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Nil(t, u.ResetTokenHash)
	require.Nil(t, u.ResetTokenExpiry)

	u, err = st.Users().GetUserByID(ctx, live.ID)
	require.NoError(t, err)
	require.NotNil(t, u.ResetTokenHash)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)

	svc := NewHousekeepingService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	svc.Start()
	svc.Stop()
}
