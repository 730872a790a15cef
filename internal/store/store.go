package store

import (
	"context"
	"errors"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let transactional
// code use the exact same surface.
type Store interface {
	Users() Users
	PendingRegistrations() PendingRegistrations
	Quizzes() Quizzes
	Attempts() Attempts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Multi-step operations that must be
	// atomic (OTP consumption, reset completion) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByIdentifier resolves a login identifier against both the
	// email and username columns.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// ExistsByEmailOrUsername reports whether either value is already taken.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email or username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshToken overwrites the stored refresh token slot.
	UpdateRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken swaps the stored refresh token only if it still
	// equals old (compare-and-swap). Returns ErrNotFound when the stored
	// value no longer matches, which is the rotated-token reuse signal.
	RotateRefreshToken(ctx context.Context, userID, old, new string) error

	// ClearRefreshToken unsets the slot (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// SetResetToken stores the hash and expiry of an issued reset token.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error

	// ClearResetToken removes any outstanding reset token state.
	ClearResetToken(ctx context.Context, userID string) error

	// GetUserByActiveResetTokenHash finds the account holding this reset
	// token hash with an expiry still in the future. ErrNotFound covers
	// both "wrong token" and "expired" so callers cannot tell them apart.
	GetUserByActiveResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.User, error)

	// ClearExpiredResetTokens is housekeeping for tokens never redeemed.
	// Returns the number of rows cleared.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)

	// UpdateProfile mutates fullName/email. Returns ErrAlreadyExists when
	// the new email is taken.
	UpdateProfile(ctx context.Context, userID, fullName, email string) error
}

type PendingRegistrations interface {
	// Upsert writes the pending registration for a session, replacing any
	// prior attempt from the same session (last attempt wins).
	Upsert(ctx context.Context, p domain.PendingRegistration) error

	// Get returns the pending registration for a session.
	Get(ctx context.Context, sessionID string) (domain.PendingRegistration, error)

	// Consume deletes the row, returning ErrNotFound if it was already
	// consumed. Run inside a transaction this is the atomic consume-once
	// step that keeps racing confirmations from creating two accounts.
	Consume(ctx context.Context, sessionID string) error

	// DeleteExpired reaps rows whose OTP expiry has passed. Returns the
	// number of rows deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Quizzes interface {
	// CreateQuiz inserts the quiz and its questions.
	CreateQuiz(ctx context.Context, q domain.Quiz) error

	// GetQuizByID returns the quiz with questions ordered by position.
	GetQuizByID(ctx context.Context, id string) (domain.Quiz, error)

	// ListQuizzesByOwner returns quiz metadata (no questions), newest first.
	ListQuizzesByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error)

	// UpdateQuiz replaces the quiz metadata and its full question set.
	UpdateQuiz(ctx context.Context, q domain.Quiz) error

	// DeleteQuiz removes the quiz; questions and attempts cascade.
	DeleteQuiz(ctx context.Context, id string) error
}

type Attempts interface {
	// CreateAttempt records a scored attempt.
	CreateAttempt(ctx context.Context, a domain.Attempt) error

	// GetAttemptByID returns an attempt by id.
	GetAttemptByID(ctx context.Context, id string) (domain.Attempt, error)

	// ListAttemptsByUser returns a user's attempts, newest first.
	ListAttemptsByUser(ctx context.Context, userID string) ([]domain.Attempt, error)

	// Leaderboard returns each user's best score for a quiz, ordered by
	// score descending then earliest attempt.
	Leaderboard(ctx context.Context, quizID string, limit int) ([]domain.LeaderboardEntry, error)
}
