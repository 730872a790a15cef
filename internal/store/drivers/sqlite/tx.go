package sqlite

import (
	"context"
	"database/sql"

	"github.com/quizforge/quizforge/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer DB stays open and the caller commits or
// rolls back.
func (t *txStore) Close() error { return nil }

// Ping is a no-op inside a transaction.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations must run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users                               { return &usersRepo{db: t.tx} }
func (t *txStore) PendingRegistrations() store.PendingRegistrations { return &pendingRepo{db: t.tx} }
func (t *txStore) Quizzes() store.Quizzes                           { return &quizzesRepo{db: t.tx} }
func (t *txStore) Attempts() store.Attempts                         { return &attemptsRepo{db: t.tx} }
