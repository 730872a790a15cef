package sqlite

import (
	"context"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
)

type pendingRepo struct {
	db dbtx
}

// Upsert replaces any earlier registration attempt under the same session,
// so re-submitting the form simply issues a fresh code.
func (r *pendingRepo) Upsert(ctx context.Context, p domain.PendingRegistration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_registrations (
			session_id, full_name, email, username, password,
			otp_code, otp_expires_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			username = excluded.username,
			password = excluded.password,
			otp_code = excluded.otp_code,
			otp_expires_at = excluded.otp_expires_at,
			created_at = excluded.created_at`,
		p.SessionID, p.FullName, p.Email, p.Username, p.Password,
		p.OTPCode, p.OTPExpiry, p.CreatedAt,
	)
	return err
}

func (r *pendingRepo) Get(ctx context.Context, sessionID string) (domain.PendingRegistration, error) {
	var p domain.PendingRegistration
	err := r.db.QueryRowContext(ctx, `
		SELECT session_id, full_name, email, username, password,
			otp_code, otp_expires_at, created_at
		FROM pending_registrations WHERE session_id = ?`, sessionID).Scan(
		&p.SessionID, &p.FullName, &p.Email, &p.Username, &p.Password,
		&p.OTPCode, &p.OTPExpiry, &p.CreatedAt,
	)
	if err != nil {
		return domain.PendingRegistration{}, mapNotFound(err)
	}
	return p, nil
}

// Consume deletes the pending registration, failing with ErrNotFound when a
// concurrent confirmation already claimed it.
func (r *pendingRepo) Consume(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_registrations WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *pendingRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_registrations WHERE otp_expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
