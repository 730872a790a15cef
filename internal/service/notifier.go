package service

import "context"

// Notifier delivers account emails. The SMTP implementation lives in
// internal/mail; tests substitute a recorder.
type Notifier interface {
	// SendVerificationCode emails the six-digit registration code.
	SendVerificationCode(ctx context.Context, email string, code int) error

	// SendResetLink emails the single-use password reset URL.
	SendResetLink(ctx context.Context, email, resetURL string) error
}
