package domain

import "time"

// User is a registered account. Accounts only come into existence through
// OTP confirmation, so Verified is true for every row created through the
// normal flow; the flag is still checked on every authenticated request.
type User struct {
	ID           string
	FullName     string
	Email        string // unique, lowercased
	Username     string // unique, lowercased
	PasswordHash string // argon2id encoded, never plaintext

	// RefreshToken is the single currently-valid refresh token value.
	// Rotation replaces it; logout clears it. nil means no live session.
	RefreshToken *string

	Verified bool

	// ResetTokenHash/ResetTokenExpiry track an outstanding password-reset
	// token. Only the hash of the token handed to the user is stored.
	ResetTokenHash   *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingRegistration is an unconfirmed registration awaiting its emailed
// OTP code. It is keyed by the registration session and never becomes
// visible outside it. The password is held as submitted so the account can
// be created with the normal hashing path on confirmation; rows are short
// lived and reaped by housekeeping once the code expires.
type PendingRegistration struct {
	SessionID string
	FullName  string
	Email     string
	Username  string
	Password  string
	OTPCode   int
	OTPExpiry time.Time
	CreatedAt time.Time
}
