package service

import "errors"

// Service-level sentinels. The HTTP layer maps these onto status codes;
// anything else bubbles up as a 500.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrAlreadyRegistered     = errors.New("already_registered")
	ErrNoPendingRegistration = errors.New("no_pending_registration")
	ErrInvalidCode           = errors.New("invalid_code")
	ErrCodeExpired           = errors.New("code_expired")

	ErrUnknownEmail      = errors.New("unknown_email")
	ErrDeliveryFailed    = errors.New("delivery_failed")
	ErrInvalidResetToken = errors.New("invalid_reset_token")

	ErrInvalidQuestion = errors.New("invalid_question")
	ErrInvalidAnswer   = errors.New("invalid_answer")
)
