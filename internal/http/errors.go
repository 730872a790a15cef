package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/httpx"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// writeServiceError maps service sentinels onto status codes and the uniform
// error envelope. Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyRegistered), errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "already_exists",
			"email or username is already taken")

	case errors.Is(err, service.ErrNoPendingRegistration):
		httpx.WriteError(w, http.StatusBadRequest, "no_pending_registration",
			"no registration in progress for this session")

	case errors.Is(err, service.ErrInvalidCode):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_code",
			"verification code is incorrect")

	case errors.Is(err, service.ErrCodeExpired):
		httpx.WriteError(w, http.StatusBadRequest, "code_expired",
			"verification code has expired, register again")

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials",
			"identifier or password is incorrect")

	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "")

	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden",
			"you do not have access to this resource")

	case errors.Is(err, service.ErrUnknownEmail):
		httpx.WriteError(w, http.StatusNotFound, "unknown_email",
			"no account with that email")

	case errors.Is(err, service.ErrDeliveryFailed):
		httpx.WriteError(w, http.StatusBadGateway, "delivery_failed",
			"could not send email, try again later")

	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_reset_token",
			"reset link is invalid or has expired")

	case errors.Is(err, service.ErrInvalidQuestion), errors.Is(err, service.ErrInvalidAnswer):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())

	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "")

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
	}
}
