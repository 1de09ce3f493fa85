package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")

	// ErrInvalidToken covers every reason a token fails to decode.
	ErrInvalidToken = errors.New("invalid token")
	// ErrVerifierMalfunction means the password primitive failed, not that the password was wrong.
	ErrVerifierMalfunction = errors.New("credential verifier malfunction")
	// ErrGoogleDisabled is returned when Google sign-in has no client configured.
	ErrGoogleDisabled = errors.New("google sign-in disabled")
)
