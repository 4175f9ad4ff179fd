package domain

import "errors"

var (
	ErrNotAuthorized          = errors.New("session is not authorized")
	ErrInvalidCode            = errors.New("invalid verification code")
	ErrPhoneOccupied          = errors.New("phone number is already in use")
	ErrSessionTooNew          = errors.New("current session is too new")
	ErrCurrentSessionNotFound = errors.New("current session not found in authorizations")
	ErrNoSession              = errors.New("session not found")
	ErrInvalidPhone           = errors.New("invalid phone number")
)
