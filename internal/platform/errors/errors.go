package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no stored session")
	ErrNotOwner     = errors.New("not the owner")
	ErrOffline      = errors.New("backend unavailable in offline mode")
)
