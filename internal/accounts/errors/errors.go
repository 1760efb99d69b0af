package errors

import "errors"

var (
	ErrNotFound      = errors.New("account not found")
	ErrInvalidID     = errors.New("invalid account id")
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadCredential = errors.New("invalid email or password")
)
