package errors

import "errors"

var (
	ErrNotFound        = errors.New("property not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrInvalidID       = errors.New("invalid property id")
)
