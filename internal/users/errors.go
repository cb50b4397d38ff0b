package users

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidInput    = errors.New("invalid input")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrSamePassword    = errors.New("new password must differ")
	ErrBadConfirmation = errors.New("invalid confirmation")
)
