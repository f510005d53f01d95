package errors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid project input")
	ErrForbidden       = errors.New("forbidden")
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrMemberNotFound  = errors.New("project member not found")
)
