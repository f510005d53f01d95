package errors

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrUserDeactivated = errors.New("user is deactivated")
	ErrProjectNotFound = errors.New("project not found")
)
