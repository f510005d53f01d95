package errors

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid registration input")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserDeactivated        = errors.New("user is deactivated")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrOrganizationNameNeeded = errors.New("organization name is required when no organization id is given")
	ErrNotRefreshToken        = errors.New("not a refresh token")
)
