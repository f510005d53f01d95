package errors

import "errors"

var (
	ErrInvalidType          = errors.New("invalid notification type")
	ErrNotificationNotFound = errors.New("notification not found")
)
