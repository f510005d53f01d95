package errors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid task input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAssignee   = errors.New("assignee must be a member of the project")
	ErrForbidden         = errors.New("forbidden")
	ErrTaskNotFound      = errors.New("task not found")
	ErrCommentNotFound   = errors.New("comment not found")
)
