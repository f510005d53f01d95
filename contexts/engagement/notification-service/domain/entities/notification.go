package entities

import "time"

// Type classifies the event a notification describes. due_soon and overdue
// exist for an external scheduler; nothing in the request path emits them.
type Type string

const (
	TypeTaskAssigned      Type = "task_assigned"
	TypeTaskStatusChanged Type = "task_status_changed"
	TypeTaskCommentAdded  Type = "task_comment_added"
	TypeTaskDueSoon       Type = "task_due_soon"
	TypeTaskOverdue       Type = "task_overdue"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTaskAssigned, TypeTaskStatusChanged, TypeTaskCommentAdded, TypeTaskDueSoon, TypeTaskOverdue:
		return true
	}
	return false
}

// Notification is an immutable record of an event delivered to one user.
// Only the read flag changes after creation.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TaskID    string    `json:"task_id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
