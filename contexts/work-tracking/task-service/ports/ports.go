package ports

import (
	"context"
	"time"

	"taskforge/contexts/work-tracking/task-service/domain/entities"
	"taskforge/internal/shared/access"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new tasks and comments.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Tasks is the task and comment persistence boundary.
type Tasks interface {
	CreateTask(ctx context.Context, task entities.Task) error
	FindTaskByID(ctx context.Context, id string) (entities.Task, bool, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]entities.Task, error)
	SaveTask(ctx context.Context, task entities.Task) error
	DeleteTask(ctx context.Context, id string) error

	CreateComment(ctx context.Context, comment entities.Comment) error
	FindCommentByID(ctx context.Context, id string) (entities.Comment, bool, error)
	ListCommentsByTask(ctx context.Context, taskID string) ([]entities.Comment, error)
	SaveComment(ctx context.Context, comment entities.Comment) error
	DeleteComment(ctx context.Context, id string) error
}

// AccessPolicy gates every task operation on project access. Satisfied by
// the authorization service.
type AccessPolicy interface {
	RequireProjectAccess(ctx context.Context, identity access.Identity, projectID string) error
}

// MembershipDirectory answers assignee-validity questions. Satisfied by the
// workspace service adapters.
type MembershipDirectory interface {
	IsProjectMember(ctx context.Context, projectID string, userID string) (bool, error)
}

// Notifier records a user-facing event caused by a task mutation. Satisfied
// by the notification service. Emission is best-effort; the notifier never
// fails the triggering mutation.
type Notifier interface {
	NotifyTaskEvent(ctx context.Context, taskID string, userID string, eventType string, title string, message string) error
}
