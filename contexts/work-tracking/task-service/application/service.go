package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/work-tracking/task-service/domain/entities"
	domainerrors "taskforge/contexts/work-tracking/task-service/domain/errors"
	domainservices "taskforge/contexts/work-tracking/task-service/domain/services"
	"taskforge/contexts/work-tracking/task-service/ports"
	"taskforge/internal/shared/access"
)

const (
	notifTypeAssigned      = "task_assigned"
	notifTypeStatusChanged = "task_status_changed"
	notifTypeCommentAdded  = "task_comment_added"
)

// Service owns the task lifecycle and its notification side effects. Every
// operation passes the access policy before touching storage; mutations
// additionally require manager or admin. Notifications are emitted after
// the mutation commits and never roll it back.
type Service struct {
	Tasks       ports.Tasks
	Policy      ports.AccessPolicy
	Members     ports.MembershipDirectory
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// CreateTaskCommand carries the create payload. Status always starts at
// todo; it is not a creation input.
type CreateTaskCommand struct {
	ProjectID   string
	Title       string
	Description string
	Priority    entities.Priority
	AssigneeID  string
	DueDate     *time.Time
}

// UpdateTaskCommand enumerates exactly the mutable fields. A nil pointer
// leaves the field untouched. Every provided field is validated before any
// field is applied, so a rejected update changes nothing.
type UpdateTaskCommand struct {
	Title       *string
	Description *string
	Status      *entities.Status
	Priority    *entities.Priority
	DueDate     *time.Time
	AssigneeID  *string
}

func (s Service) CreateTask(ctx context.Context, identity access.Identity, cmd CreateTaskCommand) (entities.Task, error) {
	if err := s.Policy.RequireProjectAccess(ctx, identity, cmd.ProjectID); err != nil {
		return entities.Task{}, err
	}
	if !identity.Role.AtLeast(access.RoleManager) {
		return entities.Task{}, domainerrors.ErrForbidden
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return entities.Task{}, domainerrors.ErrInvalidInput
	}
	priority := cmd.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return entities.Task{}, domainerrors.ErrInvalidInput
	}
	if cmd.AssigneeID != "" {
		if err := s.requireMember(ctx, cmd.ProjectID, cmd.AssigneeID); err != nil {
			return entities.Task{}, err
		}
	}

	taskID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Task{}, err
	}
	now := s.now()
	task := entities.Task{
		ID:          taskID,
		ProjectID:   cmd.ProjectID,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Status:      entities.StatusTodo,
		Priority:    priority,
		AssigneeID:  cmd.AssigneeID,
		CreatedBy:   identity.UserID,
		DueDate:     cmd.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Tasks.CreateTask(ctx, task); err != nil {
		return entities.Task{}, fmt.Errorf("create task: %w", err)
	}

	resolveLogger(s.Logger).Info("task created",
		"event", "task_created",
		"module", "work-tracking/task-service",
		"layer", "application",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"created_by", identity.UserID,
	)

	if task.AssigneeID != "" && task.AssigneeID != identity.UserID {
		s.notify(ctx, task.ID, task.AssigneeID, notifTypeAssigned, "Task Assigned",
			fmt.Sprintf("You have been assigned task '%s'", task.Title))
	}
	return task, nil
}

func (s Service) ListTasks(ctx context.Context, identity access.Identity, projectID string) ([]entities.Task, error) {
	if err := s.Policy.RequireProjectAccess(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.Tasks.ListTasksByProject(ctx, projectID)
}

func (s Service) GetTask(ctx context.Context, identity access.Identity, taskID string) (entities.Task, error) {
	return s.accessTask(ctx, identity, taskID)
}

func (s Service) UpdateTask(ctx context.Context, identity access.Identity, taskID string, cmd UpdateTaskCommand) (entities.Task, error) {
	task, err := s.accessTask(ctx, identity, taskID)
	if err != nil {
		return entities.Task{}, err
	}
	if !identity.Role.AtLeast(access.RoleManager) {
		return entities.Task{}, domainerrors.ErrForbidden
	}

	// Validate everything before applying anything.
	if cmd.Title != nil && strings.TrimSpace(*cmd.Title) == "" {
		return entities.Task{}, domainerrors.ErrInvalidInput
	}
	if cmd.Status != nil {
		if !domainservices.ValidStatus(*cmd.Status) {
			return entities.Task{}, domainerrors.ErrInvalidInput
		}
		if !domainservices.CanTransition(task.Status, *cmd.Status) {
			return entities.Task{}, domainerrors.ErrInvalidTransition
		}
	}
	if cmd.Priority != nil && !cmd.Priority.Valid() {
		return entities.Task{}, domainerrors.ErrInvalidInput
	}
	if cmd.AssigneeID != nil && *cmd.AssigneeID != "" {
		if err := s.requireMember(ctx, task.ProjectID, *cmd.AssigneeID); err != nil {
			return entities.Task{}, err
		}
	}

	previousAssignee := task.AssigneeID
	if cmd.Title != nil {
		task.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		task.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Status != nil {
		task.Status = *cmd.Status
	}
	if cmd.Priority != nil {
		task.Priority = *cmd.Priority
	}
	if cmd.DueDate != nil {
		task.DueDate = cmd.DueDate
	}
	if cmd.AssigneeID != nil {
		task.AssigneeID = *cmd.AssigneeID
	}
	task.UpdatedAt = s.now()

	if err := s.Tasks.SaveTask(ctx, task); err != nil {
		return entities.Task{}, fmt.Errorf("save task: %w", err)
	}

	resolveLogger(s.Logger).Info("task updated",
		"event", "task_updated",
		"module", "work-tracking/task-service",
		"layer", "application",
		"task_id", task.ID,
		"updated_by", identity.UserID,
	)

	if cmd.Status != nil && task.AssigneeID != "" && task.AssigneeID != identity.UserID {
		s.notify(ctx, task.ID, task.AssigneeID, notifTypeStatusChanged, "Task Status Changed",
			fmt.Sprintf("Task '%s' moved to %s", task.Title, task.Status))
	}
	if cmd.AssigneeID != nil && task.AssigneeID != "" && task.AssigneeID != previousAssignee {
		if task.AssigneeID != identity.UserID {
			s.notify(ctx, task.ID, task.AssigneeID, notifTypeAssigned, "Task Assigned",
				fmt.Sprintf("You have been assigned task '%s'", task.Title))
		}
		if previousAssignee != "" && previousAssignee != identity.UserID {
			s.notify(ctx, task.ID, previousAssignee, notifTypeAssigned, "Task Reassigned",
				fmt.Sprintf("Your task '%s' has been reassigned", task.Title))
		}
	}
	return task, nil
}

// DeleteTask notifies the assignee before the row disappears so the
// notification still references a live task.
func (s Service) DeleteTask(ctx context.Context, identity access.Identity, taskID string) error {
	task, err := s.accessTask(ctx, identity, taskID)
	if err != nil {
		return err
	}
	if !identity.Role.AtLeast(access.RoleManager) {
		return domainerrors.ErrForbidden
	}

	if task.AssigneeID != "" && task.AssigneeID != identity.UserID {
		s.notify(ctx, task.ID, task.AssigneeID, notifTypeStatusChanged, "Task Deleted",
			fmt.Sprintf("Task '%s' has been deleted", task.Title))
	}
	if err := s.Tasks.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	resolveLogger(s.Logger).Info("task deleted",
		"event", "task_deleted",
		"module", "work-tracking/task-service",
		"layer", "application",
		"task_id", taskID,
		"deleted_by", identity.UserID,
	)
	return nil
}

func (s Service) AddComment(ctx context.Context, identity access.Identity, taskID string, content string) (entities.Comment, error) {
	task, err := s.accessTask(ctx, identity, taskID)
	if err != nil {
		return entities.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.Comment{}, domainerrors.ErrInvalidInput
	}

	commentID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}
	now := s.now()
	comment := entities.Comment{
		ID:        commentID,
		TaskID:    task.ID,
		AuthorID:  identity.UserID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Tasks.CreateComment(ctx, comment); err != nil {
		return entities.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	if task.AssigneeID != "" && task.AssigneeID != identity.UserID {
		s.notify(ctx, task.ID, task.AssigneeID, notifTypeCommentAdded, "New Comment",
			fmt.Sprintf("New comment on task '%s'", task.Title))
	}
	if task.CreatedBy != identity.UserID && task.CreatedBy != task.AssigneeID {
		s.notify(ctx, task.ID, task.CreatedBy, notifTypeCommentAdded, "New Comment",
			fmt.Sprintf("New comment on task '%s'", task.Title))
	}
	return comment, nil
}

func (s Service) ListComments(ctx context.Context, identity access.Identity, taskID string) ([]entities.Comment, error) {
	task, err := s.accessTask(ctx, identity, taskID)
	if err != nil {
		return nil, err
	}
	return s.Tasks.ListCommentsByTask(ctx, task.ID)
}

// UpdateComment is open to the author and to managers or admins.
func (s Service) UpdateComment(ctx context.Context, identity access.Identity, taskID string, commentID string, content string) (entities.Comment, error) {
	comment, err := s.accessComment(ctx, identity, taskID, commentID)
	if err != nil {
		return entities.Comment{}, err
	}
	if comment.AuthorID != identity.UserID && !identity.Role.AtLeast(access.RoleManager) {
		return entities.Comment{}, domainerrors.ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.Comment{}, domainerrors.ErrInvalidInput
	}

	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.Tasks.SaveComment(ctx, comment); err != nil {
		return entities.Comment{}, fmt.Errorf("save comment: %w", err)
	}
	return comment, nil
}

func (s Service) DeleteComment(ctx context.Context, identity access.Identity, taskID string, commentID string) error {
	comment, err := s.accessComment(ctx, identity, taskID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != identity.UserID && !identity.Role.AtLeast(access.RoleManager) {
		return domainerrors.ErrForbidden
	}
	if err := s.Tasks.DeleteComment(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// accessTask loads a task and enforces project access through the policy.
// Absence and inaccessible-project both surface as ErrTaskNotFound or the
// policy's own error.
func (s Service) accessTask(ctx context.Context, identity access.Identity, taskID string) (entities.Task, error) {
	task, found, err := s.Tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return entities.Task{}, fmt.Errorf("find task: %w", err)
	}
	if !found {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	if err := s.Policy.RequireProjectAccess(ctx, identity, task.ProjectID); err != nil {
		return entities.Task{}, err
	}
	return task, nil
}

func (s Service) accessComment(ctx context.Context, identity access.Identity, taskID string, commentID string) (entities.Comment, error) {
	if _, err := s.accessTask(ctx, identity, taskID); err != nil {
		return entities.Comment{}, err
	}
	comment, found, err := s.Tasks.FindCommentByID(ctx, commentID)
	if err != nil {
		return entities.Comment{}, fmt.Errorf("find comment: %w", err)
	}
	if !found || comment.TaskID != taskID {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s Service) requireMember(ctx context.Context, projectID string, userID string) error {
	member, err := s.Members.IsProjectMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member {
		return domainerrors.ErrInvalidAssignee
	}
	return nil
}

// notify hands the event to the dispatcher. Failures are logged and
// swallowed; the mutation already committed.
func (s Service) notify(ctx context.Context, taskID string, userID string, eventType string, title string, message string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyTaskEvent(ctx, taskID, userID, eventType, title, message); err != nil {
		resolveLogger(s.Logger).Error("notification emission failed",
			"event", "task_notification_failed",
			"module", "work-tracking/task-service",
			"layer", "application",
			"task_id", taskID,
			"user_id", userID,
			"type", eventType,
			"error", err,
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
