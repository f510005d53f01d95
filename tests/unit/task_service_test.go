package unit

import (
	"context"
	"errors"
	"testing"

	notifentities "taskforge/contexts/engagement/notification-service/domain/entities"
	autherrors "taskforge/contexts/identity-access/authorization-service/domain/errors"
	"taskforge/internal/shared/access"

	taskapp "taskforge/contexts/work-tracking/task-service/application"
	taskentities "taskforge/contexts/work-tracking/task-service/domain/entities"
	taskerrors "taskforge/contexts/work-tracking/task-service/domain/errors"
)

// taskFixture sets up an organization with an admin, a project member who
// holds a membership edge, and one project.
type taskFixture struct {
	env     testEnv
	admin   access.Identity
	member  access.Identity
	project string
}

func newTaskFixture(t *testing.T, ctx context.Context) taskFixture {
	t.Helper()
	env := newTestEnv()

	_, admin := env.registerAdmin(t, ctx, "founder@acme.test", "Acme")
	_, member := env.registerMember(t, ctx, "dev@acme.test", admin.OrganizationID)

	project, err := env.workspace.Service.CreateProject(ctx, admin, "Launch", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := env.workspace.Service.AddMember(ctx, admin, project.ID, member.UserID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	return taskFixture{env: env, admin: admin, member: member, project: project.ID}
}

func (f taskFixture) notificationsFor(t *testing.T, ctx context.Context, userID string) []notifentities.Notification {
	t.Helper()
	list, err := f.env.notifications.Service.ListForUser(ctx, userID)
	if err != nil {
		t.Fatalf("list notifications for %s: %v", userID, err)
	}
	return list
}

func strptr(s string) *string { return &s }

func statusPtr(s taskentities.Status) *taskentities.Status { return &s }

func priorityPtr(p taskentities.Priority) *taskentities.Priority { return &p }

func TestCreateTaskDefaultsAndAssignmentNotification(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "  Ship the release  ",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != taskentities.StatusTodo {
		t.Fatalf("new tasks must start at todo, got %q", task.Status)
	}
	if task.Priority != taskentities.PriorityMedium {
		t.Fatalf("expected default medium priority, got %q", task.Priority)
	}
	if task.Title != "Ship the release" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}

	notifs := f.notificationsFor(t, ctx, f.member.UserID)
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification for assignee, got %d", len(notifs))
	}
	if notifs[0].Type != notifentities.TypeTaskAssigned {
		t.Fatalf("expected task_assigned, got %q", notifs[0].Type)
	}
	if notifs[0].TaskID != task.ID {
		t.Fatalf("notification must reference the task")
	}
	if got := f.notificationsFor(t, ctx, f.admin.UserID); len(got) != 0 {
		t.Fatalf("creator must not be notified, got %d", len(got))
	}
}

func TestCreateTaskSelfAssignmentSkipsNotification(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	_, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Prep the demo",
		AssigneeID: f.admin.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if got := f.notificationsFor(t, ctx, f.admin.UserID); len(got) != 0 {
		t.Fatalf("self-assignment must not notify, got %d", len(got))
	}
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	if _, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "   ",
	}); !errors.Is(err, taskerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank title, got %v", err)
	}

	if _, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
		Priority:  taskentities.Priority("urgent"),
	}); !errors.Is(err, taskerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown priority, got %v", err)
	}

	// Assignee without a membership edge.
	_, stranger := f.env.registerMember(t, ctx, "new@acme.test", f.admin.OrganizationID)
	if _, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: stranger.UserID,
	}); !errors.Is(err, taskerrors.ErrInvalidAssignee) {
		t.Fatalf("expected invalid assignee, got %v", err)
	}
}

func TestCreateTaskMemberForbidden(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	if _, err := f.env.tasks.Service.CreateTask(ctx, f.member, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
	}); !errors.Is(err, taskerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member, got %v", err)
	}
}

func TestStatusStateMachine(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Skipping a state is not a legal move.
	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusDone),
	}); !errors.Is(err, taskerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition todo->done, got %v", err)
	}
	// Self-transition is not a legal move either.
	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusTodo),
	}); !errors.Is(err, taskerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition todo->todo, got %v", err)
	}
	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.Status("archived")),
	}); !errors.Is(err, taskerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}

	updated, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("todo->in_progress: %v", err)
	}
	updated, err = f.env.tasks.Service.UpdateTask(ctx, f.admin, updated.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusDone),
	})
	if err != nil {
		t.Fatalf("in_progress->done: %v", err)
	}

	// done is terminal.
	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, updated.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusInProgress),
	}); !errors.Is(err, taskerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition out of done, got %v", err)
	}
}

func TestRejectedUpdateChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Original title",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// A valid title rides along with an illegal transition; the whole
	// update must be rejected atomically.
	_, err = f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Title:  strptr("New title"),
		Status: statusPtr(taskentities.StatusDone),
	})
	if !errors.Is(err, taskerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	reloaded, err := f.env.tasks.Service.GetTask(ctx, f.admin, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if reloaded.Title != "Original title" {
		t.Fatalf("rejected update must leave the task untouched, got title %q", reloaded.Title)
	}
}

func TestUpdateStatusNotifiesAssignee(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Status: statusPtr(taskentities.StatusInProgress),
	}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	notifs := f.notificationsFor(t, ctx, f.member.UserID)
	if len(notifs) != 2 {
		t.Fatalf("expected assignment plus status change, got %d", len(notifs))
	}
	var sawStatusChange bool
	for _, n := range notifs {
		if n.Type == notifentities.TypeTaskStatusChanged {
			sawStatusChange = true
		}
	}
	if !sawStatusChange {
		t.Fatalf("expected a task_status_changed notification")
	}
}

func TestReassignmentNotifiesBothParties(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	_, second := f.env.registerMember(t, ctx, "dev2@acme.test", f.admin.OrganizationID)
	if err := f.env.workspace.Service.AddMember(ctx, f.admin, f.project, second.UserID); err != nil {
		t.Fatalf("add second member: %v", err)
	}

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		AssigneeID: strptr(second.UserID),
	}); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	secondNotifs := f.notificationsFor(t, ctx, second.UserID)
	if len(secondNotifs) != 1 || secondNotifs[0].Type != notifentities.TypeTaskAssigned {
		t.Fatalf("expected one task_assigned for the new assignee, got %+v", secondNotifs)
	}

	firstNotifs := f.notificationsFor(t, ctx, f.member.UserID)
	if len(firstNotifs) != 2 {
		t.Fatalf("expected assignment plus reassignment notice, got %d", len(firstNotifs))
	}
	if firstNotifs[0].Title != "Task Reassigned" {
		t.Fatalf("expected the newest notification to be the reassignment notice, got %q", firstNotifs[0].Title)
	}
}

func TestDeleteTaskNotifiesAssignee(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := f.env.tasks.Service.DeleteTask(ctx, f.admin, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := f.env.tasks.Service.GetTask(ctx, f.admin, task.ID); !errors.Is(err, taskerrors.ErrTaskNotFound) {
		t.Fatalf("expected task not found after delete, got %v", err)
	}

	notifs := f.notificationsFor(t, ctx, f.member.UserID)
	if len(notifs) != 2 {
		t.Fatalf("expected assignment plus deletion notice, got %d", len(notifs))
	}
	if notifs[0].Title != "Task Deleted" {
		t.Fatalf("expected the newest notification to be the deletion notice, got %q", notifs[0].Title)
	}
}

func TestDeleteTaskMemberForbidden(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := f.env.tasks.Service.DeleteTask(ctx, f.member, task.ID); !errors.Is(err, taskerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for member, got %v", err)
	}
}

func TestForeignOrganizationReadsTaskAsMissingProject(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	_, outsider := f.env.registerAdmin(t, ctx, "founder@globex.test", "Globex")
	if _, err := f.env.tasks.Service.GetTask(ctx, outsider, task.ID); !errors.Is(err, autherrors.ErrProjectNotFound) {
		t.Fatalf("expected not found for foreign org, got %v", err)
	}
	if _, err := f.env.tasks.Service.ListTasks(ctx, outsider, f.project); !errors.Is(err, autherrors.ErrProjectNotFound) {
		t.Fatalf("expected not found for foreign list, got %v", err)
	}
}

func TestCommentNotifications(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// The assignee comments: only the creator is notified.
	if _, err := f.env.tasks.Service.AddComment(ctx, f.member, task.ID, "on it"); err != nil {
		t.Fatalf("assignee comment: %v", err)
	}
	adminNotifs := f.notificationsFor(t, ctx, f.admin.UserID)
	if len(adminNotifs) != 1 || adminNotifs[0].Type != notifentities.TypeTaskCommentAdded {
		t.Fatalf("expected one comment notification for creator, got %+v", adminNotifs)
	}

	// The creator comments: only the assignee is notified.
	if _, err := f.env.tasks.Service.AddComment(ctx, f.admin, task.ID, "thanks"); err != nil {
		t.Fatalf("creator comment: %v", err)
	}
	memberNotifs := f.notificationsFor(t, ctx, f.member.UserID)
	var commentCount int
	for _, n := range memberNotifs {
		if n.Type == notifentities.TypeTaskCommentAdded {
			commentCount++
		}
	}
	if commentCount != 1 {
		t.Fatalf("expected one comment notification for assignee, got %d", commentCount)
	}
}

func TestCommentPermissions(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	_, second := f.env.registerMember(t, ctx, "dev2@acme.test", f.admin.OrganizationID)
	if err := f.env.workspace.Service.AddMember(ctx, f.admin, f.project, second.UserID); err != nil {
		t.Fatalf("add second member: %v", err)
	}

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Ship it",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	comment, err := f.env.tasks.Service.AddComment(ctx, f.member, task.ID, "first")
	if err != nil {
		t.Fatalf("member comment: %v", err)
	}
	if _, err := f.env.tasks.Service.AddComment(ctx, f.member, task.ID, "   "); !errors.Is(err, taskerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank comment, got %v", err)
	}

	// Another member cannot touch someone else's comment.
	if _, err := f.env.tasks.Service.UpdateComment(ctx, second, task.ID, comment.ID, "edited"); !errors.Is(err, taskerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-author member, got %v", err)
	}
	if err := f.env.tasks.Service.DeleteComment(ctx, second, task.ID, comment.ID); !errors.Is(err, taskerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-author delete, got %v", err)
	}

	// The author can edit; a manager can moderate.
	if _, err := f.env.tasks.Service.UpdateComment(ctx, f.member, task.ID, comment.ID, "edited by author"); err != nil {
		t.Fatalf("author edit: %v", err)
	}
	if err := f.env.tasks.Service.DeleteComment(ctx, f.admin, task.ID, comment.ID); err != nil {
		t.Fatalf("admin moderation delete: %v", err)
	}
	if _, err := f.env.tasks.Service.UpdateComment(ctx, f.member, task.ID, comment.ID, "gone"); !errors.Is(err, taskerrors.ErrCommentNotFound) {
		t.Fatalf("expected comment not found after delete, got %v", err)
	}
}

func TestCommentMustBelongToTask(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	taskA, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Task A",
	})
	if err != nil {
		t.Fatalf("create task A: %v", err)
	}
	taskB, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID: f.project,
		Title:     "Task B",
	})
	if err != nil {
		t.Fatalf("create task B: %v", err)
	}

	comment, err := f.env.tasks.Service.AddComment(ctx, f.admin, taskA.ID, "on A")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := f.env.tasks.Service.UpdateComment(ctx, f.admin, taskB.ID, comment.ID, "hijack"); !errors.Is(err, taskerrors.ErrCommentNotFound) {
		t.Fatalf("expected comment not found under the wrong task, got %v", err)
	}
}

func TestPriorityUpdateDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	updated, err := f.env.tasks.Service.UpdateTask(ctx, f.admin, task.ID, taskapp.UpdateTaskCommand{
		Priority: priorityPtr(taskentities.PriorityHigh),
	})
	if err != nil {
		t.Fatalf("update priority: %v", err)
	}
	if updated.Priority != taskentities.PriorityHigh {
		t.Fatalf("expected high priority, got %q", updated.Priority)
	}
	if got := f.notificationsFor(t, ctx, f.member.UserID); len(got) != 1 {
		t.Fatalf("priority change must not notify, got %d notifications", len(got))
	}
}

func TestNotificationFailureDoesNotBlockMutation(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t, ctx)

	f.env.notifications.Store.FailWrites(true)

	task, err := f.env.tasks.Service.CreateTask(ctx, f.admin, taskapp.CreateTaskCommand{
		ProjectID:  f.project,
		Title:      "Ship it",
		AssigneeID: f.member.UserID,
	})
	if err != nil {
		t.Fatalf("create task despite notification failure: %v", err)
	}

	f.env.notifications.Store.FailWrites(false)
	if _, err := f.env.tasks.Service.GetTask(ctx, f.admin, task.ID); err != nil {
		t.Fatalf("task must exist: %v", err)
	}
	if got := f.notificationsFor(t, ctx, f.member.UserID); len(got) != 0 {
		t.Fatalf("expected dropped notification, got %d", len(got))
	}
}
