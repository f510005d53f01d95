package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/work-tracking/task-service/application"
	"taskforge/contexts/work-tracking/task-service/domain/entities"
	domainerrors "taskforge/contexts/work-tracking/task-service/domain/errors"
	httptransport "taskforge/contexts/work-tracking/task-service/transport/http"
	"taskforge/internal/shared/access"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateTaskHandler(ctx context.Context, identity access.Identity, projectID string, req httptransport.CreateTaskRequest) (httptransport.TaskResponse, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	item, err := h.Service.CreateTask(ctx, identity, application.CreateTaskCommand{
		ProjectID:   strings.TrimSpace(projectID),
		Title:       req.Title,
		Description: req.Description,
		Priority:    entities.Priority(req.Priority),
		AssigneeID:  strings.TrimSpace(req.AssigneeID),
		DueDate:     dueDate,
	})
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Status: "success", Data: taskData(item)}, nil
}

func (h Handler) ListTasksHandler(ctx context.Context, identity access.Identity, projectID string) (httptransport.TasksResponse, error) {
	items, err := h.Service.ListTasks(ctx, identity, strings.TrimSpace(projectID))
	if err != nil {
		return httptransport.TasksResponse{}, err
	}
	resp := httptransport.TasksResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Tasks = append(resp.Data.Tasks, taskData(item))
	}
	return resp, nil
}

func (h Handler) GetTaskHandler(ctx context.Context, identity access.Identity, taskID string) (httptransport.TaskResponse, error) {
	item, err := h.Service.GetTask(ctx, identity, strings.TrimSpace(taskID))
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Status: "success", Data: taskData(item)}, nil
}

func (h Handler) UpdateTaskHandler(ctx context.Context, identity access.Identity, taskID string, req httptransport.UpdateTaskRequest) (httptransport.TaskResponse, error) {
	cmd := application.UpdateTaskCommand{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := entities.Status(*req.Status)
		cmd.Status = &status
	}
	if req.Priority != nil {
		priority := entities.Priority(*req.Priority)
		cmd.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return httptransport.TaskResponse{}, err
		}
		cmd.DueDate = dueDate
	}
	if req.AssigneeID != nil {
		assignee := strings.TrimSpace(*req.AssigneeID)
		cmd.AssigneeID = &assignee
	}

	item, err := h.Service.UpdateTask(ctx, identity, strings.TrimSpace(taskID), cmd)
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Status: "success", Data: taskData(item)}, nil
}

func (h Handler) DeleteTaskHandler(ctx context.Context, identity access.Identity, taskID string) (httptransport.DeletedResponse, error) {
	if err := h.Service.DeleteTask(ctx, identity, strings.TrimSpace(taskID)); err != nil {
		return httptransport.DeletedResponse{}, err
	}
	resp := httptransport.DeletedResponse{Status: "success"}
	resp.Data.Deleted = true
	return resp, nil
}

func (h Handler) AddCommentHandler(ctx context.Context, identity access.Identity, taskID string, req httptransport.CommentRequest) (httptransport.CommentResponse, error) {
	item, err := h.Service.AddComment(ctx, identity, strings.TrimSpace(taskID), req.Content)
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return httptransport.CommentResponse{Status: "success", Data: commentData(item)}, nil
}

func (h Handler) ListCommentsHandler(ctx context.Context, identity access.Identity, taskID string) (httptransport.CommentsResponse, error) {
	items, err := h.Service.ListComments(ctx, identity, strings.TrimSpace(taskID))
	if err != nil {
		return httptransport.CommentsResponse{}, err
	}
	resp := httptransport.CommentsResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Comments = append(resp.Data.Comments, commentData(item))
	}
	return resp, nil
}

func (h Handler) UpdateCommentHandler(ctx context.Context, identity access.Identity, taskID string, commentID string, req httptransport.CommentRequest) (httptransport.CommentResponse, error) {
	item, err := h.Service.UpdateComment(ctx, identity, strings.TrimSpace(taskID), strings.TrimSpace(commentID), req.Content)
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return httptransport.CommentResponse{Status: "success", Data: commentData(item)}, nil
}

func (h Handler) DeleteCommentHandler(ctx context.Context, identity access.Identity, taskID string, commentID string) (httptransport.DeletedResponse, error) {
	if err := h.Service.DeleteComment(ctx, identity, strings.TrimSpace(taskID), strings.TrimSpace(commentID)); err != nil {
		return httptransport.DeletedResponse{}, err
	}
	resp := httptransport.DeletedResponse{Status: "success"}
	resp.Data.Deleted = true
	return resp, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Date-only form, matching the persisted column type.
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
	}
	utc := parsed.UTC()
	return &utc, nil
}

func taskData(item entities.Task) httptransport.TaskData {
	data := httptransport.TaskData{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		Priority:    string(item.Priority),
		AssigneeID:  item.AssigneeID,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.DueDate != nil {
		data.DueDate = item.DueDate.UTC().Format(time.RFC3339)
	}
	return data
}

func commentData(item entities.Comment) httptransport.CommentData {
	return httptransport.CommentData{
		ID:        item.ID,
		TaskID:    item.TaskID,
		AuthorID:  item.AuthorID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
