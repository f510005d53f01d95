package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	taskerrors "taskforge/contexts/work-tracking/task-service/domain/errors"
	taskhttp "taskforge/contexts/work-tracking/task-service/transport/http"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	var req taskhttp.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tasks.Handler.CreateTaskHandler(r.Context(), identity, r.PathValue("project_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	resp, err := s.tasks.Handler.ListTasksHandler(r.Context(), identity, r.PathValue("project_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	resp, err := s.tasks.Handler.GetTaskHandler(r.Context(), identity, r.PathValue("task_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	var req taskhttp.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tasks.Handler.UpdateTaskHandler(r.Context(), identity, r.PathValue("task_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	resp, err := s.tasks.Handler.DeleteTaskHandler(r.Context(), identity, r.PathValue("task_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	var req taskhttp.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tasks.Handler.AddCommentHandler(r.Context(), identity, r.PathValue("task_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	resp, err := s.tasks.Handler.ListCommentsHandler(r.Context(), identity, r.PathValue("task_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	var req taskhttp.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tasks.Handler.UpdateCommentHandler(r.Context(), identity, r.PathValue("task_id"), r.PathValue("comment_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	resp, err := s.tasks.Handler.DeleteCommentHandler(r.Context(), identity, r.PathValue("task_id"), r.PathValue("comment_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTaskDomainError(w http.ResponseWriter, err error) {
	if status, code, ok := accessErrorStatus(err); ok {
		writeTaskError(w, status, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, taskerrors.ErrInvalidInput):
		writeTaskError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, taskerrors.ErrInvalidTransition):
		writeTaskError(w, http.StatusBadRequest, "invalid_transition", err.Error())
	case errors.Is(err, taskerrors.ErrInvalidAssignee):
		writeTaskError(w, http.StatusBadRequest, "invalid_assignee", err.Error())
	case errors.Is(err, taskerrors.ErrForbidden):
		writeTaskError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, taskerrors.ErrTaskNotFound):
		writeTaskError(w, http.StatusNotFound, "task_not_found", err.Error())
	case errors.Is(err, taskerrors.ErrCommentNotFound):
		writeTaskError(w, http.StatusNotFound, "comment_not_found", err.Error())
	default:
		writeTaskError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTaskError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, taskhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
