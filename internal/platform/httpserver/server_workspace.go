package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	workspaceerrors "taskforge/contexts/work-tracking/workspace-service/domain/errors"
	workspacehttp "taskforge/contexts/work-tracking/workspace-service/transport/http"
)

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workspace.Handler.ListOrganizationsHandler(r.Context())
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	var req workspacehttp.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkspaceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.workspace.Handler.CreateProjectHandler(r.Context(), identity, req)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	resp, err := s.workspace.Handler.ListProjectsHandler(r.Context(), identity)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	resp, err := s.workspace.Handler.DeleteProjectHandler(r.Context(), identity, r.PathValue("project_id"))
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	resp, err := s.workspace.Handler.ListMembersHandler(r.Context(), identity, r.PathValue("project_id"))
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	resp, err := s.workspace.Handler.AddMemberHandler(r.Context(), identity, r.PathValue("project_id"), r.PathValue("user_id"))
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	resp, err := s.workspace.Handler.RemoveMemberHandler(r.Context(), identity, r.PathValue("project_id"), r.PathValue("user_id"))
	if err != nil {
		writeWorkspaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWorkspaceDomainError(w http.ResponseWriter, err error) {
	if status, code, ok := accessErrorStatus(err); ok {
		writeWorkspaceError(w, status, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, workspaceerrors.ErrInvalidInput):
		writeWorkspaceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, workspaceerrors.ErrForbidden):
		writeWorkspaceError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, workspaceerrors.ErrProjectNotFound):
		writeWorkspaceError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, workspaceerrors.ErrUserNotFound):
		writeWorkspaceError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, workspaceerrors.ErrMemberNotFound):
		writeWorkspaceError(w, http.StatusNotFound, "member_not_found", err.Error())
	default:
		writeWorkspaceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWorkspaceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, workspacehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
