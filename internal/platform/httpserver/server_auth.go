package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	sessionerrors "taskforge/contexts/identity-access/session-service/domain/errors"
	sessionhttp "taskforge/contexts/identity-access/session-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.RefreshHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.LogoutHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	resp, err := s.sessions.Handler.MeHandler(r.Context(), identity.UserID)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthDomainError(w http.ResponseWriter, err error) {
	if status, code, ok := accessErrorStatus(err); ok {
		writeAuthError(w, status, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, sessionerrors.ErrInvalidInput),
		errors.Is(err, sessionerrors.ErrOrganizationNameNeeded):
		writeAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, sessionerrors.ErrEmailTaken):
		writeAuthError(w, http.StatusBadRequest, "email_taken", err.Error())
	case errors.Is(err, sessionerrors.ErrInvalidCredentials):
		writeAuthError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, sessionerrors.ErrNotRefreshToken):
		writeAuthError(w, http.StatusUnauthorized, "not_refresh_token", err.Error())
	case errors.Is(err, sessionerrors.ErrUnauthorized):
		writeAuthError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, sessionerrors.ErrUserDeactivated):
		writeAuthError(w, http.StatusForbidden, "user_deactivated", err.Error())
	case errors.Is(err, sessionerrors.ErrOrganizationNotFound):
		writeAuthError(w, http.StatusNotFound, "organization_not_found", err.Error())
	default:
		writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
