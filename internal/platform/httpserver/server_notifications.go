package httpserver

import (
	"errors"
	"net/http"

	notiferrors "taskforge/contexts/engagement/notification-service/domain/errors"
	notifhttp "taskforge/contexts/engagement/notification-service/transport/http"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	resp, err := s.notifications.Handler.ListNotificationsHandler(r.Context(), identity.UserID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	resp, err := s.notifications.Handler.MarkReadHandler(r.Context(), identity.UserID, r.PathValue("notification_id"))
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	if status, code, ok := accessErrorStatus(err); ok {
		writeNotificationError(w, status, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, notiferrors.ErrNotificationNotFound):
		writeNotificationError(w, http.StatusNotFound, "notification_not_found", err.Error())
	case errors.Is(err, notiferrors.ErrInvalidType):
		writeNotificationError(w, http.StatusBadRequest, "invalid_type", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notifhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
