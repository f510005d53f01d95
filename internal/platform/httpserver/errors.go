package httpserver

import (
	"errors"
	"net/http"

	authzerrors "taskforge/contexts/identity-access/authorization-service/domain/errors"
	tokenerrors "taskforge/contexts/identity-access/token-service/domain/errors"
)

// accessErrorStatus maps the token and authorization failures that can
// surface from any authenticated route. Returns ok=false when err belongs
// to a module-specific taxonomy instead.
func accessErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, tokenerrors.ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired", true
	case errors.Is(err, tokenerrors.ErrTokenInvalid):
		return http.StatusUnauthorized, "token_invalid", true
	case errors.Is(err, tokenerrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "token_revoked", true
	case errors.Is(err, authzerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized", true
	case errors.Is(err, authzerrors.ErrUserDeactivated):
		return http.StatusForbidden, "user_deactivated", true
	case errors.Is(err, authzerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden", true
	case errors.Is(err, authzerrors.ErrProjectNotFound):
		return http.StatusNotFound, "project_not_found", true
	}
	return 0, "", false
}
