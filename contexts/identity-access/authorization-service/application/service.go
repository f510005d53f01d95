package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "taskforge/contexts/identity-access/authorization-service/domain/errors"
	"taskforge/contexts/identity-access/authorization-service/ports"
	"taskforge/internal/shared/access"
)

// Service evaluates authentication and authorization decisions. It holds no
// state of its own; every decision reads through the directory ports.
type Service struct {
	Decoder  ports.TokenDecoder
	Users    ports.UserDirectory
	Projects ports.ProjectDirectory
	Logger   *slog.Logger
}

// Authenticate turns a bearer token into a live identity. Refresh tokens are
// rejected here; they open sessions, they never authorize requests.
func (s Service) Authenticate(ctx context.Context, token string) (access.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return access.Identity{}, domainerrors.ErrUnauthorized
	}

	claims, err := s.Decoder.DecodeToken(token)
	if err != nil {
		return access.Identity{}, err
	}
	if claims.TokenType == access.RefreshTokenType {
		return access.Identity{}, domainerrors.ErrUnauthorized
	}

	user, found, err := s.Users.LookupUser(ctx, claims.Subject)
	if err != nil {
		return access.Identity{}, err
	}
	if !found {
		return access.Identity{}, domainerrors.ErrUnauthorized
	}
	if !user.Active {
		return access.Identity{}, domainerrors.ErrUserDeactivated
	}

	// The directory row is authoritative for the role; a token minted
	// before a role change must not keep the old privileges.
	return access.Identity{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		Email:          user.Email,
	}, nil
}

// RequireRole checks the identity holds at least the required role rank.
func (s Service) RequireRole(identity access.Identity, required access.Role) error {
	if !identity.Role.AtLeast(required) {
		resolveLogger(s.Logger).Warn("role check failed",
			"event", "authorization_role_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"user_id", identity.UserID,
			"role", string(identity.Role),
			"required", string(required),
		)
		return domainerrors.ErrForbidden
	}
	return nil
}

// RequireProjectAccess checks the identity may touch a project. Tenancy is
// checked before membership so a foreign-organization project reads as not
// found, never as forbidden.
func (s Service) RequireProjectAccess(ctx context.Context, identity access.Identity, projectID string) error {
	project, found, err := s.Projects.LookupProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !found || project.OrganizationID != identity.OrganizationID {
		return domainerrors.ErrProjectNotFound
	}

	// Managers and admins hold organization-wide project access.
	if identity.Role.AtLeast(access.RoleManager) {
		return nil
	}

	member, err := s.Projects.IsProjectMember(ctx, projectID, identity.UserID)
	if err != nil {
		return err
	}
	if !member {
		return domainerrors.ErrForbidden
	}
	return nil
}
