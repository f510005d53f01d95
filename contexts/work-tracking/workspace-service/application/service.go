package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/work-tracking/workspace-service/domain/entities"
	domainerrors "taskforge/contexts/work-tracking/workspace-service/domain/errors"
	"taskforge/contexts/work-tracking/workspace-service/ports"
	"taskforge/internal/shared/access"
)

// Service owns organizations listing, project lifecycle and membership
// edges. All project reads and writes are scoped to the caller's
// organization; a foreign project reads as not found.
type Service struct {
	Projects      ports.Projects
	Organizations ports.OrganizationCatalog
	Users         ports.UserDirectory
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (s Service) ListOrganizations(ctx context.Context) ([]access.OrganizationRecord, error) {
	return s.Organizations.ListOrganizations(ctx)
}

// CreateProject requires manager or admin. The creator is added as a member
// so demotion to member later does not lock them out of their own project.
func (s Service) CreateProject(ctx context.Context, identity access.Identity, name string, description string) (entities.Project, error) {
	if !identity.Role.AtLeast(access.RoleManager) {
		return entities.Project{}, domainerrors.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Project{}, domainerrors.ErrInvalidInput
	}

	projectID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	now := s.now()
	project := entities.Project{
		ID:             projectID,
		OrganizationID: identity.OrganizationID,
		Name:           name,
		Description:    strings.TrimSpace(description),
		CreatedBy:      identity.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Projects.CreateProject(ctx, project); err != nil {
		return entities.Project{}, fmt.Errorf("create project: %w", err)
	}
	if err := s.Projects.AddMember(ctx, entities.ProjectMember{
		ProjectID: project.ID,
		UserID:    identity.UserID,
		AddedAt:   now,
	}); err != nil {
		return entities.Project{}, fmt.Errorf("add creator membership: %w", err)
	}

	resolveLogger(s.Logger).Info("project created",
		"event", "workspace_project_created",
		"module", "work-tracking/workspace-service",
		"layer", "application",
		"project_id", project.ID,
		"organization_id", project.OrganizationID,
		"created_by", identity.UserID,
	)
	return project, nil
}

func (s Service) ListProjects(ctx context.Context, identity access.Identity) ([]entities.Project, error) {
	return s.Projects.ListProjectsByOrganization(ctx, identity.OrganizationID)
}

// DeleteProject requires manager or admin. The repository cascades the
// delete to membership edges and tasks.
func (s Service) DeleteProject(ctx context.Context, identity access.Identity, projectID string) error {
	if !identity.Role.AtLeast(access.RoleManager) {
		return domainerrors.ErrForbidden
	}
	if _, err := s.ownProject(ctx, identity, projectID); err != nil {
		return err
	}
	if err := s.Projects.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	resolveLogger(s.Logger).Info("project deleted",
		"event", "workspace_project_deleted",
		"module", "work-tracking/workspace-service",
		"layer", "application",
		"project_id", projectID,
		"deleted_by", identity.UserID,
	)
	return nil
}

// AddMember requires manager or admin. The target must be an account in the
// same organization. Re-adding an existing member is a no-op.
func (s Service) AddMember(ctx context.Context, identity access.Identity, projectID string, userID string) error {
	if !identity.Role.AtLeast(access.RoleManager) {
		return domainerrors.ErrForbidden
	}
	if _, err := s.ownProject(ctx, identity, projectID); err != nil {
		return err
	}

	target, found, err := s.Users.LookupUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !found || target.OrganizationID != identity.OrganizationID {
		return domainerrors.ErrUserNotFound
	}

	if err := s.Projects.AddMember(ctx, entities.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		AddedAt:   s.now(),
	}); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// RemoveMember requires manager or admin. Removing a user without an edge
// is reported as not found.
func (s Service) RemoveMember(ctx context.Context, identity access.Identity, projectID string, userID string) error {
	if !identity.Role.AtLeast(access.RoleManager) {
		return domainerrors.ErrForbidden
	}
	if _, err := s.ownProject(ctx, identity, projectID); err != nil {
		return err
	}

	removed, err := s.Projects.RemoveMember(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if !removed {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

// ListMembers is open to any caller with project access; members need their
// own membership edge.
func (s Service) ListMembers(ctx context.Context, identity access.Identity, projectID string) ([]entities.ProjectMember, error) {
	if _, err := s.ownProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	if !identity.Role.AtLeast(access.RoleManager) {
		member, err := s.Projects.IsProjectMember(ctx, projectID, identity.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domainerrors.ErrForbidden
		}
	}
	return s.Projects.ListMembers(ctx, projectID)
}

// ownProject resolves a project and enforces tenancy. Absence and a foreign
// organization are indistinguishable to the caller.
func (s Service) ownProject(ctx context.Context, identity access.Identity, projectID string) (entities.Project, error) {
	project, found, err := s.Projects.FindProjectByID(ctx, projectID)
	if err != nil {
		return entities.Project{}, fmt.Errorf("find project: %w", err)
	}
	if !found || project.OrganizationID != identity.OrganizationID {
		return entities.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
