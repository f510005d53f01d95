package ports

import (
	"context"
	"time"

	"taskforge/contexts/work-tracking/workspace-service/domain/entities"
	"taskforge/internal/shared/access"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new projects.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Projects is the project and membership persistence boundary. DeleteProject
// cascades to membership edges.
type Projects interface {
	CreateProject(ctx context.Context, project entities.Project) error
	FindProjectByID(ctx context.Context, id string) (entities.Project, bool, error)
	ListProjectsByOrganization(ctx context.Context, organizationID string) ([]entities.Project, error)
	DeleteProject(ctx context.Context, id string) error
	AddMember(ctx context.Context, member entities.ProjectMember) error
	RemoveMember(ctx context.Context, projectID string, userID string) (bool, error)
	ListMembers(ctx context.Context, projectID string) ([]entities.ProjectMember, error)
	IsProjectMember(ctx context.Context, projectID string, userID string) (bool, error)
}

// OrganizationCatalog lists tenant rows. Satisfied by the session service
// adapters.
type OrganizationCatalog interface {
	ListOrganizations(ctx context.Context) ([]access.OrganizationRecord, error)
}

// UserDirectory resolves accounts for member-target validation. Satisfied by
// the session service adapters.
type UserDirectory interface {
	LookupUser(ctx context.Context, id string) (access.UserRecord, bool, error)
}
