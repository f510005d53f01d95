package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskforge/contexts/work-tracking/workspace-service/domain/entities"
	"taskforge/internal/shared/access"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateProject(ctx context.Context, project entities.Project) error {
	row := projectModelFromEntity(project)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindProjectByID(ctx context.Context, id string) (entities.Project, bool, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Project{}, false, nil
		}
		return entities.Project{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListProjectsByOrganization(ctx context.Context, organizationID string) ([]entities.Project, error) {
	var rows []projectModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// DeleteProject removes the project row. Membership edges, tasks and
// comments go with it through ON DELETE CASCADE in the schema.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&projectModel{}).
		Error
}

// AddMember is an upsert; re-adding an existing member is a no-op.
func (r *Repository) AddMember(ctx context.Context, member entities.ProjectMember) error {
	row := projectMemberModel{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		AddedAt:   member.AddedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).
		Error
}

func (r *Repository) RemoveMember(ctx context.Context, projectID string, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projectMemberModel{})
	return result.RowsAffected > 0, result.Error
}

func (r *Repository) ListMembers(ctx context.Context, projectID string) ([]entities.ProjectMember, error) {
	var rows []projectMemberModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("added_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.ProjectMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.ProjectMember{
			ProjectID: row.ProjectID,
			UserID:    row.UserID,
			AddedAt:   row.AddedAt.UTC(),
		})
	}
	return out, nil
}

func (r *Repository) IsProjectMember(ctx context.Context, projectID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&projectMemberModel{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).
		Error
	return count > 0, err
}

// LookupProject serves cross-module directory ports with a shared-kernel
// view of the project row.
func (r *Repository) LookupProject(ctx context.Context, projectID string) (access.ProjectRef, bool, error) {
	project, found, err := r.FindProjectByID(ctx, projectID)
	if err != nil || !found {
		return access.ProjectRef{}, found, err
	}
	return access.ProjectRef{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
	}, true, nil
}

type projectModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	CreatedBy      string    `gorm:"column:created_by"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func projectModelFromEntity(item entities.Project) projectModel {
	return projectModel{
		ID:             item.ID,
		OrganizationID: item.OrganizationID,
		Name:           item.Name,
		Description:    item.Description,
		CreatedBy:      item.CreatedBy,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type projectMemberModel struct {
	ProjectID string    `gorm:"column:project_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	AddedAt   time.Time `gorm:"column:added_at"`
}

func (projectMemberModel) TableName() string {
	return "project_members"
}

// SystemClock satisfies the workspace service Clock port for runtime wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies the IDGenerator port for runtime wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
