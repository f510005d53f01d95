package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"taskforge/contexts/identity-access/session-service/domain/entities"
	domainerrors "taskforge/contexts/identity-access/session-service/domain/errors"
	"taskforge/internal/shared/access"
)

const uniqueViolationCode = "23505"

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

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		// The unique index on email backs the uniqueness check under
		// concurrent registrations.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id string) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateOrganization(ctx context.Context, org access.OrganizationRecord) error {
	row := organizationModel{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		CreatedAt:   org.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindOrganizationByID(ctx context.Context, id string) (access.OrganizationRecord, bool, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.OrganizationRecord{}, false, nil
		}
		return access.OrganizationRecord{}, false, err
	}
	return access.OrganizationRecord{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt.UTC(),
	}, true, nil
}

// ListOrganizations returns every tenant row ordered by creation time.
// Serves the workspace module's organization catalog port.
func (r *Repository) ListOrganizations(ctx context.Context) ([]access.OrganizationRecord, error) {
	var rows []organizationModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]access.OrganizationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, access.OrganizationRecord{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

// LookupUser serves cross-module directory ports with a shared-kernel view
// of the account row.
func (r *Repository) LookupUser(ctx context.Context, id string) (access.UserRecord, bool, error) {
	user, found, err := r.FindUserByID(ctx, id)
	if err != nil || !found {
		return access.UserRecord{}, found, err
	}
	return access.UserRecord{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		Active:         user.Active,
	}, true, nil
}

type userModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Email          string    `gorm:"column:email"`
	PasswordHash   string    `gorm:"column:password_hash"`
	FullName       string    `gorm:"column:full_name"`
	Role           string    `gorm:"column:role"`
	OrganizationID string    `gorm:"column:organization_id"`
	Active         bool      `gorm:"column:active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		ID:             item.ID,
		Email:          item.Email,
		PasswordHash:   item.PasswordHash,
		FullName:       item.FullName,
		Role:           string(item.Role),
		OrganizationID: item.OrganizationID,
		Active:         item.Active,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:             m.ID,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		FullName:       m.FullName,
		Role:           access.Role(m.Role),
		OrganizationID: m.OrganizationID,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type organizationModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (organizationModel) TableName() string {
	return "organizations"
}

// SystemClock satisfies the session service Clock port for runtime wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies the IDGenerator port for runtime wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
