package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskforge/contexts/work-tracking/task-service/domain/entities"
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

func (r *Repository) CreateTask(ctx context.Context, task entities.Task) error {
	row := taskModelFromEntity(task)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindTaskByID(ctx context.Context, id string) (entities.Task, bool, error) {
	var row taskModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, false, nil
		}
		return entities.Task{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListTasksByProject(ctx context.Context, projectID string) ([]entities.Task, error) {
	var rows []taskModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) SaveTask(ctx context.Context, task entities.Task) error {
	row := taskModelFromEntity(task)
	return r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", task.ID).
		Select("*").
		Updates(&row).
		Error
}

// DeleteTask removes the task row. Comments and notifications referencing
// it go with it through ON DELETE CASCADE in the schema.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&taskModel{}).
		Error
}

func (r *Repository) CreateComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindCommentByID(ctx context.Context, id string) (entities.Comment, bool, error) {
	var row commentModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comment{}, false, nil
		}
		return entities.Comment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListCommentsByTask(ctx context.Context, taskID string) ([]entities.Comment, error) {
	var rows []commentModel
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) SaveComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	return r.db.WithContext(ctx).
		Model(&commentModel{}).
		Where("id = ?", comment.ID).
		Select("*").
		Updates(&row).
		Error
}

func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&commentModel{}).
		Error
}

type taskModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	ProjectID   string     `gorm:"column:project_id"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	Priority    string     `gorm:"column:priority"`
	AssigneeID  *string    `gorm:"column:assignee_id"`
	CreatedBy   string     `gorm:"column:created_by"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func taskModelFromEntity(item entities.Task) taskModel {
	row := taskModel{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		Priority:    string(item.Priority),
		CreatedBy:   item.CreatedBy,
		DueDate:     item.DueDate,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
	if item.AssigneeID != "" {
		assignee := item.AssigneeID
		row.AssigneeID = &assignee
	}
	return row
}

func (m taskModel) toEntity() entities.Task {
	item := entities.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entities.Status(m.Status),
		Priority:    entities.Priority(m.Priority),
		CreatedBy:   m.CreatedBy,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.AssigneeID != nil {
		item.AssigneeID = *m.AssigneeID
	}
	return item
}

type commentModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	TaskID    string    `gorm:"column:task_id"`
	AuthorID  string    `gorm:"column:author_id"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (commentModel) TableName() string {
	return "task_comments"
}

func commentModelFromEntity(item entities.Comment) commentModel {
	return commentModel{
		ID:        item.ID,
		TaskID:    item.TaskID,
		AuthorID:  item.AuthorID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		ID:        m.ID,
		TaskID:    m.TaskID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// SystemClock satisfies the task service Clock port for runtime wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies the IDGenerator port for runtime wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
