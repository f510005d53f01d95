package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskforge/contexts/engagement/notification-service/domain/entities"
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

func (r *Repository) CreateNotification(ctx context.Context, notification entities.Notification) error {
	row := notificationModelFromEntity(notification)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindNotificationByID(ctx context.Context, id string) (entities.Notification, bool, error) {
	var row notificationModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, false, nil
		}
		return entities.Notification{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) SaveNotification(ctx context.Context, notification entities.Notification) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ?", notification.ID).
		Update("is_read", notification.IsRead).
		Error
}

type notificationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	TaskID    string    `gorm:"column:task_id"`
	Type      string    `gorm:"column:type"`
	Title     string    `gorm:"column:title"`
	Message   string    `gorm:"column:message"`
	IsRead    bool      `gorm:"column:is_read"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "notifications"
}

func notificationModelFromEntity(item entities.Notification) notificationModel {
	return notificationModel{
		ID:        item.ID,
		UserID:    item.UserID,
		TaskID:    item.TaskID,
		Type:      string(item.Type),
		Title:     item.Title,
		Message:   item.Message,
		IsRead:    item.IsRead,
		CreatedAt: item.CreatedAt.UTC(),
	}
}

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		TaskID:    m.TaskID,
		Type:      entities.Type(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// SystemClock satisfies the notification service Clock port for runtime
// wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies the IDGenerator port for runtime wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
