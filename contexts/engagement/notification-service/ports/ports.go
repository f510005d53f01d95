package ports

import (
	"context"
	"time"

	"taskforge/contexts/engagement/notification-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new notifications.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Notifications is the notification persistence boundary.
type Notifications interface {
	CreateNotification(ctx context.Context, notification entities.Notification) error
	FindNotificationByID(ctx context.Context, id string) (entities.Notification, bool, error)
	ListNotificationsByUser(ctx context.Context, userID string) ([]entities.Notification, error)
	SaveNotification(ctx context.Context, notification entities.Notification) error
}

// Cache is the advisory read-view cache. Values are opaque bytes; a miss is
// (nil, false, nil). Failures here must never fail the caller's operation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
