package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"taskforge/contexts/engagement/notification-service/domain/entities"
	domainerrors "taskforge/contexts/engagement/notification-service/domain/errors"
	"taskforge/contexts/engagement/notification-service/ports"
)

const defaultCacheTTL = 60 * time.Second

// Service records notification events and serves per-user lists through an
// advisory read-through cache. Writes invalidate the owner's cache entry
// synchronously; reads may be stale up to the TTL.
type Service struct {
	Notifications ports.Notifications
	Cache         ports.Cache
	CacheTTL      time.Duration
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

// NotifyTaskEvent records an immutable notification. Storage failure is
// logged and swallowed; the triggering mutation already succeeded and must
// not observe a failure here.
func (s Service) NotifyTaskEvent(ctx context.Context, taskID string, userID string, eventType string, title string, message string) error {
	notifType := entities.Type(eventType)
	if !notifType.Valid() {
		return domainerrors.ErrInvalidType
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		s.logEmissionFailure(userID, eventType, err)
		return nil
	}
	notification := entities.Notification{
		ID:        id,
		UserID:    userID,
		TaskID:    taskID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		IsRead:    false,
		CreatedAt: s.now(),
	}
	if err := s.Notifications.CreateNotification(ctx, notification); err != nil {
		s.logEmissionFailure(userID, eventType, err)
		return nil
	}

	s.invalidate(ctx, userID)
	return nil
}

// ListForUser serves the user's notifications, newest first. A cache hit may
// be stale up to the TTL; that staleness bound is accepted.
func (s Service) ListForUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	key := cacheKey(userID)

	if cached, hit, err := s.Cache.Get(ctx, key); err != nil {
		s.logCacheFailure("get", userID, err)
	} else if hit {
		var items []entities.Notification
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		// Unreadable entry; drop it and fall through to storage.
		s.invalidate(ctx, userID)
	}

	items, err := s.Notifications.ListNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	if encoded, err := json.Marshal(items); err == nil {
		if err := s.Cache.Set(ctx, key, encoded, s.ttl()); err != nil {
			s.logCacheFailure("set", userID, err)
		}
	}
	return items, nil
}

// MarkRead flips the read flag on the caller's own notification. Marking an
// already-read notification again succeeds with no change. A notification
// owned by someone else reads as not found.
func (s Service) MarkRead(ctx context.Context, userID string, notificationID string) (entities.Notification, error) {
	notification, found, err := s.Notifications.FindNotificationByID(ctx, notificationID)
	if err != nil {
		return entities.Notification{}, fmt.Errorf("find notification: %w", err)
	}
	if !found || notification.UserID != userID {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := s.Notifications.SaveNotification(ctx, notification); err != nil {
			return entities.Notification{}, fmt.Errorf("save notification: %w", err)
		}
	}
	s.invalidate(ctx, userID)
	return notification, nil
}

func (s Service) invalidate(ctx context.Context, userID string) {
	if err := s.Cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.logCacheFailure("delete", userID, err)
	}
}

func (s Service) logEmissionFailure(userID string, eventType string, err error) {
	resolveLogger(s.Logger).Error("notification write failed",
		"event", "notification_write_failed",
		"module", "engagement/notification-service",
		"layer", "application",
		"user_id", userID,
		"type", eventType,
		"error", err,
	)
}

func (s Service) logCacheFailure(op string, userID string, err error) {
	resolveLogger(s.Logger).Warn("notification cache operation failed",
		"event", "notification_cache_failed",
		"module", "engagement/notification-service",
		"layer", "application",
		"op", op,
		"user_id", userID,
		"error", err,
	)
}

func cacheKey(userID string) string {
	return fmt.Sprintf("user:%s:notifications", userID)
}

func (s Service) ttl() time.Duration {
	if s.CacheTTL <= 0 {
		return defaultCacheTTL
	}
	return s.CacheTTL
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
