package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/engagement/notification-service/application"
	"taskforge/contexts/engagement/notification-service/domain/entities"
	httptransport "taskforge/contexts/engagement/notification-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListNotificationsHandler(ctx context.Context, userID string) (httptransport.NotificationsResponse, error) {
	items, err := h.Service.ListForUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return httptransport.NotificationsResponse{}, err
	}
	resp := httptransport.NotificationsResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Notifications = append(resp.Data.Notifications, notificationData(item))
	}
	return resp, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, userID string, notificationID string) (httptransport.MarkReadResponse, error) {
	item, err := h.Service.MarkRead(ctx, strings.TrimSpace(userID), strings.TrimSpace(notificationID))
	if err != nil {
		return httptransport.MarkReadResponse{}, err
	}
	return httptransport.MarkReadResponse{Status: "success", Data: notificationData(item)}, nil
}

func notificationData(item entities.Notification) httptransport.NotificationData {
	return httptransport.NotificationData{
		ID:        item.ID,
		TaskID:    item.TaskID,
		Type:      string(item.Type),
		Title:     item.Title,
		Message:   item.Message,
		IsRead:    item.IsRead,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
