package ports

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the notification log.
type NotificationRepository interface {
	// Add persists a new notification and drops the oldest entries beyond
	// notification.MaxRetained.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// MarkRead flags one notification as read.
	MarkRead(ctx context.Context, id kernel.UUID) error

	// MarkAllRead flags every notification as read.
	MarkAllRead(ctx context.Context) error
}
