package queries

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler retrieves the notification log from the database.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the notification query.
// The log holds at most notification.MaxRetained entries, newest first.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) (GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			message,
			kind,
			timestamp,
			is_read
		FROM notifications
		ORDER BY timestamp DESC, seq DESC
	`).Rows()
	if err != nil {
		return GetNotificationsQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetNotificationsQueryResponse{
		Notifications: make([]NotificationResponse, 0, notification.MaxRetained),
	}

	for rows.Next() {
		var entry NotificationResponse
		var id uuid.UUID
		var kind int

		if err = rows.Scan(
			&id,
			&entry.Title,
			&entry.Message,
			&kind,
			&entry.Timestamp,
			&entry.IsRead,
		); err != nil {
			return GetNotificationsQueryResponse{}, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetNotificationsQueryResponse{}, idErr
		}
		entry.ID = notificationID
		entry.Type = notification.Type(kind).String()

		resp.Notifications = append(resp.Notifications, entry)
		if !entry.IsRead {
			resp.UnreadCount++
		}
	}

	if err = rows.Err(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	return resp, nil
}
