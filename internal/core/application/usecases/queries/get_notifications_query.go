package queries

import (
	"errors"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves the notification log, newest first,
// together with the unread count.
type GetNotificationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a parameterless notification query.
func NewGetNotificationsQuery() GetNotificationsQuery {
	return GetNotificationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// NotificationResponse is one entry of the notification read model.
type NotificationResponse struct {
	ID        kernel.UUID
	Title     string
	Message   string
	Type      string
	Timestamp time.Time
	IsRead    bool
}

// GetNotificationsQueryResponse holds the log entries and the unread count.
type GetNotificationsQueryResponse struct {
	Notifications []NotificationResponse
	UnreadCount   int64
}
