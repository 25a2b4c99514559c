// Package notificationrepo provides persistence for the bounded notification
// log. Every insert trims the table down to notification.MaxRetained entries.
package notificationrepo

import (
	"time"

	"expedition/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for a notification entry.
// Seq is assigned by the database in insertion order and breaks timestamp ties
// when the retention trim picks entries to evict.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	Title     string    `gorm:"not null"`
	Message   string    `gorm:"not null"`
	Kind      int
	Timestamp time.Time `gorm:"index"`
	IsRead    bool
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		Title:     n.Title(),
		Message:   n.Message(),
		Kind:      int(n.Kind()),
		Timestamp: n.Timestamp(),
		IsRead:    n.IsRead(),
	}
}
