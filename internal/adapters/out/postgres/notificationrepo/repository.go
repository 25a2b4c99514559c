package notificationrepo

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a notification and drops the oldest entries beyond the
// retention bound. Ties on timestamp break on insertion order, so an entry
// never evicts itself on the insert that created it.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add notification", err)
	}

	err := db.Exec(`
		DELETE FROM notifications
		WHERE id NOT IN (
			SELECT id FROM notifications
			ORDER BY timestamp DESC, seq DESC
			LIMIT ?
		)
	`, notification.MaxRetained).Error
	if err != nil {
		return errs.NewPersistenceError("trim notifications", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// MarkRead flags one notification as read.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Update("is_read", true)
	if result.Error != nil {
		return errs.NewPersistenceError("mark notification read", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}

	return nil
}

// MarkAllRead flags every notification as read.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
	if err != nil {
		return errs.NewPersistenceError("mark all notifications read", err)
	}

	return nil
}
