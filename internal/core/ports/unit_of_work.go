package ports

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
)

// UnitOfWork coordinates a database transaction across the repositories touched
// by one business operation. Every public mutation of the core runs inside a
// single unit of work so the read-modify-write of the affected entities is atomic.
type UnitOfWork interface {
	// Begin starts a transaction. Calling Begin twice on one instance is safe.
	Begin(ctx context.Context) error

	// Commit finalizes all changes made within the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards all changes made within the current transaction.
	Rollback(ctx context.Context) error

	// RequestRepository returns the request repository bound to this unit of work.
	RequestRepository() RequestRepository

	// TariffRepository returns the tariff repository bound to this unit of work.
	TariffRepository() TariffRepository

	// NotificationRepository returns the notification repository bound to this unit of work.
	NotificationRepository() NotificationRepository

	// TrackAggregate registers a domain aggregate as modified within this unit of work.
	TrackAggregate(id kernel.UUID, aggregate any)
}
