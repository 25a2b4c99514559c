package ports

import (
	"context"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for shipment request aggregates.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request aggregate.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetForUpdate retrieves a request and locks its row for the duration of
	// the surrounding transaction, serializing concurrent transitions on one id.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// Delete removes a request entirely. Deleting a non-existent id is a no-op.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountInvoicesIssuedIn returns how many invoices were issued in the given
	// calendar year. Used to derive the next invoice sequence number.
	CountInvoicesIssuedIn(ctx context.Context, year int) (int64, error)

	// GetAllPendingOlderThan retrieves pending requests created before the cutoff.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*request.Request, error)
}
