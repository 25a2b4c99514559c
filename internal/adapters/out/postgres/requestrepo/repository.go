package requestrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
	"expedition/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add shipment request", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing request to the database.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update shipment request", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request by ID.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a request by ID with its row locked until the
// surrounding transaction completes. Serializes concurrent transitions on
// the same request.
func (r *GormRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Delete removes a request unconditionally. A missing id is a no-op.
func (r *GormRequestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&RequestDTO{}, "id = ?", id.Bytes()).Error; err != nil {
		return errs.NewPersistenceError("delete shipment request", err)
	}

	return nil
}

// invoiceSeqLockClass namespaces the advisory lock guarding invoice sequence
// derivation from unrelated advisory lock users.
const invoiceSeqLockClass = 7501

// CountInvoicesIssuedIn counts invoices issued in the given calendar year.
// Takes a transaction-scoped advisory lock on the year first, so concurrent
// accepts of different requests serialize their count-then-insert and derive
// distinct sequence numbers. The lock is released on commit or rollback.
func (r *GormRequestRepository) CountInvoicesIssuedIn(ctx context.Context, year int) (int64, error) {
	err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", invoiceSeqLockClass, year).Error
	if err != nil {
		return 0, errs.NewPersistenceError("lock invoice sequence", err)
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("invoice_number LIKE ?", fmt.Sprintf("INV-%d-%%", year)).
		Count(&count).Error
	if err != nil {
		return 0, errs.NewPersistenceError("count invoices", err)
	}

	return count, nil
}

// GetAllPendingOlderThan retrieves pending requests created before the cutoff.
func (r *GormRequestRepository) GetAllPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*request.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", int(request.Pending), cutoff).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list pending shipment requests", err)
	}

	requests := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *GormRequestRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, errs.NewPersistenceError("get shipment request", err)
	}

	return toDomain(dto)
}
