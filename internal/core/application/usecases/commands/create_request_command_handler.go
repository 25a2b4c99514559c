package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/core/domain/model/request"
)

// CreateRequestCommandHandler handles the business logic for request creation.
// The new request starts in pending status with its price copied from the
// active tariff version's entry for the chosen zone, and a new_request
// notification is logged in the same transaction.
type CreateRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation operations.
func NewCreateRequestCommandHandler(uowFactory UoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request creation command.
// Returns the created request so callers can render it immediately.
func (h *CreateRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRequestCommand,
) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	version, err := uow.TariffRepository().GetActive(ctx)
	if err != nil {
		return nil, err
	}

	price, err := version.PriceForZone(cmd.ZoneID())
	if err != nil {
		return nil, err
	}

	req, err := request.NewRequest(
		cmd.RequestID(),
		cmd.AgencyID(),
		cmd.Client(),
		cmd.Destination(),
		cmd.Package(),
		price,
		cmd.IsUrgent(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return nil, err
	}

	note, err := notification.NewNotification(
		kernel.NewUUID(),
		"New shipment request",
		fmt.Sprintf("%s requested a shipment to %s", cmd.Client().Name(), cmd.Destination()),
		notification.NewRequest,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}
