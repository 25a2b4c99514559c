package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/core/domain/model/request"
)

// AdvanceStatusCommandHandler moves requests along the workflow edges.
// The transition is validated by the aggregate itself; an illegal edge fails
// the whole transaction and leaves the request unchanged.
type AdvanceStatusCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewAdvanceStatusCommandHandler creates a handler for workflow advancement.
func NewAdvanceStatusCommandHandler(uowFactory RequestUoWFactory) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advancement command and returns the updated request.
func (h *AdvanceStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceStatusCommand,
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

	requestRepo := uow.RequestRepository()
	req, err := requestRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	previous := req.Status()
	if err = req.AdvanceTo(cmd.NewStatus(), cmd.Notes(), cmd.PickupDate(), cmd.DeliveryDate(), now); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	note, err := notification.NewNotification(
		kernel.NewUUID(),
		"Shipment status updated",
		fmt.Sprintf("Request %s moved from %s to %s", req.ID(), previous, req.Status()),
		notification.StatusUpdate,
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
