package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/core/domain/model/request"
)

// AdjustPriceCommandHandler handles manual price adjustments.
// A price_adjustment notification is logged in the same transaction.
type AdjustPriceCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewAdjustPriceCommandHandler creates a handler for price adjustments.
func NewAdjustPriceCommandHandler(uowFactory RequestUoWFactory) AdjustPriceCommandHandler {
	return AdjustPriceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjustment command and returns the updated request.
func (h *AdjustPriceCommandHandler) Handle(
	ctx context.Context,
	cmd AdjustPriceCommand,
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

	previous := req.FinalPrice()
	if err = req.AdjustPrice(cmd.NewPrice(), cmd.Reason(), now); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	note, err := notification.NewNotification(
		kernel.NewUUID(),
		"Price adjusted",
		fmt.Sprintf("Request %s price changed from %d to %d", req.ID(), previous, req.FinalPrice()),
		notification.PriceAdjustment,
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
