package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/core/domain/model/request"
)

// AcceptRequestCommandHandler handles the acceptance of pending requests.
// Acceptance issues the next invoice number for the current year, records the
// processing agent, and logs a status_update notification, all in one
// transaction with the request row locked so concurrent decisions on the same
// request serialize.
type AcceptRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewAcceptRequestCommandHandler creates a handler for request acceptance.
func NewAcceptRequestCommandHandler(uowFactory RequestUoWFactory) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
// The invoice number is INV-<year>-<n> where n counts invoices already issued
// in the acceptance year plus one. Returns the accepted request.
func (h *AcceptRequestCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptRequestCommand,
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

	issued, err := requestRepo.CountInvoicesIssuedIn(ctx, now.Year())
	if err != nil {
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("INV-%d-%d", now.Year(), issued+1)

	if err = req.Accept(cmd.AgentID(), invoiceNumber, cmd.Notes(), now); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	note, err := notification.NewNotification(
		kernel.NewUUID(),
		"Request accepted",
		fmt.Sprintf("Request %s was accepted, invoice %s issued", req.ID(), invoiceNumber),
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
