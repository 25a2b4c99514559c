package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/core/domain/model/request"
)

// RejectRequestCommandHandler handles the rejection of pending requests.
// Rejection is terminal: the request never leaves the rejected status.
type RejectRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewRejectRequestCommandHandler creates a handler for request rejection.
func NewRejectRequestCommandHandler(uowFactory RequestUoWFactory) RejectRequestCommandHandler {
	return RejectRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command and returns the rejected request.
func (h *RejectRequestCommandHandler) Handle(
	ctx context.Context,
	cmd RejectRequestCommand,
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

	if err = req.Reject(cmd.AgentID(), cmd.Reason(), now); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	note, err := notification.NewNotification(
		kernel.NewUUID(),
		"Request rejected",
		fmt.Sprintf("Request %s was rejected: %s", req.ID(), cmd.Reason()),
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
