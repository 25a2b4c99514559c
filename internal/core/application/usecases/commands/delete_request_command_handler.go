package commands

import (
	"context"
)

// DeleteRequestCommandHandler removes requests unconditionally.
// Deleting an id that does not exist is a no-op, not an error.
type DeleteRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewDeleteRequestCommandHandler creates a handler for request deletion.
func NewDeleteRequestCommandHandler(uowFactory RequestUoWFactory) DeleteRequestCommandHandler {
	return DeleteRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
func (h *DeleteRequestCommandHandler) Handle(ctx context.Context, cmd DeleteRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RequestRepository().Delete(ctx, cmd.RequestID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
