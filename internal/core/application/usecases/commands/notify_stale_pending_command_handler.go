package commands

import (
	"context"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
)

// NotifyStalePendingCommandHandler emits info notifications for pending
// requests older than the command's threshold so the agency dashboard
// surfaces forgotten submissions.
type NotifyStalePendingCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewNotifyStalePendingCommandHandler creates a handler for the stale reminder.
func NewNotifyStalePendingCommandHandler(uowFactory RequestUoWFactory) NotifyStalePendingCommandHandler {
	return NotifyStalePendingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle pushes one info notification per stale pending request.
// Returns the number of requests found.
func (h *NotifyStalePendingCommandHandler) Handle(ctx context.Context, cmd NotifyStalePendingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.RequestRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	notificationRepo := uow.NotificationRepository()
	for _, req := range stale {
		note, noteErr := notification.NewNotification(
			kernel.NewUUID(),
			"Pending request needs attention",
			fmt.Sprintf("Request %s from %s has been pending since %s",
				req.ID(), req.Client().Name(), req.CreatedAt().Format(time.RFC3339)),
			notification.Info,
			now,
		)
		if noteErr != nil {
			return 0, noteErr
		}

		if noteErr = notificationRepo.Add(ctx, note); noteErr != nil {
			return 0, noteErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
