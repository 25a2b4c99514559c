package commands

import (
	"errors"
	"fmt"
	"time"

	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrNotifyStalePendingCommandIsNotConstructed = errors.New(
	"NotifyStalePendingCommand must be created via NewNotifyStalePendingCommand constructor",
)

// NotifyStalePendingCommand asks for info notifications about requests that
// have been sitting in pending status longer than the given age. Issued by the
// scheduled reminder job.
type NotifyStalePendingCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewNotifyStalePendingCommand creates a command with the stale threshold.
// The threshold must be positive.
func NewNotifyStalePendingCommand(olderThan time.Duration) (NotifyStalePendingCommand, error) {
	cmd := NotifyStalePendingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if olderThan <= 0 {
		return NotifyStalePendingCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"older than",
			fmt.Errorf("%s is not a positive duration", olderThan),
		)
	}

	cmd.olderThan = olderThan
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyStalePendingCommand) Validate() error {
	return c.guard.Validate(ErrNotifyStalePendingCommandIsNotConstructed)
}

// OlderThan returns the age beyond which a pending request counts as stale.
func (c NotifyStalePendingCommand) OlderThan() time.Duration {
	return c.olderThan
}
