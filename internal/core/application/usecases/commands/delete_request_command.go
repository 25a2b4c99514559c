package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrDeleteRequestCommandIsNotConstructed = errors.New(
	"DeleteRequestCommand must be created via NewDeleteRequestCommand constructor",
)

// DeleteRequestCommand represents an administrative removal of a request.
// There is no soft delete: the request disappears from the store entirely.
type DeleteRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteRequestCommand creates a command to delete a request by id.
func NewDeleteRequestCommand(requestID kernel.UUID) (DeleteRequestCommand, error) {
	cmd := DeleteRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return DeleteRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to delete.
func (c DeleteRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c *DeleteRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}
