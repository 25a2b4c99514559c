package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrRejectRequestCommandIsNotConstructed = errors.New(
	"RejectRequestCommand must be created via NewRejectRequestCommand constructor",
)

// RejectRequestCommand represents an agency decision to decline a pending
// shipment request. The reason is recorded on the request.
type RejectRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	agentID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectRequestCommand creates a command to reject a pending request.
// The reason is required: a client is always told why.
func NewRejectRequestCommand(requestID, agentID kernel.UUID, reason string) (RejectRequestCommand, error) {
	cmd := RejectRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setAgentID(agentID),
		cmd.setReason(reason),
	); err != nil {
		return RejectRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to reject.
func (c RejectRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// AgentID returns the staff member rejecting the request.
func (c RejectRequestCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Reason returns the rejection reason shown to the client.
func (c RejectRequestCommand) Reason() string {
	return c.reason
}

func (c *RejectRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *RejectRequestCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *RejectRequestCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	c.reason = reason
	return nil
}
