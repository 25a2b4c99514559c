package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand represents an agency decision to take on a pending
// shipment request. Acceptance issues the invoice number.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	agentID   kernel.UUID
	notes     string

	guard guard.ConstructorGuard
}

// NewAcceptRequestCommand creates a command to accept a pending request.
// Both the request id and the accepting agent id must be valid.
func NewAcceptRequestCommand(requestID, agentID kernel.UUID, notes string) (AcceptRequestCommand, error) {
	cmd := AcceptRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setAgentID(agentID),
	); err != nil {
		return AcceptRequestCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to accept.
func (c AcceptRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// AgentID returns the staff member accepting the request.
func (c AcceptRequestCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Notes returns optional free text appended to the request's notes.
func (c AcceptRequestCommand) Notes() string {
	return c.notes
}

func (c *AcceptRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AcceptRequestCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
