package commands

import (
	"errors"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
	"expedition/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand represents one workflow step of an accepted request,
// from pickup through delivery. The target status must be a legal successor
// of the request's current status.
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	newStatus    request.Status
	notes        string
	pickupDate   *time.Time
	deliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a command to move a request along the workflow.
// Pickup and delivery dates are optional; a transition that sets them passes
// them here (for example pickup_in_progress -> collected carries the pickup date).
func NewAdvanceStatusCommand(
	requestID kernel.UUID,
	newStatus request.Status,
	notes string,
	pickupDate *time.Time,
	deliveryDate *time.Time,
) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	cmd.notes = notes
	cmd.pickupDate = pickupDate
	cmd.deliveryDate = deliveryDate

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to advance.
func (c AdvanceStatusCommand) RequestID() kernel.UUID {
	return c.requestID
}

// NewStatus returns the target workflow status.
func (c AdvanceStatusCommand) NewStatus() request.Status {
	return c.newStatus
}

// Notes returns optional free text appended to the request's notes.
func (c AdvanceStatusCommand) Notes() string {
	return c.notes
}

// PickupDate returns the pickup timestamp to record, nil when not part of this step.
func (c AdvanceStatusCommand) PickupDate() *time.Time {
	return c.pickupDate
}

// DeliveryDate returns the delivery timestamp to record, nil when not part of this step.
func (c AdvanceStatusCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *AdvanceStatusCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AdvanceStatusCommand) setNewStatus(newStatus request.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
