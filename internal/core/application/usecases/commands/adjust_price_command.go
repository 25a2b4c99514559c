package commands

import (
	"errors"
	"fmt"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrAdjustPriceCommandIsNotConstructed = errors.New(
	"AdjustPriceCommand must be created via NewAdjustPriceCommand constructor",
)

// AdjustPriceCommand represents a manual change of a request's final price.
// The original price and the workflow status are never touched by an adjustment.
type AdjustPriceCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	newPrice  int64
	reason    string

	guard guard.ConstructorGuard
}

// NewAdjustPriceCommand creates a command to adjust a request's final price.
// The new price must not be negative. The reason is optional and is appended
// to the request's notes when present.
func NewAdjustPriceCommand(requestID kernel.UUID, newPrice int64, reason string) (AdjustPriceCommand, error) {
	cmd := AdjustPriceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setNewPrice(newPrice),
	); err != nil {
		return AdjustPriceCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustPriceCommand) Validate() error {
	return c.guard.Validate(ErrAdjustPriceCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to adjust.
func (c AdjustPriceCommand) RequestID() kernel.UUID {
	return c.requestID
}

// NewPrice returns the new final price in minor currency units.
func (c AdjustPriceCommand) NewPrice() int64 {
	return c.newPrice
}

// Reason returns the optional justification appended to the request's notes.
func (c AdjustPriceCommand) Reason() string {
	return c.reason
}

func (c *AdjustPriceCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AdjustPriceCommand) setNewPrice(newPrice int64) error {
	if newPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%d is negative", newPrice),
		)
	}

	c.newPrice = newPrice
	return nil
}
