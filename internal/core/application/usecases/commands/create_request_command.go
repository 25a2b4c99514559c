package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand represents a client's shipment request submission.
// The price is not part of the command: it is derived from the active tariff
// version and the chosen destination zone at handling time.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	agencyID    string
	client      request.Client
	destination string
	pack        request.Package
	zoneID      int
	isUrgent    bool

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to register a new shipment request.
// The client value carries its own required-field validation; the destination
// must not be empty.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	agencyID string,
	client request.Client,
	destination string,
	pack request.Package,
	zoneID int,
	isUrgent bool,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setClient(client),
		cmd.setDestination(destination),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	cmd.agencyID = agencyID
	cmd.pack = pack
	cmd.zoneID = zoneID
	cmd.isUrgent = isUrgent

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier assigned to the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// AgencyID returns the agency scope; empty when unscoped.
func (c CreateRequestCommand) AgencyID() string {
	return c.agencyID
}

// Client returns the submitting client's contact details.
func (c CreateRequestCommand) Client() request.Client {
	return c.client
}

// Destination returns the destination country or zone name.
func (c CreateRequestCommand) Destination() string {
	return c.destination
}

// Package returns the package descriptors.
func (c CreateRequestCommand) Package() request.Package {
	return c.pack
}

// ZoneID returns the tariff zone the request is priced against.
func (c CreateRequestCommand) ZoneID() int {
	return c.zoneID
}

// IsUrgent reports whether the client flagged the shipment as urgent.
func (c CreateRequestCommand) IsUrgent() bool {
	return c.isUrgent
}

func (c *CreateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CreateRequestCommand) setClient(client request.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}

	c.client = client
	return nil
}

func (c *CreateRequestCommand) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	c.destination = destination
	return nil
}
