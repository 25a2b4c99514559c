package request

import (
	"errors"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not created
	// through the NewRequest or RestoreRequest factory functions.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

	// ErrClientIsNotConstructed is returned when a Client value was not created via NewClient.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient")
)

// Client holds the contact details of the person who submitted a request.
// All three fields are required and never empty.
type Client struct {
	name  string
	email string
	phone string

	isConstructed bool
}

// NewClient creates a validated Client value. Name, email and phone are all required.
func NewClient(name, email, phone string) (Client, error) {
	if name == "" {
		return Client{}, errs.NewValueIsRequiredError("client name")
	}
	if email == "" {
		return Client{}, errs.NewValueIsRequiredError("client email")
	}
	if phone == "" {
		return Client{}, errs.NewValueIsRequiredError("client phone")
	}

	return Client{name: name, email: email, phone: phone, isConstructed: true}, nil
}

// Validate ensures the Client value was created via NewClient.
func (c Client) Validate() error {
	if !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

// Name returns the client's full name.
func (c Client) Name() string { return c.name }

// Email returns the client's email address.
func (c Client) Email() string { return c.email }

// Phone returns the client's phone number.
func (c Client) Phone() string { return c.phone }

// Package describes the physical shipment: weight in kilograms plus free-text
// dimensions and description.
type Package struct {
	weight      float64
	dimensions  string
	description string
}

// NewPackage creates a Package descriptor. Weight must not be negative.
func NewPackage(weight float64, dimensions, description string) (Package, error) {
	if weight < 0 {
		return Package{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%f is negative", weight),
		)
	}

	return Package{weight: weight, dimensions: dimensions, description: description}, nil
}

// Weight returns the package weight in kilograms.
func (p Package) Weight() float64 { return p.weight }

// Dimensions returns the free-text package dimensions.
func (p Package) Dimensions() string { return p.dimensions }

// Description returns the free-text package description.
func (p Package) Description() string { return p.description }

// Request represents a shipment request in the system. It is the aggregate root
// that manages the request lifecycle from client submission through delivery.
//
// Request follows these invariants:
//   - Must have a valid unique identifier and client contact details
//   - finalPrice is never negative; originalPrice never changes after creation
//   - invoiceNumber is set exactly when the request has reached Accepted or later
//   - Status transitions only follow the edges defined by Status
//   - Can only be created through NewRequest or RestoreRequest
type Request struct {
	id          kernel.UUID
	agencyID    string
	client      Client
	destination string
	pack        Package

	status  Status
	agentID *kernel.UUID

	originalPrice int64
	finalPrice    int64
	invoiceNumber *string

	notes           string
	rejectionReason string

	pickupDate   *time.Time
	deliveryDate *time.Time

	isUrgent  bool
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewRequest creates a new shipment request in Pending status.
// The given price is copied into both originalPrice and finalPrice; it comes
// from the tariff zone selected for the destination.
//
// Returns a validation error if the id is invalid, the client is not
// constructed, the destination is empty, or the price is negative.
func NewRequest(
	id kernel.UUID,
	agencyID string,
	client Client,
	destination string,
	pack Package,
	price int64,
	isUrgent bool,
	now time.Time,
) (*Request, error) {
	r := &Request{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setClient(client),
		r.setDestination(destination),
		r.setPrice(price),
	); err != nil {
		return nil, err
	}

	r.agencyID = agencyID
	r.pack = pack
	r.isUrgent = isUrgent
	r.createdAt = now
	r.updatedAt = now

	return r, nil
}

// RestoreRequest reconstructs a request from persistence without running the
// creation workflow. It still validates all cross-field invariants so corrupt
// rows surface as errors instead of invalid aggregates.
func RestoreRequest(
	id kernel.UUID,
	agencyID string,
	client Client,
	destination string,
	pack Package,
	status Status,
	agentID *kernel.UUID,
	originalPrice int64,
	finalPrice int64,
	invoiceNumber *string,
	notes string,
	rejectionReason string,
	pickupDate *time.Time,
	deliveryDate *time.Time,
	isUrgent bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		client.Validate(),
		status.Validate(),
		status.ValidateCanHaveInvoice(invoiceNumber != nil),
	); err != nil {
		return nil, err
	}

	if finalPrice < 0 || originalPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("prices %d/%d must not be negative", originalPrice, finalPrice),
		)
	}

	return &Request{
		id:              id,
		agencyID:        agencyID,
		client:          client,
		destination:     destination,
		pack:            pack,
		status:          status,
		agentID:         agentID,
		originalPrice:   originalPrice,
		finalPrice:      finalPrice,
		invoiceNumber:   invoiceNumber,
		notes:           notes,
		rejectionReason: rejectionReason,
		pickupDate:      pickupDate,
		deliveryDate:    deliveryDate,
		isUrgent:        isUrgent,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Request instance was properly constructed through a factory function.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// AgencyID returns the agency scope of the request; empty when unscoped.
func (r *Request) AgencyID() string { return r.agencyID }

// Client returns the submitting client's contact details.
func (r *Request) Client() Client { return r.client }

// Destination returns the destination country or zone name.
func (r *Request) Destination() string { return r.destination }

// Package returns the package descriptors.
func (r *Request) Package() Package { return r.pack }

// Status returns the current lifecycle status.
func (r *Request) Status() Status { return r.status }

// Agent returns the staff member who processed the request, nil before acceptance.
func (r *Request) Agent() *kernel.UUID { return r.agentID }

// OriginalPrice returns the price copied from the tariff at creation. Immutable.
func (r *Request) OriginalPrice() int64 { return r.originalPrice }

// FinalPrice returns the price currently charged, possibly adjusted after creation.
func (r *Request) FinalPrice() int64 { return r.finalPrice }

// InvoiceNumber returns the invoice identifier, nil until acceptance.
func (r *Request) InvoiceNumber() *string { return r.invoiceNumber }

// Notes returns the accumulated free-text notes.
func (r *Request) Notes() string { return r.notes }

// RejectionReason returns the accumulated rejection reason text.
func (r *Request) RejectionReason() string { return r.rejectionReason }

// PickupDate returns when the package was picked up, nil until set by a transition.
func (r *Request) PickupDate() *time.Time { return r.pickupDate }

// DeliveryDate returns when the package was delivered, nil until set by a transition.
func (r *Request) DeliveryDate() *time.Time { return r.deliveryDate }

// IsUrgent reports whether the client flagged the shipment as urgent.
func (r *Request) IsUrgent() bool { return r.isUrgent }

// CreatedAt returns the creation timestamp.
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the timestamp of the last mutation.
func (r *Request) UpdatedAt() time.Time { return r.updatedAt }

// Accept transitions the request from Pending to Accepted, records the
// processing agent and the issued invoice number, and appends any notes.
//
// Returns an error if the request is not pending, the agent id is invalid,
// or the invoice number is empty.
func (r *Request) Accept(agentID kernel.UUID, invoiceNumber string, notes string, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoice number")
	}

	newStatus, err := r.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.agentID = &agentID
	r.invoiceNumber = &invoiceNumber
	r.appendNotes(notes)
	r.touch(now)
	return nil
}

// Reject transitions the request from Pending to Rejected and appends the reason.
// Rejected is terminal: no further transitions are possible afterward.
func (r *Request) Reject(agentID kernel.UUID, reason string, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.agentID = &agentID
	r.rejectionReason = appendText(r.rejectionReason, reason)
	r.touch(now)
	return nil
}

// AdvanceTo moves the request along one workflow edge toward delivery.
// Accepted and Rejected are not reachable through AdvanceTo: those transitions
// carry side effects (invoice issuance, rejection reason) and must go through
// Accept and Reject.
//
// Optional pickup and delivery dates are merged when provided; notes are appended.
func (r *Request) AdvanceTo(next Status, notes string, pickupDate, deliveryDate *time.Time, now time.Time) error {
	if next == Accepted || next == Rejected {
		return errs.NewInvalidTransitionErrorWithCause(
			r.status.String(), next.String(),
			fmt.Errorf("%s requires a dedicated operation", next.String()),
		)
	}

	newStatus, err := r.status.TransitionTo(next)
	if err != nil {
		return err
	}

	r.status = newStatus
	if pickupDate != nil {
		r.pickupDate = pickupDate
	}
	if deliveryDate != nil {
		r.deliveryDate = deliveryDate
	}
	r.appendNotes(notes)
	r.touch(now)
	return nil
}

// AdjustPrice sets a new final price and appends the reason to the notes.
// The original price and the status never change. Adjustment is allowed from
// any status except Rejected; the new price must not be negative.
func (r *Request) AdjustPrice(newPrice int64, reason string, now time.Time) error {
	if r.status == Rejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errors.New("price adjustment is not allowed for rejected requests"),
		)
	}
	if newPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%d is negative", newPrice),
		)
	}

	r.finalPrice = newPrice
	r.appendNotes(reason)
	r.touch(now)
	return nil
}

// appendNotes concatenates new text onto the notes, never overwriting history.
func (r *Request) appendNotes(text string) {
	r.notes = appendText(r.notes, text)
}

func (r *Request) touch(now time.Time) {
	r.updatedAt = now
}

func appendText(existing, text string) string {
	if text == "" {
		return existing
	}
	if existing == "" {
		return text
	}
	return existing + "\n" + text
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setClient(client Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	r.client = client
	return nil
}

func (r *Request) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	r.destination = destination
	return nil
}

func (r *Request) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%d is negative", price),
		)
	}
	r.originalPrice = price
	r.finalPrice = price
	return nil
}
