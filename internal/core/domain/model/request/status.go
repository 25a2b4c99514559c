package request

import (
	"fmt"

	"expedition/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment request.
// It implements a state machine with defined transitions to ensure
// requests follow the agency's operational workflow.
//
// State transitions:
//
//	pending ──┬──> accepted ──> pickup_in_progress ──┬──> collected ──> registered ──> in_transit ──> delivery_in_progress ──> delivered
//	          │                                      │        ^
//	          │                                      └──> dropoff_in_progress
//	          └──> rejected
//
// rejected and delivered are terminal: no outgoing transitions exist.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every client submission.
	Pending

	// Accepted indicates agency staff approved the request and an invoice was issued.
	Accepted

	// Rejected indicates agency staff declined the request. Terminal.
	Rejected

	// PickupInProgress indicates a courier is on the way to collect the package.
	PickupInProgress

	// DropoffInProgress indicates the client is bringing the package to the agency.
	DropoffInProgress

	// Collected indicates the agency has physical possession of the package.
	Collected

	// Registered indicates the package was logged into the shipping manifest.
	Registered

	// InTransit indicates the package left the agency toward its destination.
	InTransit

	// DeliveryInProgress indicates last-mile delivery has started.
	DeliveryInProgress

	// Delivered indicates the package reached its recipient. Terminal.
	Delivered
)

// getStatusStrings returns the wire representation of every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Pending:            "pending",
		Accepted:           "accepted",
		Rejected:           "rejected",
		PickupInProgress:   "pickup_in_progress",
		DropoffInProgress:  "dropoff_in_progress",
		Collected:          "collected",
		Registered:         "registered",
		InTransit:          "in_transit",
		DeliveryInProgress: "delivery_in_progress",
		Delivered:          "delivered",
	}
}

// getAllowedEdges returns the set of statuses reachable in one step from each status.
// Any transition attempt outside this mapping is invalid.
func getAllowedEdges() map[Status][]Status {
	return map[Status][]Status{
		Pending:            {Accepted, Rejected},
		Accepted:           {PickupInProgress},
		PickupInProgress:   {Collected, DropoffInProgress},
		DropoffInProgress:  {Collected},
		Collected:          {Registered},
		Registered:         {InTransit},
		InTransit:          {DeliveryInProgress},
		DeliveryInProgress: {Delivered},
		Delivered:          {},
		Rejected:           {},
	}
}

// StatusFromString parses a wire value ("pending", "in_transit", ...) into a Status.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getAllowedEdges()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	edges, ok := getAllowedEdges()[s]
	return ok && len(edges) == 0
}

// NextStatuses returns the statuses reachable in one step from s.
// Returns an empty slice for terminal or invalid statuses.
func (s Status) NextStatuses() []Status {
	edges := getAllowedEdges()[s]
	out := make([]Status, len(edges))
	copy(out, edges)
	return out
}

// CanTransitionTo validates that moving from s to next is an allowed edge.
//
// Returns:
//   - nil if the edge exists in the workflow
//   - *errs.InvalidTransitionError otherwise
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	for _, allowed := range getAllowedEdges()[s] {
		if allowed == next {
			return nil
		}
	}

	return errs.NewInvalidTransitionError(s.String(), next.String())
}

// TransitionTo performs the transition from s to next.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, error) if the edge is not allowed from the current status
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.CanTransitionTo(next); err != nil {
		return 0, err
	}

	return next, nil
}

// ValidateCanHaveInvoice validates the consistency between a request's status
// and the presence of an invoice number. An invoice exists exactly when the
// request has ever reached Accepted.
func (s Status) ValidateCanHaveInvoice(invoice bool) error {
	reachedAccepted := s != Pending && s != Rejected && s != Unknown

	if invoice && !reachedAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"invoice number",
			fmt.Errorf("%s must not carry an invoice number", s.String()),
		)
	}

	if !invoice && reachedAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"invoice number",
			fmt.Errorf("%s requires an invoice number", s.String()),
		)
	}

	return nil
}
