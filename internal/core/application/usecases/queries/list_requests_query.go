// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and never
// mutate anything.
package queries

import (
	"errors"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
	"expedition/internal/pkg/guard"
)

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// ListRequestsQuery retrieves shipment requests, optionally narrowed to an
// agency, an agent, or a status. Empty filters match everything.
type ListRequestsQuery struct { //nolint:recvcheck //using for validation
	agencyID string
	agentID  *kernel.UUID
	status   *request.Status

	guard guard.ConstructorGuard
}

// NewListRequestsQuery creates a request listing query.
// agencyID narrows to one agency when non-empty; agentID and status narrow
// further when non-nil.
func NewListRequestsQuery(agencyID string, agentID *kernel.UUID, status *request.Status) (ListRequestsQuery, error) {
	q := ListRequestsQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return ListRequestsQuery{}, err
		}
		q.agentID = agentID
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return ListRequestsQuery{}, err
		}
		q.status = status
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

// AgencyID returns the agency filter; empty means all agencies.
func (q ListRequestsQuery) AgencyID() string { return q.agencyID }

// AgentID returns the agent filter; nil means all agents.
func (q ListRequestsQuery) AgentID() *kernel.UUID { return q.agentID }

// Status returns the status filter; nil means all statuses.
func (q ListRequestsQuery) Status() *request.Status { return q.status }

// ListRequestsQueryResponse is one row of the request listing read model.
type ListRequestsQueryResponse struct {
	ID            kernel.UUID
	AgencyID      string
	ClientName    string
	Destination   string
	Status        string
	FinalPrice    int64
	InvoiceNumber *string
	IsUrgent      bool
	CreatedAt     time.Time
}
