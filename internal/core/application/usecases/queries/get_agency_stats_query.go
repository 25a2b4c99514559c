package queries

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrGetAgencyStatsQueryIsNotConstructed = errors.New(
	"GetAgencyStatsQuery must be created via NewGetAgencyStatsQuery constructor",
)

// GetAgencyStatsQuery computes dashboard figures for an agency or agent scope.
// The projection is recomputed from the store on every call; nothing is cached
// or incrementally maintained, so the result always reflects current state.
type GetAgencyStatsQuery struct { //nolint:recvcheck //using for validation
	agencyID string
	agentID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgencyStatsQuery creates a stats query. An empty agencyID and nil
// agentID compute figures over the whole store.
func NewGetAgencyStatsQuery(agencyID string, agentID *kernel.UUID) (GetAgencyStatsQuery, error) {
	q := GetAgencyStatsQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return GetAgencyStatsQuery{}, err
		}
		q.agentID = agentID
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgencyStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgencyStatsQueryIsNotConstructed)
}

// AgencyID returns the agency filter; empty means all agencies.
func (q GetAgencyStatsQuery) AgencyID() string { return q.agencyID }

// AgentID returns the agent filter; nil means all agents.
func (q GetAgencyStatsQuery) AgentID() *kernel.UUID { return q.agentID }

// GetAgencyStatsQueryResponse holds the dashboard figures.
// TotalRevenue sums final prices over delivered requests only.
type GetAgencyStatsQueryResponse struct {
	TotalRequests  int64
	CountsByStatus map[string]int64
	TotalRevenue   int64
	UrgentCount    int64
}
