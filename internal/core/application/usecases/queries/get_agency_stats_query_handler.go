package queries

import (
	"context"

	"expedition/internal/core/domain/model/request"

	"gorm.io/gorm"
)

// GetAgencyStatsQueryHandler computes dashboard statistics with aggregate SQL.
type GetAgencyStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgencyStatsQueryHandler creates a handler for stats queries.
func NewGetAgencyStatsQueryHandler(db *gorm.DB) GetAgencyStatsQueryHandler {
	return GetAgencyStatsQueryHandler{db: db}
}

// Handle executes the stats query against the current store state.
func (h GetAgencyStatsQueryHandler) Handle(
	ctx context.Context,
	query GetAgencyStatsQuery,
) (GetAgencyStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAgencyStatsQueryResponse{}, err
	}

	scope, args := h.scopeClause(query)

	resp := GetAgencyStatsQueryResponse{
		CountsByStatus: make(map[string]int64),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_urgent THEN 1 ELSE 0 END), 0)
		FROM shipment_requests
		WHERE 1=1`+scope+`
		GROUP BY status
	`, args...).Rows()
	if err != nil {
		return GetAgencyStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count, urgent int64
		if err = rows.Scan(&status, &count, &urgent); err != nil {
			return GetAgencyStatsQueryResponse{}, err
		}

		resp.CountsByStatus[request.Status(status).String()] = count
		resp.TotalRequests += count
		resp.UrgentCount += urgent
	}

	if err = rows.Err(); err != nil {
		return GetAgencyStatsQueryResponse{}, err
	}

	revenueArgs := append([]any{int(request.Delivered)}, args...)
	if err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(final_price), 0)
		FROM shipment_requests
		WHERE status = ?`+scope+`
	`, revenueArgs...).Row().Scan(&resp.TotalRevenue); err != nil {
		return GetAgencyStatsQueryResponse{}, err
	}

	return resp, nil
}

// scopeClause builds the optional agency/agent filters shared by both aggregates.
func (h GetAgencyStatsQueryHandler) scopeClause(query GetAgencyStatsQuery) (string, []any) {
	clause := ""
	args := make([]any, 0, 2)

	if query.AgencyID() != "" {
		clause += " AND agency_id = ?"
		args = append(args, query.AgencyID())
	}
	if query.AgentID() != nil {
		clause += " AND agent_id = ?"
		args = append(args, query.AgentID().Bytes())
	}

	return clause, args
}
