package queries

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRequestsQueryHandler retrieves shipment request rows from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type ListRequestsQueryHandler struct {
	db *gorm.DB
}

// NewListRequestsQueryHandler creates a handler for request listing queries.
func NewListRequestsQueryHandler(db *gorm.DB) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{db: db}
}

// Handle executes the listing query.
// Returns rows sorted newest first. Filters compose with AND.
func (h ListRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListRequestsQuery,
) ([]ListRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			agency_id,
			client_name,
			destination,
			status,
			final_price,
			invoice_number,
			is_urgent,
			created_at
		FROM shipment_requests
		WHERE 1=1`
	args := make([]any, 0, 3)

	if query.AgencyID() != "" {
		sql += " AND agency_id = ?"
		args = append(args, query.AgencyID())
	}
	if query.AgentID() != nil {
		sql += " AND agent_id = ?"
		args = append(args, query.AgentID().Bytes())
	}
	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, int(*query.Status()))
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListRequestsQueryResponse, 0)
	for rows.Next() {
		var resp ListRequestsQueryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(
			&id,
			&resp.AgencyID,
			&resp.ClientName,
			&resp.Destination,
			&status,
			&resp.FinalPrice,
			&resp.InvoiceNumber,
			&resp.IsUrgent,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = requestID
		resp.Status = request.Status(status).String()
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
