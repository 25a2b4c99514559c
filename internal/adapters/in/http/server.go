// Package http exposes the application's command and query handlers over a
// REST API. Request bodies are validated structurally before being turned
// into commands; the domain performs its own semantic validation.
package http

import (
	"errors"
	"net/http"
	"time"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"
	"expedition/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createRequestHandler    commands.CreateRequestCommandHandler
	acceptRequestHandler    commands.AcceptRequestCommandHandler
	rejectRequestHandler    commands.RejectRequestCommandHandler
	advanceStatusHandler    commands.AdvanceStatusCommandHandler
	adjustPriceHandler      commands.AdjustPriceCommandHandler
	deleteRequestHandler    commands.DeleteRequestCommandHandler
	saveTariffHandler       commands.SaveTariffVersionCommandHandler
	markNotificationHandler commands.MarkNotificationReadCommandHandler
	markAllNotificationsHdl commands.MarkAllNotificationsReadCommandHandler

	// Query handlers
	listRequestsHandler      queries.ListRequestsQueryHandler
	getAgencyStatsHandler    queries.GetAgencyStatsQueryHandler
	getNotificationsHandler  queries.GetNotificationsQueryHandler
	getTariffVersionsHandler queries.GetTariffVersionsQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRequestHandler commands.CreateRequestCommandHandler,
	acceptRequestHandler commands.AcceptRequestCommandHandler,
	rejectRequestHandler commands.RejectRequestCommandHandler,
	advanceStatusHandler commands.AdvanceStatusCommandHandler,
	adjustPriceHandler commands.AdjustPriceCommandHandler,
	deleteRequestHandler commands.DeleteRequestCommandHandler,
	saveTariffHandler commands.SaveTariffVersionCommandHandler,
	markNotificationHandler commands.MarkNotificationReadCommandHandler,
	markAllNotificationsHdl commands.MarkAllNotificationsReadCommandHandler,
	listRequestsHandler queries.ListRequestsQueryHandler,
	getAgencyStatsHandler queries.GetAgencyStatsQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getTariffVersionsHandler queries.GetTariffVersionsQueryHandler,
) *Server {
	return &Server{
		createRequestHandler:     createRequestHandler,
		acceptRequestHandler:     acceptRequestHandler,
		rejectRequestHandler:     rejectRequestHandler,
		advanceStatusHandler:     advanceStatusHandler,
		adjustPriceHandler:       adjustPriceHandler,
		deleteRequestHandler:     deleteRequestHandler,
		saveTariffHandler:        saveTariffHandler,
		markNotificationHandler:  markNotificationHandler,
		markAllNotificationsHdl:  markAllNotificationsHdl,
		listRequestsHandler:      listRequestsHandler,
		getAgencyStatsHandler:    getAgencyStatsHandler,
		getNotificationsHandler:  getNotificationsHandler,
		getTariffVersionsHandler: getTariffVersionsHandler,
		validate:                 validator.New(),
	}
}

// RegisterRoutes wires the server's handlers into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests", s.ListRequests)
	api.DELETE("/requests/:id", s.DeleteRequest)
	api.POST("/requests/:id/accept", s.AcceptRequest)
	api.POST("/requests/:id/reject", s.RejectRequest)
	api.POST("/requests/:id/status", s.AdvanceStatus)
	api.POST("/requests/:id/price", s.AdjustPrice)

	api.GET("/stats", s.GetStats)

	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)

	api.GET("/tariffs", s.GetTariffVersions)
	api.PUT("/tariffs", s.SaveTariffVersion)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRequestBody is the payload for POST /requests.
type NewRequestBody struct {
	AgencyID    string  `json:"agency_id"`
	ClientName  string  `json:"client_name" validate:"required"`
	ClientEmail string  `json:"client_email" validate:"required,email"`
	ClientPhone string  `json:"client_phone" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Dimensions  string  `json:"dimensions"`
	Description string  `json:"description"`
	ZoneID      int     `json:"zone_id" validate:"required"`
	IsUrgent    bool    `json:"is_urgent"`
}

// AcceptRequestBody is the payload for POST /requests/:id/accept.
type AcceptRequestBody struct {
	AgentID string `json:"agent_id" validate:"required,uuid"`
	Notes   string `json:"notes"`
}

// RejectRequestBody is the payload for POST /requests/:id/reject.
type RejectRequestBody struct {
	AgentID string `json:"agent_id" validate:"required,uuid"`
	Reason  string `json:"reason" validate:"required"`
}

// AdvanceStatusBody is the payload for POST /requests/:id/status.
type AdvanceStatusBody struct {
	Status       string     `json:"status" validate:"required"`
	Notes        string     `json:"notes"`
	PickupDate   *time.Time `json:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

// AdjustPriceBody is the payload for POST /requests/:id/price.
type AdjustPriceBody struct {
	NewPrice int64  `json:"new_price" validate:"gte=0"`
	Reason   string `json:"reason"`
}

// TariffZoneBody is one zone entry of the PUT /tariffs payload.
type TariffZoneBody struct {
	ZoneID            int     `json:"zone_id" validate:"required"`
	ZoneName          string  `json:"zone_name" validate:"required"`
	BaseAmount        int64   `json:"base_amount" validate:"gte=0"`
	PrestationPercent float64 `json:"prestation_percent" validate:"gte=0"`
}

// SaveTariffBody is the payload for PUT /tariffs.
type SaveTariffBody struct {
	Indice int              `json:"indice" validate:"gte=0"`
	Active bool             `json:"active"`
	Zones  []TariffZoneBody `json:"zones" validate:"required,min=1,dive"`
}

// RequestResponse renders one shipment request.
type RequestResponse struct {
	ID              string     `json:"id"`
	AgencyID        string     `json:"agency_id,omitempty"`
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email"`
	ClientPhone     string     `json:"client_phone"`
	Destination     string     `json:"destination"`
	Weight          float64    `json:"weight"`
	Dimensions      string     `json:"dimensions,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	AgentID         *string    `json:"agent_id,omitempty"`
	OriginalPrice   int64      `json:"original_price"`
	FinalPrice      int64      `json:"final_price"`
	InvoiceNumber   *string    `json:"invoice_number,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	PickupDate      *time.Time `json:"pickup_date,omitempty"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
	IsUrgent        bool       `json:"is_urgent"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateRequest handles POST /api/v1/requests - submits a new shipment request.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body NewRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	client, err := request.NewClient(body.ClientName, body.ClientEmail, body.ClientPhone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	pack, err := request.NewPackage(body.Weight, body.Dimensions, body.Description)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(),
		body.AgencyID,
		client,
		body.Destination,
		pack,
		body.ZoneID,
		body.IsUrgent,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	req, err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toRequestResponse(req))
}

// ListRequests handles GET /api/v1/requests - lists requests with optional filters.
func (s *Server) ListRequests(ctx echo.Context) error {
	var agentID *kernel.UUID
	if raw := ctx.QueryParam("agent_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid agent_id")
		}
		agentID = &id
	}

	var status *request.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		st, err := request.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status")
		}
		status = &st
	}

	query, err := queries.NewListRequestsQuery(ctx.QueryParam("agency_id"), agentID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.listRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, rows)
}

// DeleteRequest handles DELETE /api/v1/requests/:id - removes a request.
func (s *Server) DeleteRequest(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	cmd, err := commands.NewDeleteRequestCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptRequest handles POST /api/v1/requests/:id/accept - accepts a pending request.
func (s *Server) AcceptRequest(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body AcceptRequestBody
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	agentID, err := kernel.UUIDFromString(body.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent_id")
	}

	cmd, err := commands.NewAcceptRequestCommand(id, agentID, body.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	req, err := s.acceptRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(req))
}

// RejectRequest handles POST /api/v1/requests/:id/reject - declines a pending request.
func (s *Server) RejectRequest(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body RejectRequestBody
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	agentID, err := kernel.UUIDFromString(body.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent_id")
	}

	cmd, err := commands.NewRejectRequestCommand(id, agentID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	req, err := s.rejectRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(req))
}

// AdvanceStatus handles POST /api/v1/requests/:id/status - moves a request
// along the workflow.
func (s *Server) AdvanceStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body AdvanceStatusBody
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	newStatus, err := request.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status")
	}

	cmd, err := commands.NewAdvanceStatusCommand(id, newStatus, body.Notes, body.PickupDate, body.DeliveryDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	req, err := s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(req))
}

// AdjustPrice handles POST /api/v1/requests/:id/price - changes the final price.
func (s *Server) AdjustPrice(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body AdjustPriceBody
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid request data: "+err.Error())
	}

	cmd, err := commands.NewAdjustPriceCommand(id, body.NewPrice, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	req, err := s.adjustPriceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestResponse(req))
}

// GetStats handles GET /api/v1/stats - computes the dashboard figures.
func (s *Server) GetStats(ctx echo.Context) error {
	var agentID *kernel.UUID
	if raw := ctx.QueryParam("agent_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid agent_id")
		}
		agentID = &id
	}

	query, err := queries.NewGetAgencyStatsQuery(ctx.QueryParam("agency_id"), agentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stats, err := s.getAgencyStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

// GetNotifications handles GET /api/v1/notifications - returns the log, newest first.
func (s *Server) GetNotifications(ctx echo.Context) error {
	query := queries.NewGetNotificationsQuery()

	response, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid notification id")
	}

	cmd, err := commands.NewMarkNotificationReadCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.markNotificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	cmd := commands.NewMarkAllNotificationsReadCommand()

	if err := s.markAllNotificationsHdl.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTariffVersions handles GET /api/v1/tariffs - lists every tariff version.
func (s *Server) GetTariffVersions(ctx echo.Context) error {
	query := queries.NewGetTariffVersionsQuery()

	versions, err := s.getTariffVersionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, versions)
}

// SaveTariffVersion handles PUT /api/v1/tariffs - saves a tariff version.
// An indice of zero creates a new version under the next available indice.
func (s *Server) SaveTariffVersion(ctx echo.Context) error {
	var body SaveTariffBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(body); err != nil {
		return badRequest(ctx, "Invalid tariff data: "+err.Error())
	}

	zones := make([]commands.ZoneInput, 0, len(body.Zones))
	for _, z := range body.Zones {
		zones = append(zones, commands.ZoneInput{
			ZoneID:            z.ZoneID,
			ZoneName:          z.ZoneName,
			BaseAmount:        z.BaseAmount,
			PrestationPercent: z.PrestationPercent,
		})
	}

	cmd, err := commands.NewSaveTariffVersionCommand(body.Indice, body.Active, zones)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	version, err := s.saveTariffHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	zoneResponses := make([]queries.ZoneResponse, 0, len(version.Zones()))
	for _, z := range version.Zones() {
		zoneResponses = append(zoneResponses, queries.ZoneResponse{
			ZoneID:            z.ID(),
			ZoneName:          z.Name(),
			BaseAmount:        z.BaseAmount(),
			PrestationPercent: z.PrestationPercent(),
			PrestationAmount:  z.PrestationAmount(),
			ExpeditionAmount:  z.ExpeditionAmount(),
		})
	}

	return ctx.JSON(http.StatusOK, queries.TariffVersionResponse{
		Indice: version.Indice(),
		Active: version.IsActive(),
		Zones:  zoneResponses,
	})
}

func toRequestResponse(req *request.Request) RequestResponse {
	var agentID *string
	if id := req.Agent(); id != nil {
		s := id.String()
		agentID = &s
	}

	return RequestResponse{
		ID:              req.ID().String(),
		AgencyID:        req.AgencyID(),
		ClientName:      req.Client().Name(),
		ClientEmail:     req.Client().Email(),
		ClientPhone:     req.Client().Phone(),
		Destination:     req.Destination(),
		Weight:          req.Package().Weight(),
		Dimensions:      req.Package().Dimensions(),
		Description:     req.Package().Description(),
		Status:          req.Status().String(),
		AgentID:         agentID,
		OriginalPrice:   req.OriginalPrice(),
		FinalPrice:      req.FinalPrice(),
		InvoiceNumber:   req.InvoiceNumber(),
		Notes:           req.Notes(),
		RejectionReason: req.RejectionReason(),
		PickupDate:      req.PickupDate(),
		DeliveryDate:    req.DeliveryDate(),
		IsUrgent:        req.IsUrgent(),
		CreatedAt:       req.CreatedAt(),
		UpdatedAt:       req.UpdatedAt(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrPersistenceFailure):
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}
}
