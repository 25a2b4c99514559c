// Package requestrepo provides data transfer objects and mapping functions for
// shipment request persistence. It implements the repository pattern for the
// request aggregate, converting between domain entities and database rows.
package requestrepo

import (
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting request aggregates.
type RequestDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AgencyID        string     `gorm:"index"`
	ClientName      string     `gorm:"not null"`
	ClientEmail     string     `gorm:"not null"`
	ClientPhone     string     `gorm:"not null"`
	Destination     string     `gorm:"not null"`
	Weight          float64
	Dimensions      string
	Description     string
	Status          int        `gorm:"index"`
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	OriginalPrice   int64
	FinalPrice      int64
	InvoiceNumber   *string    `gorm:"uniqueIndex"`
	Notes           string
	RejectionReason string
	PickupDate      *time.Time
	DeliveryDate    *time.Time
	IsUrgent        bool
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "shipment_requests"
}

// fromDomain converts a request domain aggregate to its database representation.
func fromDomain(req *request.Request) RequestDTO {
	var agentID *uuid.UUID
	if id := req.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return RequestDTO{
		ID:              req.ID().Bytes(),
		AgencyID:        req.AgencyID(),
		ClientName:      req.Client().Name(),
		ClientEmail:     req.Client().Email(),
		ClientPhone:     req.Client().Phone(),
		Destination:     req.Destination(),
		Weight:          req.Package().Weight(),
		Dimensions:      req.Package().Dimensions(),
		Description:     req.Package().Description(),
		Status:          int(req.Status()),
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

// toDomain converts a database row to a request domain aggregate using RestoreRequest.
func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	client, err := request.NewClient(dto.ClientName, dto.ClientEmail, dto.ClientPhone)
	if err != nil {
		return nil, err
	}

	pack, err := request.NewPackage(dto.Weight, dto.Dimensions, dto.Description)
	if err != nil {
		return nil, err
	}

	return request.RestoreRequest(
		id,
		dto.AgencyID,
		client,
		dto.Destination,
		pack,
		request.Status(dto.Status),
		agentID,
		dto.OriginalPrice,
		dto.FinalPrice,
		dto.InvoiceNumber,
		dto.Notes,
		dto.RejectionReason,
		dto.PickupDate,
		dto.DeliveryDate,
		dto.IsUrgent,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
