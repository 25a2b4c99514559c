package queries

import (
	"errors"

	"expedition/internal/pkg/guard"
)

var ErrGetTariffVersionsQueryIsNotConstructed = errors.New(
	"GetTariffVersionsQuery must be created via NewGetTariffVersionsQuery constructor",
)

// GetTariffVersionsQuery retrieves every tariff version with its zone entries.
type GetTariffVersionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTariffVersionsQuery creates a parameterless tariff listing query.
func NewGetTariffVersionsQuery() GetTariffVersionsQuery {
	return GetTariffVersionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTariffVersionsQuery) Validate() error {
	return q.guard.Validate(ErrGetTariffVersionsQueryIsNotConstructed)
}

// ZoneResponse is one zone entry of a tariff version read model.
type ZoneResponse struct {
	ZoneID            int
	ZoneName          string
	BaseAmount        int64
	PrestationPercent float64
	PrestationAmount  int64
	ExpeditionAmount  int64
}

// TariffVersionResponse is one tariff version of the read model.
type TariffVersionResponse struct {
	Indice int
	Active bool
	Zones  []ZoneResponse
}
