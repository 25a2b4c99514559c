package commands

import (
	"errors"
	"fmt"

	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrSaveTariffVersionCommandIsNotConstructed = errors.New(
	"SaveTariffVersionCommand must be created via NewSaveTariffVersionCommand constructor",
)

// ZoneInput carries the two editable figures of one zone entry.
// The derived amounts are never accepted from callers; they are recomputed
// when the version is saved.
type ZoneInput struct {
	ZoneID            int
	ZoneName          string
	BaseAmount        int64
	PrestationPercent float64
}

// SaveTariffVersionCommand represents an operator saving a tariff version.
// An indice of tariff.NewVersionIndice creates a new version that will be
// finalized with the next available indice; an existing indice replaces the
// stored version (the latest save wins).
type SaveTariffVersionCommand struct { //nolint:recvcheck //using for validation
	indice int
	active bool
	zones  []ZoneInput

	guard guard.ConstructorGuard
}

// NewSaveTariffVersionCommand creates a command to save a tariff version.
// At least one zone is required.
func NewSaveTariffVersionCommand(indice int, active bool, zones []ZoneInput) (SaveTariffVersionCommand, error) {
	cmd := SaveTariffVersionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIndice(indice),
		cmd.setZones(zones),
	); err != nil {
		return SaveTariffVersionCommand{}, err
	}

	cmd.active = active
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveTariffVersionCommand) Validate() error {
	return c.guard.Validate(ErrSaveTariffVersionCommandIsNotConstructed)
}

// Indice returns the version identifier, possibly the new-version sentinel.
func (c SaveTariffVersionCommand) Indice() int {
	return c.indice
}

// Active reports whether the saved version should be usable for pricing.
func (c SaveTariffVersionCommand) Active() bool {
	return c.active
}

// Zones returns the zone entries to save.
func (c SaveTariffVersionCommand) Zones() []ZoneInput {
	out := make([]ZoneInput, len(c.zones))
	copy(out, c.zones)
	return out
}

func (c *SaveTariffVersionCommand) setIndice(indice int) error {
	if indice < 0 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"indice",
			fmt.Errorf("%d is negative", indice),
		)
	}

	c.indice = indice
	return nil
}

func (c *SaveTariffVersionCommand) setZones(zones []ZoneInput) error {
	if len(zones) == 0 {
		return errs.NewValueIsRequiredError("zones")
	}

	c.zones = make([]ZoneInput, len(zones))
	copy(c.zones, zones)
	return nil
}
