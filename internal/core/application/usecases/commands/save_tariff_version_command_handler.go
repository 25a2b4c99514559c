package commands

import (
	"context"

	"expedition/internal/core/domain/model/tariff"
)

// SaveTariffVersionCommandHandler persists tariff versions.
// Every zone's derived amounts are recomputed from the submitted base amount
// and percentage inside the zone constructor, so whichever figure the operator
// edited last, the other one is read from the same submission and never from
// a stale snapshot.
type SaveTariffVersionCommandHandler struct {
	uowFactory TariffUoWFactory
}

// NewSaveTariffVersionCommandHandler creates a handler for tariff version saves.
func NewSaveTariffVersionCommandHandler(uowFactory TariffUoWFactory) SaveTariffVersionCommandHandler {
	return SaveTariffVersionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the save command.
// A sentinel indice is finalized to max(existing indices) + 1 and the version
// becomes active. Returns the stored version.
func (h *SaveTariffVersionCommandHandler) Handle(
	ctx context.Context,
	cmd SaveTariffVersionCommand,
) (*tariff.Version, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	zones := make([]tariff.Zone, 0, len(cmd.Zones()))
	for _, in := range cmd.Zones() {
		z, err := tariff.NewZone(in.ZoneID, in.ZoneName, in.BaseAmount, in.PrestationPercent)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	version, err := tariff.NewVersion(cmd.Indice(), cmd.Active(), zones)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tariffRepo := uow.TariffRepository()

	if version.IsNew() {
		maxIndice, maxErr := tariffRepo.MaxIndice(ctx)
		if maxErr != nil {
			return nil, maxErr
		}
		if err = version.Finalize(tariff.NextIndice([]int{maxIndice})); err != nil {
			return nil, err
		}
	}

	if err = tariffRepo.Save(ctx, version); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return version, nil
}
