package commands_test

import (
	"errors"
	"testing"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/tariff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func zoneInputs() []commands.ZoneInput {
	return []commands.ZoneInput{
		{ZoneID: 1, ZoneName: "Europe", BaseAmount: 10000, PrestationPercent: 15},
		{ZoneID: 2, ZoneName: "America", BaseAmount: 20000, PrestationPercent: 20},
	}
}

func TestSaveTariffVersionCommandHandler_Handle_NewVersion(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSaveTariffVersionCommand(tariff.NewVersionIndice, false, zoneInputs())
	require.NoError(t, err)

	tariffRepo := new(MockTariffRepository)
	uow := new(MockTariffUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TariffRepository").Return(tariffRepo).Once(),
		tariffRepo.On("MaxIndice", ctx).Return(3, nil).Once(),
		tariffRepo.On("Save", mock.Anything, mock.AnythingOfType("*tariff.Version")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTariffUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSaveTariffVersionCommandHandler(factory)
	saved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, saved)

	// A new version takes the next free indice and becomes active.
	assert.Equal(t, 4, saved.Indice())
	assert.True(t, saved.IsActive())
	require.Len(t, saved.Zones(), 2)
	assert.Equal(t, int64(11500), saved.Zones()[0].ExpeditionAmount())
	assert.Equal(t, int64(24000), saved.Zones()[1].ExpeditionAmount())

	tariffRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSaveTariffVersionCommandHandler_Handle_ExistingVersion(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSaveTariffVersionCommand(2, true, zoneInputs())
	require.NoError(t, err)

	tariffRepo := new(MockTariffRepository)
	uow := new(MockTariffUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TariffRepository").Return(tariffRepo).Once(),
		tariffRepo.On("Save", mock.Anything, mock.AnythingOfType("*tariff.Version")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTariffUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSaveTariffVersionCommandHandler(factory)
	saved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Saving an existing indice keeps it and never consults MaxIndice.
	assert.Equal(t, 2, saved.Indice())
	tariffRepo.AssertNotCalled(t, "MaxIndice", mock.Anything)
	tariffRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSaveTariffVersionCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSaveTariffVersionCommand(2, true, zoneInputs())
	require.NoError(t, err)

	tariffRepo := new(MockTariffRepository)
	uow := new(MockTariffUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TariffRepository").Return(tariffRepo).Once(),
		tariffRepo.On("Save", mock.Anything, mock.AnythingOfType("*tariff.Version")).
			Return(errors.New("save error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTariffUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSaveTariffVersionCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestSaveTariffVersionCommandHandler_Handle_InvalidZone(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSaveTariffVersionCommand(1, true, []commands.ZoneInput{
		{ZoneID: 1, ZoneName: "", BaseAmount: 10000, PrestationPercent: 15},
	})
	require.NoError(t, err)

	// Zone validation fails before any unit of work is created.
	factory := new(MockTariffUoWFactory)
	h := commands.NewSaveTariffVersionCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestSaveTariffVersionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SaveTariffVersionCommand{} // not constructed properly
	factory := new(MockTariffUoWFactory)
	h := commands.NewSaveTariffVersionCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
