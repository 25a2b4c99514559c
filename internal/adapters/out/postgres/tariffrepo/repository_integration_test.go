package tariffrepo_test

import (
	"context"
	"testing"
	"time"

	"expedition/internal/adapters/out/postgres/tariffrepo"
	"expedition/internal/core/domain/model/tariff"
	"expedition/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TariffRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *tariffrepo.GormTariffRepository
}

func (suite *TariffRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&tariffrepo.VersionDTO{}, &tariffrepo.ZoneDTO{}))
}

func (suite *TariffRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TariffRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tariff_versions, tariff_zones").Error)
	suite.repo = tariffrepo.NewGormTariffRepository(suite.db)
}

func (suite *TariffRepositoryIntegrationTestSuite) TestSave_And_Get_RoundTrip() {
	ctx := context.Background()
	version := suite.newVersion(1, true)

	suite.Require().NoError(suite.repo.Save(ctx, version))

	loaded, err := suite.repo.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(1, loaded.Indice())
	suite.True(loaded.IsActive())

	zones := loaded.Zones()
	suite.Require().Len(zones, 2)
	suite.Equal("Europe", zones[0].Name())
	suite.Equal(int64(10000), zones[0].BaseAmount())
	suite.Equal(int64(1500), zones[0].PrestationAmount())
	suite.Equal(int64(11500), zones[0].ExpeditionAmount())
	suite.Equal("America", zones[1].Name())
	suite.Equal(int64(24000), zones[1].ExpeditionAmount())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestSave_ExistingIndice_ReplacesZoneSet() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(1, true)))

	zone, err := tariff.NewZone(3, "Asia", 30000, 10)
	suite.Require().NoError(err)
	replacement, err := tariff.NewVersion(1, false, []tariff.Zone{zone})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.Save(ctx, replacement))

	loaded, err := suite.repo.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
	suite.Require().Len(loaded.Zones(), 1)
	suite.Equal("Asia", loaded.Zones()[0].Name())

	var zoneCount int64
	suite.Require().NoError(suite.db.Model(&tariffrepo.ZoneDTO{}).Count(&zoneCount).Error)
	suite.Equal(int64(1), zoneCount)
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), 42)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetActive_PrefersHighestActiveIndice() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(1, true)))
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(2, false)))
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(3, true)))

	active, err := suite.repo.GetActive(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, active.Indice())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetActive_NoActiveVersion_ReturnsNotFound() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(1, false)))

	_, err := suite.repo.GetActive(ctx)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TariffRepositoryIntegrationTestSuite) TestGetAll_OrderedByIndice() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(2, false)))
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(1, true)))

	versions, err := suite.repo.GetAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(versions, 2)
	suite.Equal(1, versions[0].Indice())
	suite.Equal(2, versions[1].Indice())
}

func (suite *TariffRepositoryIntegrationTestSuite) TestMaxIndice() {
	ctx := context.Background()

	maxIndice, err := suite.repo.MaxIndice(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, maxIndice)

	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(1, true)))
	suite.Require().NoError(suite.repo.Save(ctx, suite.newVersion(4, false)))

	maxIndice, err = suite.repo.MaxIndice(ctx)
	suite.Require().NoError(err)
	suite.Equal(4, maxIndice)
}

func (suite *TariffRepositoryIntegrationTestSuite) newVersion(indice int, active bool) *tariff.Version {
	europe, err := tariff.NewZone(1, "Europe", 10000, 15)
	suite.Require().NoError(err)
	america, err := tariff.NewZone(2, "America", 20000, 20)
	suite.Require().NoError(err)

	version, err := tariff.NewVersion(indice, active, []tariff.Zone{europe, america})
	suite.Require().NoError(err)
	return version
}

func TestTariffRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TariffRepositoryIntegrationTestSuite))
}
