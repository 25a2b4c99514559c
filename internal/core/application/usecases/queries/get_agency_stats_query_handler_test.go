package queries_test

import (
	"context"
	"testing"
	"time"

	"expedition/internal/adapters/out/postgres/requestrepo"
	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/request"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAgencyStatsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAgencyStatsQueryHandler
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&requestrepo.RequestDTO{}))
	suite.handler = queries.NewGetAgencyStatsQueryHandler(db)
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipment_requests").Error)
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsZeroes() {
	query, err := queries.NewGetAgencyStatsQuery("", nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(0), result.TotalRequests)
	suite.Equal(int64(0), result.TotalRevenue)
	suite.Equal(int64(0), result.UrgentCount)
	suite.Empty(result.CountsByStatus)
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) TestHandle_CountsAndRevenueRecomputedFromStore() {
	now := time.Now().UTC()
	agentID := kernel.NewUUID()

	suite.seedRequest("agency-1", false, now)
	suite.seedRequest("agency-1", true, now)

	// One request walked all the way to delivered contributes to revenue.
	delivered := suite.seedRequest("agency-1", false, now)
	suite.Require().NoError(delivered.Accept(agentID, "INV-2026-1", "", now))
	suite.Require().NoError(delivered.AdvanceTo(request.PickupInProgress, "", nil, nil, now))
	suite.Require().NoError(delivered.AdvanceTo(request.Collected, "", &now, nil, now))
	suite.Require().NoError(delivered.AdvanceTo(request.Registered, "", nil, nil, now))
	suite.Require().NoError(delivered.AdvanceTo(request.InTransit, "", nil, nil, now))
	suite.Require().NoError(delivered.AdvanceTo(request.DeliveryInProgress, "", nil, nil, now))
	suite.Require().NoError(delivered.AdvanceTo(request.Delivered, "", nil, &now, now))
	repo := requestrepo.NewGormRequestRepository(suite.db, &noopTracker{})
	suite.Require().NoError(repo.Update(context.Background(), delivered))

	query, err := queries.NewGetAgencyStatsQuery("", nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(3), result.TotalRequests)
	suite.Equal(int64(2), result.CountsByStatus["pending"])
	suite.Equal(int64(1), result.CountsByStatus["delivered"])
	suite.Equal(int64(15000), result.TotalRevenue)
	suite.Equal(int64(1), result.UrgentCount)
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) TestHandle_ScopesByAgency() {
	now := time.Now().UTC()
	suite.seedRequest("agency-1", false, now)
	suite.seedRequest("agency-2", true, now)

	query, err := queries.NewGetAgencyStatsQuery("agency-2", nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.TotalRequests)
	suite.Equal(int64(1), result.UrgentCount)
}

func (suite *GetAgencyStatsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAgencyStatsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetAgencyStatsQuery constructor")
}

// seedRequest persists a pending request with the given urgency flag.
func (suite *GetAgencyStatsQueryHandlerTestSuite) seedRequest(
	agencyID string, isUrgent bool, createdAt time.Time,
) *request.Request {
	client, err := request.NewClient("Alice Martin", "alice@example.com", "+33123456789")
	suite.Require().NoError(err)
	pack, err := request.NewPackage(2.5, "30x20x10", "books")
	suite.Require().NoError(err)

	req, err := request.NewRequest(
		kernel.NewUUID(), agencyID, client, "France", pack, 15000, isUrgent, createdAt)
	suite.Require().NoError(err)

	repo := requestrepo.NewGormRequestRepository(suite.db, &noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), req))
	return req
}

func TestGetAgencyStatsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAgencyStatsQueryHandlerTestSuite))
}
