package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/bidrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListBidsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListBidsQueryHandler
	bidRepo   *bidrepo.GormBidRepository
}

func (suite *ListBidsQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.handler = queries.NewListBidsQueryHandler(db)
	suite.bidRepo = bidrepo.NewGormBidRepository(db, &mockAggregateTracker{})
}

func (suite *ListBidsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListBidsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE bids").Error)
}

func (suite *ListBidsQueryHandlerTestSuite) TestHandle_NoBids_ReturnsEmptySlice() {
	query, err := queries.NewListBidsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListBidsQueryHandlerTestSuite) TestHandle_ReturnsBidsCheapestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	expensive := suite.seedBid(ctx, orderID, 150000, "can pick up tomorrow")
	cheap := suite.seedBid(ctx, orderID, 95000, "")
	middle := suite.seedBid(ctx, orderID, 120000, "")

	query, err := queries.NewListBidsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 3)
	suite.Equal(cheap.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(expensive.ID(), result[2].ID)
	suite.Equal("can pick up tomorrow", result[2].Message)
	suite.Equal(bid.Pending.String(), result[0].Status)
}

func (suite *ListBidsQueryHandlerTestSuite) TestHandle_ScopedToOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	mine := suite.seedBid(ctx, orderID, 125000, "")
	suite.seedBid(ctx, kernel.NewUUID(), 110000, "")

	query, err := queries.NewListBidsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal(mine.CarrierID(), result[0].CarrierID)
}

func (suite *ListBidsQueryHandlerTestSuite) TestHandle_OptionalFieldsRoundTrip() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	pickupAt := time.Now().UTC().Add(4 * time.Hour).Truncate(time.Second)

	b, err := bid.NewBid(
		kernel.NewUUID(), orderID, kernel.NewUUID(), &vehicleID,
		125000, "refrigerated truck", &pickupAt, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.bidRepo.Add(ctx, b))

	query, err := queries.NewListBidsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Require().NotNil(result[0].VehicleID)
	suite.Equal(vehicleID, *result[0].VehicleID)
	suite.Require().NotNil(result[0].EstimatedPickupAt)
	suite.True(pickupAt.Equal(*result[0].EstimatedPickupAt))
}

func (suite *ListBidsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListBidsQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListBidsQuery constructor")
}

func (suite *ListBidsQueryHandlerTestSuite) seedBid(
	ctx context.Context, orderID kernel.UUID, price float64, message string,
) *bid.Bid {
	b, err := bid.NewBid(
		kernel.NewUUID(), orderID, kernel.NewUUID(), nil,
		price, message, nil, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.bidRepo.Add(ctx, b))
	return b
}

func TestListBidsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListBidsQueryHandlerTestSuite))
}
