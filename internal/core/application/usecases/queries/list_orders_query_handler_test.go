package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/assignmentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repositories' tracker dependency where
// tracking is irrelevant to the test.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	handler        queries.ListOrdersQueryHandler
	orderRepo      *orderrepo.GormOrderRepository
	assignmentRepo *assignmentrepo.GormAssignmentRepository
	references     services.ReferenceGenerator
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.assignmentRepo = assignmentrepo.NewGormAssignmentRepository(db, &mockAggregateTracker{})
	suite.references = services.NewReferenceGenerator()
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, assignments").Error)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), ports.RoleShipper)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_Shipper_SeesOnlyOwnOrders() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()

	own := suite.seedOrder(ctx, shipperID, order.Posted)
	suite.seedOrder(ctx, kernel.NewUUID(), order.Posted)

	query, err := queries.NewListOrdersQuery(shipperID, ports.RoleShipper)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(own.ID(), result[0].ID)
	suite.Equal(own.Reference(), result[0].Reference)
	suite.Equal(order.Posted.String(), result[0].Status)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_Driver_SeesOpenMarketAndOwnAssignments() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	posted := suite.seedOrder(ctx, kernel.NewUUID(), order.Posted)
	bidding := suite.seedOrder(ctx, kernel.NewUUID(), order.Bidding)
	suite.seedOrder(ctx, kernel.NewUUID(), order.Draft)

	// An order already in transit is invisible unless it is this driver's.
	mine := suite.seedOrder(ctx, kernel.NewUUID(), order.InTransit)
	suite.seedAssignment(ctx, mine.ID(), driverID)
	suite.seedOrder(ctx, kernel.NewUUID(), order.InTransit)

	query, err := queries.NewListOrdersQuery(driverID, ports.RoleDriver)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 3)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	suite.True(resultIDs[posted.ID()])
	suite.True(resultIDs[bidding.ID()])
	suite.True(resultIDs[mine.ID()])
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_Admin_SeesEverything() {
	ctx := context.Background()

	suite.seedOrder(ctx, kernel.NewUUID(), order.Draft)
	suite.seedOrder(ctx, kernel.NewUUID(), order.Posted)
	suite.seedOrder(ctx, kernel.NewUUID(), order.Cancelled)

	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), ports.RoleAdmin)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(result, 3)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_NewestFirst() {
	ctx := context.Background()
	shipperID := kernel.NewUUID()

	older := suite.seedOrderAt(ctx, shipperID, order.Posted, time.Now().UTC().Add(-2*time.Hour))
	newer := suite.seedOrderAt(ctx, shipperID, order.Posted, time.Now().UTC())

	query, err := queries.NewListOrdersQuery(shipperID, ports.RoleShipper)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListOrdersQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func (suite *ListOrdersQueryHandlerTestSuite) seedOrder(
	ctx context.Context, shipperID kernel.UUID, status order.Status,
) *order.Order {
	return suite.seedOrderAt(ctx, shipperID, status, time.Now().UTC())
}

func (suite *ListOrdersQueryHandlerTestSuite) seedOrderAt(
	ctx context.Context, shipperID kernel.UUID, status order.Status, createdAt time.Time,
) *order.Order {
	cargo, err := order.NewCargo(order.CargoGeneral, "cement bags", 1200, nil, 40)
	suite.Require().NoError(err)

	pickup, err := order.NewWaypoint("12 Rue Felix Faure", "Dakar", nil, "", "")
	suite.Require().NoError(err)
	delivery, err := order.NewWaypoint("Km 4 Route de Rufisque", "Pikine", nil, "", "")
	suite.Require().NoError(err)

	var finalPrice *float64
	if status.AllowsFinalPrice() {
		price := 125000.0
		finalPrice = &price
	}

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:         kernel.NewUUID(),
		Reference:  suite.references.Generate(),
		ShipperID:  shipperID,
		Cargo:      cargo,
		Pickup:     pickup,
		Delivery:   delivery,
		FinalPrice: finalPrice,
		Currency:   "XOF",
		Status:     status,
		CreatedAt:  createdAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	return o
}

func (suite *ListOrdersQueryHandlerTestSuite) seedAssignment(
	ctx context.Context, orderID, driverID kernel.UUID,
) {
	asg, err := assignment.NewAssignment(
		kernel.NewUUID(), orderID, driverID, nil, kernel.NewUUID(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignmentRepo.Add(ctx, asg))
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
