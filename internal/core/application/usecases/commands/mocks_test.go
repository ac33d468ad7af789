package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetStalePosted(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) GetForOrder(ctx context.Context, orderID, bidID kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, orderID, bidID)
	if b, ok := args.Get(0).(*bid.Bid); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBidRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if bids, ok := args.Get(0).([]*bid.Bid); ok {
		return bids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBidRepository) HasLiveBid(ctx context.Context, orderID, carrierID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, carrierID)
	return args.Bool(0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if a, ok := args.Get(0).(*assignment.Assignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Ensure(ctx context.Context, carrierID kernel.UUID) (*carrier.Profile, error) {
	args := m.Called(ctx, carrierID)
	if p, ok := args.Get(0).(*carrier.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarrierRepository) Update(ctx context.Context, p *carrier.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDispatchUoW satisfies every unit-of-work interface the command
// handlers use, so one mock serves all of them.
type MockDispatchUoW struct{ mock.Mock }

func (m *MockDispatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDispatchUoW) BidRepository() ports.BidRepository {
	args := m.Called()
	return args.Get(0).(ports.BidRepository)
}

func (m *MockDispatchUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockDispatchUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBidUoWFactory struct{ mock.Mock }

func (m *MockBidUoWFactory) Create() commands.BidUoW {
	args := m.Called()
	return args.Get(0).(commands.BidUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipientID kernel.UUID, kind ports.EventKind, payload map[string]any) error {
	args := m.Called(ctx, recipientID, kind, payload)
	return args.Error(0)
}

func (m *MockNotifier) Broadcast(ctx context.Context, kind ports.EventKind, payload map[string]any) error {
	args := m.Called(ctx, kind, payload)
	return args.Error(0)
}

type MockVehicleRegistry struct{ mock.Mock }

func (m *MockVehicleRegistry) OwnedBy(ctx context.Context, vehicleID, ownerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, vehicleID, ownerID)
	return args.Bool(0), args.Error(1)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) RoleOf(ctx context.Context, userID kernel.UUID) (ports.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.Role), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}

func fixtureCargo(t *testing.T) order.Cargo {
	t.Helper()
	cargo, err := order.NewCargo(order.CargoGeneral, "cement bags", 1200, nil, 40)
	require.NoError(t, err)
	return cargo
}

func fixtureWaypoint(t *testing.T, address string) order.Waypoint {
	t.Helper()
	wp, err := order.NewWaypoint(address, "Dakar", nil, "", "")
	require.NoError(t, err)
	return wp
}

// fixtureOrder restores an order in the given status, with a final price
// whenever the status can carry one.
func fixtureOrder(t *testing.T, shipperID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	var finalPrice *float64
	if status.AllowsFinalPrice() {
		finalPrice = ptr(125000.0)
	}

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:         kernel.NewUUID(),
		Reference:  "MESS-K7X2P",
		ShipperID:  shipperID,
		Cargo:      fixtureCargo(t),
		Pickup:     fixtureWaypoint(t, "12 Rue Felix Faure"),
		Delivery:   fixtureWaypoint(t, "Km 4 Route de Rufisque"),
		FinalPrice: finalPrice,
		Currency:   "XOF",
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return o
}

func fixtureBid(t *testing.T, orderID, carrierID kernel.UUID, price float64, status bid.Status) *bid.Bid {
	t.Helper()
	b, err := bid.RestoreBid(
		kernel.NewUUID(), orderID, carrierID, nil,
		price, "", nil, status, time.Now().UTC(),
	)
	require.NoError(t, err)
	return b
}

func fixtureAssignment(t *testing.T, orderID, driverID kernel.UUID) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(
		kernel.NewUUID(), orderID, driverID, nil, kernel.NewUUID(),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return a
}
