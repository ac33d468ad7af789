package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPlaceBidCommand(t *testing.T, orderID, carrierID kernel.UUID, vehicleID *kernel.UUID) commands.PlaceBidCommand {
	t.Helper()
	cmd, err := commands.NewPlaceBidCommand(
		kernel.NewUUID(), orderID, carrierID, vehicleID,
		125000, "can pick up tomorrow", nil,
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceBidCommandHandler_Handle_FirstBidOpensBidding(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Posted)
	cmd := newPlaceBidCommand(t, o.ID(), carrierID, nil)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	bidRepo.On("HasLiveBid", mock.Anything, o.ID(), carrierID).Return(false, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	bidRepo.On("Add", mock.Anything, mock.AnythingOfType("*bid.Bid")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, o.ShipperID(), ports.EventOrderStatusChanged, mock.Anything).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceBidCommandHandler(factory, new(MockVehicleRegistry), notifier)
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, placed)
	require.Equal(t, bid.Pending, placed.Status())
	require.Equal(t, order.Bidding, o.Status())
	orderRepo.AssertExpectations(t)
	bidRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_LaterBidKeepsBiddingStatus(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Bidding)
	cmd := newPlaceBidCommand(t, o.ID(), carrierID, nil)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	bidRepo.On("HasLiveBid", mock.Anything, o.ID(), carrierID).Return(false, nil).Once()
	bidRepo.On("Add", mock.Anything, mock.AnythingOfType("*bid.Bid")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceBidCommandHandler(factory, new(MockVehicleRegistry), notifier)
	_, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	// no order update and no notification expected: the order is already
	// BIDDING
	orderRepo.AssertExpectations(t)
	bidRepo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceBidCommandHandler_Handle_OrderNotBiddable(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Assigned)
	cmd := newPlaceBidCommand(t, o.ID(), carrierID, nil)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceBidCommandHandler(factory, new(MockVehicleRegistry), new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, bid.ErrOrderNotBiddable)
	uow.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_DuplicateBid(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Bidding)
	cmd := newPlaceBidCommand(t, o.ID(), carrierID, nil)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	bidRepo.On("HasLiveBid", mock.Anything, o.ID(), carrierID).Return(true, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceBidCommandHandler(factory, new(MockVehicleRegistry), new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, bid.ErrDuplicateBid)
	bidRepo.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_VehicleOwnershipMismatch(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	cmd := newPlaceBidCommand(t, kernel.NewUUID(), carrierID, &vehicleID)

	vehicles := new(MockVehicleRegistry)
	vehicles.On("OwnedBy", mock.Anything, vehicleID, carrierID).Return(false, nil).Once()

	// the ownership check fails before any transaction is opened
	h := commands.NewPlaceBidCommandHandler(new(MockBidUoWFactory), vehicles, new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, bid.ErrVehicleOwnershipMismatch)
	vehicles.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_OwnedVehiclePasses(t *testing.T) {
	ctx := t.Context()
	carrierID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Bidding)
	cmd := newPlaceBidCommand(t, o.ID(), carrierID, &vehicleID)

	vehicles := new(MockVehicleRegistry)
	vehicles.On("OwnedBy", mock.Anything, vehicleID, carrierID).Return(true, nil).Once()

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	bidRepo.On("HasLiveBid", mock.Anything, o.ID(), carrierID).Return(false, nil).Once()
	bidRepo.On("Add", mock.Anything, mock.AnythingOfType("*bid.Bid")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceBidCommandHandler(factory, vehicles, new(MockNotifier))
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, placed.VehicleID())
	vehicles.AssertExpectations(t)
}

func TestPlaceBidCommand_RejectsNonPositivePrice(t *testing.T) {
	_, err := commands.NewPlaceBidCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		0, "", nil,
	)
	require.Error(t, err)
}
