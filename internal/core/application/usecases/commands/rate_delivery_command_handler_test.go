package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRateDeliveryCommandHandler_Handle_ShipperRatesDriver(t *testing.T) {
	ctx := t.Context()
	shipperID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o := fixtureOrder(t, shipperID, order.Completed)
	asg := fixtureAssignment(t, o.ID(), driverID)
	profile, err := carrier.NewProfile(driverID)
	require.NoError(t, err)

	cmd, err := commands.NewRateDeliveryCommand(o.ID(), shipperID, 5, "fast and careful")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	asgRepo := new(MockAssignmentRepository)
	carrierRepo := new(MockCarrierRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(asgRepo).Twice()
	uow.On("CarrierRepository").Return(carrierRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	asgRepo.On("GetByOrder", mock.Anything, o.ID()).Return(asg, nil).Once()
	carrierRepo.On("Ensure", mock.Anything, driverID).Return(profile, nil).Once()
	carrierRepo.On("Update", mock.Anything, profile).Return(nil).Once()
	asgRepo.On("Update", mock.Anything, asg).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, asg.ShipperRating())
	require.Equal(t, 5, *asg.ShipperRating())
	require.Equal(t, 5.0, profile.Rating())
	require.Equal(t, 1, profile.TotalRatings())
	carrierRepo.AssertExpectations(t)
	asgRepo.AssertExpectations(t)
}

func TestRateDeliveryCommandHandler_Handle_DriverRatesShipper(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Completed)
	asg := fixtureAssignment(t, o.ID(), driverID)

	cmd, err := commands.NewRateDeliveryCommand(o.ID(), driverID, 4, "clear instructions")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	asgRepo := new(MockAssignmentRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(asgRepo).Twice()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	asgRepo.On("GetByOrder", mock.Anything, o.ID()).Return(asg, nil).Once()
	asgRepo.On("Update", mock.Anything, asg).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	// a driver rating never touches the carrier profile
	h := commands.NewRateDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, asg.DriverRating())
	require.Equal(t, 4, *asg.DriverRating())
	require.Nil(t, asg.ShipperRating())
	asgRepo.AssertExpectations(t)
}

func TestRateDeliveryCommandHandler_Handle_OrderNotCompleted(t *testing.T) {
	ctx := t.Context()
	shipperID := kernel.NewUUID()
	o := fixtureOrder(t, shipperID, order.Delivered)
	cmd, err := commands.NewRateDeliveryCommand(o.ID(), shipperID, 5, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotCompleted)
}

func TestRateDeliveryCommandHandler_Handle_Outsider(t *testing.T) {
	ctx := t.Context()
	o := fixtureOrder(t, kernel.NewUUID(), order.Completed)
	asg := fixtureAssignment(t, o.ID(), kernel.NewUUID())
	cmd, err := commands.NewRateDeliveryCommand(o.ID(), kernel.NewUUID(), 5, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	asgRepo := new(MockAssignmentRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(asgRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	asgRepo.On("GetByOrder", mock.Anything, o.ID()).Return(asg, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrNotAPartyToOrder)
}

func TestRateDeliveryCommandHandler_Handle_SecondRatingRejected(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.Completed)
	asg := fixtureAssignment(t, o.ID(), driverID)
	require.NoError(t, asg.RateByDriver(3, "first"))

	cmd, err := commands.NewRateDeliveryCommand(o.ID(), driverID, 5, "second")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	asgRepo := new(MockAssignmentRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(asgRepo).Once()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	asgRepo.On("GetByOrder", mock.Anything, o.ID()).Return(asg, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, assignment.ErrAlreadyRated)
	require.Equal(t, 3, *asg.DriverRating())
}

func TestRateDeliveryCommand_ScoreBounds(t *testing.T) {
	for _, score := range []int{0, 6} {
		_, err := commands.NewRateDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), score, "")
		require.Error(t, err, "score %d", score)
	}
}
