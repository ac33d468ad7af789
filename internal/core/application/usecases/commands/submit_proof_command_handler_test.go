package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitProofCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.InTransit)
	asg := fixtureAssignment(t, o.ID(), driverID)
	cmd, err := commands.NewSubmitProofCommand(o.ID(), driverID, "photos/pod-123.jpg", "left at gate", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	asgRepo := new(MockAssignmentRepository)
	uow := new(MockDispatchUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(asgRepo).Twice()
	orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	asgRepo.On("GetByOrder", mock.Anything, o.ID()).Return(asg, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	asgRepo.On("Update", mock.Anything, asg).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, o.ShipperID(), ports.EventOrderStatusChanged, mock.Anything).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProofCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Delivered, o.Status())
	require.Equal(t, "photos/pod-123.jpg", asg.ProofPhotoRef())
	require.NotNil(t, asg.DeliveredAt())
	orderRepo.AssertExpectations(t)
	asgRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSubmitProofCommandHandler_Handle_NotTheDriver(t *testing.T) {
	ctx := t.Context()
	o := fixtureOrder(t, kernel.NewUUID(), order.InTransit)
	asg := fixtureAssignment(t, o.ID(), kernel.NewUUID())
	cmd, err := commands.NewSubmitProofCommand(o.ID(), kernel.NewUUID(), "photos/pod.jpg", "", "")
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

	h := commands.NewSubmitProofCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrWrongParty)
	require.Equal(t, order.InTransit, o.Status())
}

func TestSubmitProofCommandHandler_Handle_OrderNotInTransit(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	o := fixtureOrder(t, kernel.NewUUID(), order.PickedUp)
	asg := fixtureAssignment(t, o.ID(), driverID)
	cmd, err := commands.NewSubmitProofCommand(o.ID(), driverID, "photos/pod.jpg", "", "")
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

	h := commands.NewSubmitProofCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	require.Nil(t, asg.DeliveredAt())
}

func TestSubmitProofCommand_RequiresAtLeastOneArtifact(t *testing.T) {
	_, err := commands.NewSubmitProofCommand(kernel.NewUUID(), kernel.NewUUID(), "", "", "")
	require.Error(t, err)
}
