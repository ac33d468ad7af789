package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// ConfirmDeliveryCommandHandler completes delivered orders on the shipper's
// confirmation. The DELIVERED to COMPLETED transition and the confirmation
// flag commit together; the driver is notified afterwards.
//
// Confirmation is only accepted from DELIVERED. An order parked in DISPUTED
// reaches COMPLETED through admin resolution, not through this command.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.DispatchNotifier
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery
// confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.DispatchNotifier,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle completes the order. Returns ErrWrongParty when the caller is not
// the order's shipper and an order.InvalidTransitionError when the order is
// not DELIVERED.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !o.ShipperID().IsEqual(command.ActingUserID()) {
		return ErrWrongParty
	}

	if o.Status() != order.Delivered {
		return &order.InvalidTransitionError{From: o.Status(), To: order.Completed}
	}

	asg, err := uow.AssignmentRepository().GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err = o.TransitionTo(order.Completed, now); err != nil {
		return err
	}

	asg.ConfirmByShipper(now)

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, asg); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Notify(ctx, asg.DriverID(), ports.EventOrderStatusChanged, map[string]any{
		"order_id":  o.ID().String(),
		"reference": o.Reference(),
		"status":    o.Status().String(),
	})

	return nil
}
