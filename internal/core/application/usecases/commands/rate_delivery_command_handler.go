package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// RateDeliveryCommandHandler records mutual post-delivery ratings. A shipper
// rating also folds into the carrier's profile average within the same
// transaction, so the assignment record and the aggregate never disagree.
type RateDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for delivery ratings.
func NewRateDeliveryCommandHandler(uowFactory DispatchUoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the rating. Returns ErrOrderNotCompleted before completion,
// ErrNotAPartyToOrder for outsiders and assignment.ErrAlreadyRated on a
// second attempt by the same party.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, command RateDeliveryCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if o.Status() != order.Completed {
		return ErrOrderNotCompleted
	}

	asg, err := uow.AssignmentRepository().GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	switch {
	case o.ShipperID().IsEqual(command.ActingUserID()):
		if err = asg.RateByShipper(command.Score(), command.Review()); err != nil {
			return err
		}

		carrierRepo := uow.CarrierRepository()

		profile, err := carrierRepo.Ensure(ctx, asg.DriverID())
		if err != nil {
			return err
		}
		if err = profile.ApplyRating(command.Score()); err != nil {
			return err
		}
		if err = carrierRepo.Update(ctx, profile); err != nil {
			return err
		}
	case asg.IsDriver(command.ActingUserID()):
		if err = asg.RateByDriver(command.Score(), command.Review()); err != nil {
			return err
		}
	default:
		return ErrNotAPartyToOrder
	}

	if err = uow.AssignmentRepository().Update(ctx, asg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
