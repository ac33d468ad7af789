package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies explicit status transitions.
//
// Authorization is positional: the assigned driver reports progress, the
// shipper cancels, either party raises a dispute, and an admin may apply any
// legal transition. Once an order is DISPUTED only an admin moves it.
// Progress transitions stamp the matching assignment milestone in the same
// transaction.
type TransitionOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.DispatchNotifier
}

// NewTransitionOrderCommandHandler creates a handler for explicit order
// transitions.
func NewTransitionOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.DispatchNotifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
	}
}

// Handle moves the order to the command's target status. Illegal moves
// return an order.InvalidTransitionError; callers the rules do not authorize
// get ErrWrongParty or ErrNotAPartyToOrder.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	role, err := h.identity.RoleOf(ctx, command.ActingUserID())
	if err != nil {
		return err
	}
	isAdmin := role == ports.RoleAdmin

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	asg, err := uow.AssignmentRepository().GetByOrder(ctx, command.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = authorizeTransition(o, asg, command, isAdmin); err != nil {
		return err
	}

	now := time.Now().UTC()
	target := command.Target()

	if target == order.Cancelled {
		err = o.Cancel(command.Reason(), now)
	} else {
		err = o.TransitionTo(target, now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if asg != nil && stampMilestone(asg, target, now) {
		if err = uow.AssignmentRepository().Update(ctx, asg); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id":  o.ID().String(),
		"reference": o.Reference(),
		"status":    o.Status().String(),
	}
	_ = h.notifier.Notify(ctx, o.ShipperID(), ports.EventOrderStatusChanged, payload)
	if asg != nil {
		_ = h.notifier.Notify(ctx, asg.DriverID(), ports.EventOrderStatusChanged, payload)
	}

	return nil
}

// authorizeTransition decides whether the caller may request the move.
// Admins may apply any legal transition, including out of DISPUTED, which is
// closed to everyone else.
func authorizeTransition(
	o *order.Order,
	asg *assignment.Assignment,
	command TransitionOrderCommand,
	isAdmin bool,
) error {
	if isAdmin {
		return nil
	}

	isShipper := o.ShipperID().IsEqual(command.ActingUserID())
	isDriver := asg != nil && asg.IsDriver(command.ActingUserID())

	if !isShipper && !isDriver {
		return ErrNotAPartyToOrder
	}

	if o.Status() == order.Disputed {
		return ErrWrongParty
	}

	switch command.Target() {
	case order.PickupPending, order.PickedUp, order.InTransit:
		if !isDriver {
			return ErrWrongParty
		}
	case order.Cancelled:
		if !isShipper {
			return ErrWrongParty
		}
	case order.Disputed:
		// Either party may raise a dispute.
	default:
		// Posting, acceptance, delivery and confirmation run through their
		// dedicated commands; only admins force those statuses here.
		return ErrWrongParty
	}

	return nil
}

// stampMilestone records the assignment timestamp matching a driver progress
// transition. Reports whether the assignment changed.
func stampMilestone(asg *assignment.Assignment, target order.Status, now time.Time) bool {
	switch target {
	case order.PickupPending:
		asg.MarkDriverEnRoute(now)
	case order.PickedUp:
		asg.MarkPickedUp(now)
	case order.InTransit:
		asg.MarkInTransit(now)
	default:
		return false
	}

	return true
}
