package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// SubmitProofCommandHandler records delivery proof. Only the assigned driver
// submits proof; the transition to DELIVERED and the proof attachment land
// in one transaction, and the shipper is notified after commit.
type SubmitProofCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.DispatchNotifier
}

// NewSubmitProofCommandHandler creates a handler for proof submission.
func NewSubmitProofCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.DispatchNotifier,
) SubmitProofCommandHandler {
	return SubmitProofCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle attaches the proof and moves the order to DELIVERED. Returns
// ErrWrongParty when the caller is not the assigned driver and an
// order.InvalidTransitionError when the order is not IN_TRANSIT.
func (h SubmitProofCommandHandler) Handle(ctx context.Context, command SubmitProofCommand) error {
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

	asg, err := uow.AssignmentRepository().GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !asg.IsDriver(command.ActingUserID()) {
		return ErrWrongParty
	}

	now := time.Now().UTC()

	if err = o.TransitionTo(order.Delivered, now); err != nil {
		return err
	}

	asg.AttachProof(command.PhotoRef(), command.Note(), command.Signature(), now)

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, asg); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Notify(ctx, o.ShipperID(), ports.EventOrderStatusChanged, map[string]any{
		"order_id":  o.ID().String(),
		"reference": o.Reference(),
		"status":    o.Status().String(),
	})

	return nil
}
