package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// PostOrderCommandHandler publishes draft orders to the carrier market.
// Only the owning shipper may post; the DRAFT to POSTED transition is
// enforced by the aggregate. Eligible carriers are notified after commit.
type PostOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.DispatchNotifier
}

// NewPostOrderCommandHandler creates a handler for posting orders.
func NewPostOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.DispatchNotifier,
) PostOrderCommandHandler {
	return PostOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle moves the order from DRAFT to POSTED under the order row lock and
// fans an order.posted event out to carriers once the change is committed.
// Returns ErrWrongParty when the caller does not own the order.
func (h PostOrderCommandHandler) Handle(ctx context.Context, command PostOrderCommand) error {
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

	if err = o.TransitionTo(order.Posted, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Post-commit, best effort. A notification failure never unwinds the
	// committed transition.
	_ = h.notifier.Broadcast(ctx, ports.EventOrderPosted, map[string]any{
		"order_id":      o.ID().String(),
		"reference":     o.Reference(),
		"pickup_city":   o.Pickup().City(),
		"delivery_city": o.Delivery().City(),
	})

	return nil
}
