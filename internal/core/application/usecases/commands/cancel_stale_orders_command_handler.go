package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// CancelStaleOrdersCommandHandler reconciles orders that never attracted a
// carrier. Stale POSTED rows are selected with a skip-locked scan, so a
// concurrently accepted or bid-on order is simply left for the next run, and
// every cancellation goes through the ordinary transition validation.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.DispatchNotifier
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale-order
// sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.DispatchNotifier,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle cancels every POSTED order older than the command's TTL and
// returns how many were cancelled. Shippers are notified after commit.
func (h CancelStaleOrdersCommandHandler) Handle(ctx context.Context, command CancelStaleOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	now := time.Now().UTC()
	cutoff := now.Add(-command.TTL())

	stale, err := orderRepo.GetStalePosted(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	type cancelled struct {
		shipperID kernel.UUID
		orderID   kernel.UUID
		reference string
	}
	var done []cancelled

	for _, o := range stale {
		if err = o.Cancel(StaleOrderCancellationReason, now); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}

		done = append(done, cancelled{
			shipperID: o.ShipperID(),
			orderID:   o.ID(),
			reference: o.Reference(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, c := range done {
		_ = h.notifier.Notify(ctx, c.shipperID, ports.EventOrderStatusChanged, map[string]any{
			"order_id":  c.orderID.String(),
			"reference": c.reference,
			"status":    "CANCELLED",
			"reason":    StaleOrderCancellationReason,
		})
	}

	return len(done), nil
}
