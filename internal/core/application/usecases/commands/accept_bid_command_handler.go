package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// AcceptBidCommandHandler executes the atomic bid acceptance.
//
// All revalidation happens after the order row lock is taken, so two
// concurrent acceptances on the same order serialize: the first wins, the
// second revalidates against the ASSIGNED order and fails. At most one bid
// per order is ever accepted.
//
// Within the single transaction the winning bid is accepted, every other
// pending bid is rejected, the final price is fixed, the order moves to
// ASSIGNED and the assignment record is created. The winner is notified only
// after commit.
type AcceptBidCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.DispatchNotifier
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
func NewAcceptBidCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.DispatchNotifier,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle accepts the bid and returns the created assignment.
// Returns ErrWrongParty when the caller is not the order's shipper,
// bid.ErrOrderNotBiddable when the order has left the bidding window, and
// ErrBidNoLongerAvailable when the bid itself has been resolved or
// withdrawn. A lost lock race surfaces as a conflict from the repository.
func (h AcceptBidCommandHandler) Handle(ctx context.Context, command AcceptBidCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bidRepo := uow.BidRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	// Revalidate everything under the lock. The world may have changed
	// between the caller's read and this point.
	if !o.ShipperID().IsEqual(command.ActingUserID()) {
		return nil, ErrWrongParty
	}

	if !o.Status().IsBiddable() {
		return nil, bid.ErrOrderNotBiddable
	}

	winner, err := bidRepo.GetForOrder(ctx, command.OrderID(), command.BidID())
	if err != nil {
		return nil, err
	}

	if winner.Status() != bid.Pending {
		return nil, ErrBidNoLongerAvailable
	}

	if err = winner.Accept(); err != nil {
		return nil, err
	}

	if err = bidRepo.Update(ctx, winner); err != nil {
		return nil, err
	}

	others, err := bidRepo.GetAllForOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	for _, other := range others {
		if other.ID().IsEqual(winner.ID()) || other.Status() != bid.Pending {
			continue
		}

		if err = other.Reject(); err != nil {
			return nil, err
		}
		if err = bidRepo.Update(ctx, other); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	if err = o.Assign(winner.Price(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	asg, err := assignment.NewAssignment(
		kernel.NewUUID(),
		o.ID(),
		winner.CarrierID(),
		winner.VehicleID(),
		winner.ID(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, asg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	_ = h.notifier.Notify(ctx, winner.CarrierID(), ports.EventBidAccepted, map[string]any{
		"order_id":    o.ID().String(),
		"reference":   o.Reference(),
		"bid_id":      winner.ID().String(),
		"final_price": winner.Price(),
	})

	return asg, nil
}
