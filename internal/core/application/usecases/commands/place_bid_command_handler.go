package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// PlaceBidCommandHandler accepts carrier offers on posted orders.
//
// The order row is locked for the duration so that the first-bid
// POSTED to BIDDING transition and the live-bid uniqueness check cannot race
// a concurrent acceptance or a second bid from the same carrier. The
// database's partial unique index backs the uniqueness check up; either path
// surfaces as a DuplicateBidError.
//
// When the first bid opens bidding, the shipper is notified only after
// commit.
type PlaceBidCommandHandler struct {
	uowFactory BidUoWFactory
	vehicles   ports.VehicleRegistry
	notifier   ports.DispatchNotifier
}

// NewPlaceBidCommandHandler creates a handler for bid placement.
func NewPlaceBidCommandHandler(
	uowFactory BidUoWFactory,
	vehicles ports.VehicleRegistry,
	notifier ports.DispatchNotifier,
) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		vehicles:   vehicles,
		notifier:   notifier,
	}
}

// Handle places a PENDING bid on the order. Returns bid.ErrOrderNotBiddable
// when the order is not open for offers, a bid.DuplicateBidError when the
// carrier already has a live bid on it, and bid.ErrVehicleOwnershipMismatch
// when the attached vehicle is not the carrier's.
func (h PlaceBidCommandHandler) Handle(ctx context.Context, command PlaceBidCommand) (*bid.Bid, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if vehicleID := command.VehicleID(); vehicleID != nil {
		owned, err := h.vehicles.OwnedBy(ctx, *vehicleID, command.CarrierID())
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, bid.ErrVehicleOwnershipMismatch
		}
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

	if !o.Status().IsBiddable() {
		return nil, bid.ErrOrderNotBiddable
	}

	hasLive, err := bidRepo.HasLiveBid(ctx, command.OrderID(), command.CarrierID())
	if err != nil {
		return nil, err
	}
	if hasLive {
		return nil, &bid.DuplicateBidError{
			OrderID:   command.OrderID(),
			CarrierID: command.CarrierID(),
		}
	}

	now := time.Now().UTC()

	// The first bid flips the order into BIDDING within the same
	// transaction.
	openedBidding := false
	if o.Status() == order.Posted {
		if err = o.TransitionTo(order.Bidding, now); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
		openedBidding = true
	}

	newBid, err := bid.NewBid(
		command.BidID(),
		command.OrderID(),
		command.CarrierID(),
		command.VehicleID(),
		command.Price(),
		command.Message(),
		command.EstimatedPickupAt(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = bidRepo.Add(ctx, newBid); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if openedBidding {
		_ = h.notifier.Notify(ctx, o.ShipperID(), ports.EventOrderStatusChanged, map[string]any{
			"order_id":  o.ID().String(),
			"reference": o.Reference(),
			"status":    o.Status().String(),
		})
	}

	return newBid, nil
}
