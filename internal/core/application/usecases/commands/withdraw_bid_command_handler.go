package commands

import (
	"context"

	"freight/internal/core/domain/model/bid"
)

// WithdrawBidCommandHandler retracts pending bids. The order row lock keeps
// a withdrawal from racing an acceptance of the same bid.
type WithdrawBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal.
func NewWithdrawBidCommandHandler(uowFactory BidUoWFactory) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle withdraws the bid. Returns ErrWrongParty when the bid belongs to a
// different carrier and ErrBidNoLongerAvailable when the bid has already
// been resolved.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, command WithdrawBidCommand) error {
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

	if _, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID()); err != nil {
		return err
	}

	bidRepo := uow.BidRepository()

	b, err := bidRepo.GetForOrder(ctx, command.OrderID(), command.BidID())
	if err != nil {
		return err
	}

	if !b.CarrierID().IsEqual(command.ActingUserID()) {
		return ErrWrongParty
	}

	if b.Status() != bid.Pending {
		return ErrBidNoLongerAvailable
	}

	if err = b.Withdraw(); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
