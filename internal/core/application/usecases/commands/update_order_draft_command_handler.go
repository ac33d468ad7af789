package commands

import (
	"context"
)

// UpdateOrderDraftCommandHandler edits draft orders. Only the owning shipper
// edits, and only while the order is still DRAFT.
type UpdateOrderDraftCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDraftCommandHandler creates a handler for draft editing.
func NewUpdateOrderDraftCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDraftCommandHandler {
	return UpdateOrderDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the edit. Returns ErrWrongParty for non-owners and
// order.ErrOrderIsNotEditable once the order has been posted.
func (h UpdateOrderDraftCommandHandler) Handle(ctx context.Context, command UpdateOrderDraftCommand) error {
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

	if err = o.UpdateDraft(
		command.Cargo(),
		command.Pickup(),
		command.Delivery(),
		command.ProposedPrice(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
