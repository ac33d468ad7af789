package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// CreateOrderCommandHandler registers new freight orders. Orders start in
// DRAFT and stay invisible to carriers until explicitly posted.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("order %s created as %s", created.ID(), created.Reference())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	references services.ReferenceGenerator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		references: services.NewReferenceGenerator(),
	}
}

// Handle creates the order aggregate, assigns its human-readable reference
// and persists it. The distance estimate is computed inside the aggregate at
// this point and never again.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		h.references.Generate(),
		command.ShipperID(),
		command.BrokerID(),
		command.Cargo(),
		command.Pickup(),
		command.Delivery(),
		command.ProposedPrice(),
		command.Currency(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = newOrder.SetSchedule(command.PickupScheduledAt(), command.DeliveryDeadline()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
