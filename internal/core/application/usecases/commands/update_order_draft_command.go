package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var ErrUpdateOrderDraftCommandIsNotConstructed = errors.New(
	"UpdateOrderDraftCommand must be created via NewUpdateOrderDraftCommand constructor",
)

// UpdateOrderDraftCommand edits an order that has not yet been posted.
// Editing never recomputes the distance estimate and never touches the
// reference.
type UpdateOrderDraftCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID

	cargo         order.Cargo
	pickup        order.Waypoint
	delivery      order.Waypoint
	proposedPrice *float64

	guard guard.ConstructorGuard
}

// NewUpdateOrderDraftCommand creates a command to edit a draft order.
func NewUpdateOrderDraftCommand(
	orderID kernel.UUID,
	actingUserID kernel.UUID,
	cargo order.Cargo,
	pickup order.Waypoint,
	delivery order.Waypoint,
	proposedPrice *float64,
) (UpdateOrderDraftCommand, error) {
	cmd := UpdateOrderDraftCommand{
		proposedPrice: proposedPrice,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
		cmd.setCargo(cargo),
		cmd.setWaypoints(pickup, delivery),
	); err != nil {
		return UpdateOrderDraftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDraftCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDraftCommandIsNotConstructed)
}

// OrderID returns the draft order to edit.
func (c UpdateOrderDraftCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the caller's identity.
func (c UpdateOrderDraftCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

// Cargo returns the replacement cargo details.
func (c UpdateOrderDraftCommand) Cargo() order.Cargo {
	return c.cargo
}

// Pickup returns the replacement pickup waypoint.
func (c UpdateOrderDraftCommand) Pickup() order.Waypoint {
	return c.pickup
}

// Delivery returns the replacement delivery waypoint.
func (c UpdateOrderDraftCommand) Delivery() order.Waypoint {
	return c.delivery
}

// ProposedPrice returns the replacement asking price, if any.
func (c UpdateOrderDraftCommand) ProposedPrice() *float64 {
	return c.proposedPrice
}

func (c *UpdateOrderDraftCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderDraftCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}

func (c *UpdateOrderDraftCommand) setCargo(cargo order.Cargo) error {
	if err := cargo.Validate(); err != nil {
		return err
	}

	c.cargo = cargo
	return nil
}

func (c *UpdateOrderDraftCommand) setWaypoints(pickup, delivery order.Waypoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.delivery = delivery
	return nil
}
