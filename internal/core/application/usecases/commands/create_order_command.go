package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new freight order in
// DRAFT status. Cargo and waypoints arrive as already-validated value
// objects; the command validates identities and schedule ordering.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), shipperID, nil,
//	    cargo, pickup, delivery,
//	    &pickupAt, &deadline, &price, "XOF",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	shipperID kernel.UUID
	brokerID  *kernel.UUID

	cargo    order.Cargo
	pickup   order.Waypoint
	delivery order.Waypoint

	pickupScheduledAt *time.Time
	deliveryDeadline  *time.Time

	proposedPrice *float64
	currency      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new freight order.
// Validates that order and shipper IDs are valid and that the cargo and both
// waypoints were properly constructed. An empty currency defaults inside the
// aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	shipperID kernel.UUID,
	brokerID *kernel.UUID,
	cargo order.Cargo,
	pickup order.Waypoint,
	delivery order.Waypoint,
	pickupScheduledAt *time.Time,
	deliveryDeadline *time.Time,
	proposedPrice *float64,
	currency string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		brokerID:          brokerID,
		pickupScheduledAt: pickupScheduledAt,
		deliveryDeadline:  deliveryDeadline,
		proposedPrice:     proposedPrice,
		currency:          currency,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipperID(shipperID),
		cmd.setCargo(cargo),
		cmd.setWaypoints(pickup, delivery),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipperID returns the identity of the shipper creating the order.
func (c CreateOrderCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

// BrokerID returns the optional broker acting on the shipper's behalf.
func (c CreateOrderCommand) BrokerID() *kernel.UUID {
	return c.brokerID
}

// Cargo returns the cargo details.
func (c CreateOrderCommand) Cargo() order.Cargo {
	return c.cargo
}

// Pickup returns the pickup waypoint.
func (c CreateOrderCommand) Pickup() order.Waypoint {
	return c.pickup
}

// Delivery returns the delivery waypoint.
func (c CreateOrderCommand) Delivery() order.Waypoint {
	return c.delivery
}

// PickupScheduledAt returns the requested pickup time, if any.
func (c CreateOrderCommand) PickupScheduledAt() *time.Time {
	return c.pickupScheduledAt
}

// DeliveryDeadline returns the delivery deadline, if any.
func (c CreateOrderCommand) DeliveryDeadline() *time.Time {
	return c.deliveryDeadline
}

// ProposedPrice returns the shipper's asking price, if any.
func (c CreateOrderCommand) ProposedPrice() *float64 {
	return c.proposedPrice
}

// Currency returns the order currency code.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	c.shipperID = shipperID
	return nil
}

func (c *CreateOrderCommand) setCargo(cargo order.Cargo) error {
	if err := cargo.Validate(); err != nil {
		return err
	}

	c.cargo = cargo
	return nil
}

func (c *CreateOrderCommand) setWaypoints(pickup, delivery order.Waypoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.delivery = delivery
	return nil
}
