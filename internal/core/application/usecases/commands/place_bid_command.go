package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand represents a carrier's offer to haul an order at a given
// price. A vehicle may optionally be attached; ownership is verified by the
// handler against the fleet registry.
//
// Example:
//
//	cmd, err := NewPlaceBidCommand(
//	    kernel.NewUUID(), orderID, carrierID, &vehicleID,
//	    150000, "can pick up today", &pickupAt,
//	)
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceBidCommand struct { //nolint:recvcheck //using for validation
	bidID     kernel.UUID
	orderID   kernel.UUID
	carrierID kernel.UUID
	vehicleID *kernel.UUID

	price             float64
	message           string
	estimatedPickupAt *time.Time

	guard guard.ConstructorGuard
}

// NewPlaceBidCommand creates a command to place a bid on a posted order.
// The price must be strictly positive.
func NewPlaceBidCommand(
	bidID kernel.UUID,
	orderID kernel.UUID,
	carrierID kernel.UUID,
	vehicleID *kernel.UUID,
	price float64,
	message string,
	estimatedPickupAt *time.Time,
) (PlaceBidCommand, error) {
	cmd := PlaceBidCommand{
		message:           message,
		estimatedPickupAt: estimatedPickupAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setOrderID(orderID),
		cmd.setCarrierID(carrierID),
		cmd.setVehicleID(vehicleID),
		cmd.setPrice(price),
	); err != nil {
		return PlaceBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

// BidID returns the unique identifier for the new bid.
func (c PlaceBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// OrderID returns the order being bid on.
func (c PlaceBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the bidding carrier's identity.
func (c PlaceBidCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// VehicleID returns the proposed vehicle, if any.
func (c PlaceBidCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

// Price returns the offered haul price.
func (c PlaceBidCommand) Price() float64 {
	return c.price
}

// Message returns the carrier's optional note to the shipper.
func (c PlaceBidCommand) Message() string {
	return c.message
}

// EstimatedPickupAt returns when the carrier expects to pick up, if stated.
func (c PlaceBidCommand) EstimatedPickupAt() *time.Time {
	return c.estimatedPickupAt
}

func (c *PlaceBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *PlaceBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceBidCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *PlaceBidCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID == nil {
		return nil
	}

	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *PlaceBidCommand) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidError("price must be greater than 0")
	}

	c.price = price
	return nil
}
