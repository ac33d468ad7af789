package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand selects the winning bid for an order. Acceptance is the
// pivotal dispatch operation: it fixes the final price, assigns the carrier
// and closes the order to further bidding, all atomically.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	bidID        kernel.UUID
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid on behalf of the
// order's shipper.
func NewAcceptBidCommand(orderID, bidID, actingUserID kernel.UUID) (AcceptBidCommand, error) {
	cmd := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBidID(bidID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// OrderID returns the order whose bid is being accepted.
func (c AcceptBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the bid to accept.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// ActingUserID returns the caller's identity.
func (c AcceptBidCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *AcceptBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *AcceptBidCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
