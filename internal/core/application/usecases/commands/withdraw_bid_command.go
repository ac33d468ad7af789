package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
)

// WithdrawBidCommand retracts a carrier's own pending bid. A withdrawn bid
// frees the carrier to bid on the same order again.
type WithdrawBidCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	bidID        kernel.UUID
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWithdrawBidCommand creates a command to withdraw a bid.
func NewWithdrawBidCommand(orderID, bidID, actingUserID kernel.UUID) (WithdrawBidCommand, error) {
	cmd := WithdrawBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBidID(bidID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return WithdrawBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

// OrderID returns the order the bid belongs to.
func (c WithdrawBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the bid to withdraw.
func (c WithdrawBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// ActingUserID returns the caller's identity.
func (c WithdrawBidCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *WithdrawBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *WithdrawBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *WithdrawBidCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
