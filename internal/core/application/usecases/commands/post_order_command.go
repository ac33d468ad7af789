package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrPostOrderCommandIsNotConstructed = errors.New(
	"PostOrderCommand must be created via NewPostOrderCommand constructor",
)

// PostOrderCommand publishes a draft order to the carrier market, making it
// visible and open for bidding.
type PostOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPostOrderCommand creates a command to publish a draft order. The acting
// user must be the order's shipper; the handler enforces that against the
// stored order.
func NewPostOrderCommand(orderID, actingUserID kernel.UUID) (PostOrderCommand, error) {
	cmd := PostOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return PostOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostOrderCommand) Validate() error {
	return c.guard.Validate(ErrPostOrderCommandIsNotConstructed)
}

// OrderID returns the order to publish.
func (c PostOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the caller's identity.
func (c PostOrderCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *PostOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PostOrderCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
