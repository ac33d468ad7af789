package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to an explicitly named status:
// driver progress updates (PICKUP_PENDING, PICKED_UP, IN_TRANSIT),
// cancellations, dispute raising and admin dispute resolution. Transitions
// with richer side effects (posting, acceptance, proof, confirmation) have
// their own commands.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID
	target       order.Status
	reason       string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to target.
// The reason is recorded only for cancellations.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actingUserID kernel.UUID,
	target order.Status,
	reason string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the caller's identity.
func (c TransitionOrderCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Reason returns the cancellation reason, if any.
func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
