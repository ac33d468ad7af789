package commands

import (
	"errors"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand records a post-completion rating. Either party of a
// completed order rates the other once; shipper ratings additionally roll
// into the carrier's running average.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID
	score        int
	review       string

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand creates a command to rate a completed delivery.
// The score must be between 1 and 5.
func NewRateDeliveryCommand(
	orderID kernel.UUID,
	actingUserID kernel.UUID,
	score int,
	review string,
) (RateDeliveryCommand, error) {
	cmd := RateDeliveryCommand{
		review: review,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
		cmd.setScore(score),
	); err != nil {
		return RateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c RateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the caller's identity.
func (c RateDeliveryCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

// Score returns the rating score.
func (c RateDeliveryCommand) Score() int {
	return c.score
}

// Review returns the optional free-text review.
func (c RateDeliveryCommand) Review() string {
	return c.review
}

func (c *RateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateDeliveryCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}

func (c *RateDeliveryCommand) setScore(score int) error {
	if score < assignment.MinRating || score > assignment.MaxRating {
		return errs.NewValueIsOutOfRangeError(
			"score", score, assignment.MinRating, assignment.MaxRating,
		)
	}

	c.score = score
	return nil
}
