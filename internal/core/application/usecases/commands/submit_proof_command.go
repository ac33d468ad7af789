package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSubmitProofCommandIsNotConstructed = errors.New(
	"SubmitProofCommand must be created via NewSubmitProofCommand constructor",
)

// SubmitProofCommand records proof of delivery and moves the order from
// IN_TRANSIT to DELIVERED. At least one proof artifact is required.
type SubmitProofCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID

	photoRef  string
	note      string
	signature string

	guard guard.ConstructorGuard
}

// NewSubmitProofCommand creates a command to submit delivery proof. At least
// one of photoRef, note or signature must be present.
func NewSubmitProofCommand(
	orderID kernel.UUID,
	actingUserID kernel.UUID,
	photoRef string,
	note string,
	signature string,
) (SubmitProofCommand, error) {
	cmd := SubmitProofCommand{
		photoRef:  photoRef,
		note:      note,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}

	if photoRef == "" && note == "" && signature == "" {
		return SubmitProofCommand{}, errs.NewValueIsRequiredError("delivery proof")
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return SubmitProofCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProofCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProofCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c SubmitProofCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the caller's identity.
func (c SubmitProofCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

// PhotoRef returns the storage reference of the proof photo.
func (c SubmitProofCommand) PhotoRef() string {
	return c.photoRef
}

// Note returns the driver's delivery note.
func (c SubmitProofCommand) Note() string {
	return c.note
}

// Signature returns the recipient signature reference.
func (c SubmitProofCommand) Signature() string {
	return c.signature
}

func (c *SubmitProofCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitProofCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
