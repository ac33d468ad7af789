package commands

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// StaleOrderCancellationReason is recorded on every order cancelled by the
// stale-order sweep.
const StaleOrderCancellationReason = "auto-cancelled: no carrier found"

// CancelStaleOrdersCommand sweeps POSTED orders that attracted no bids
// within the time-to-live and cancels them.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel orders posted more
// than ttl ago. The ttl must be positive.
func NewCancelStaleOrdersCommand(ttl time.Duration) (CancelStaleOrdersCommand, error) {
	if ttl <= 0 {
		return CancelStaleOrdersCommand{}, errs.NewValueIsInvalidError("ttl must be greater than 0")
	}

	return CancelStaleOrdersCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// TTL returns how long a posted order may wait for bids before the sweep
// cancels it.
func (c CancelStaleOrdersCommand) TTL() time.Duration {
	return c.ttl
}
