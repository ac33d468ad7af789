package order

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a freight order.
// Statuses persist under their wire names, so the type is a string enum.
//
// The full workflow:
//
//	DRAFT → POSTED → BIDDING → ASSIGNED → PICKUP_PENDING → PICKED_UP
//	      → IN_TRANSIT → DELIVERED → COMPLETED
//
// with CANCELLED reachable from every pre-transit state and DISPUTED
// reachable from IN_TRANSIT and DELIVERED. COMPLETED and CANCELLED are
// terminal; DISPUTED resolves to either.
type Status string

const (
	// Draft is the initial status; the order is editable and not yet visible
	// to carriers.
	Draft Status = "DRAFT"
	// Posted means the order is published to the market and awaiting bids.
	Posted Status = "POSTED"
	// Bidding means at least one carrier has placed a bid.
	Bidding Status = "BIDDING"
	// Assigned means a bid was accepted and a driver is bound to the order.
	Assigned Status = "ASSIGNED"
	// PickupPending means the driver is en route to the pickup location.
	PickupPending Status = "PICKUP_PENDING"
	// PickedUp means the cargo has been collected.
	PickedUp Status = "PICKED_UP"
	// InTransit means the cargo is moving toward the delivery location.
	InTransit Status = "IN_TRANSIT"
	// Delivered means proof of delivery was submitted and the order awaits
	// shipper confirmation.
	Delivered Status = "DELIVERED"
	// Completed is a terminal state: the shipper confirmed delivery.
	Completed Status = "COMPLETED"
	// Cancelled is a terminal state.
	Cancelled Status = "CANCELLED"
	// Disputed marks a contested delivery awaiting manual resolution.
	Disputed Status = "DISPUTED"
)

// ErrInvalidTransition is the sentinel for illegal status transitions.
var ErrInvalidTransition = errors.New("invalid order status transition")

// transitionTable is the exhaustive map of legal transitions,
// current status → allowed targets. Kept as data rather than behavior so the
// rule set stays auditable and testable as a whole.
var transitionTable = map[Status][]Status{
	Draft:         {Posted, Cancelled},
	Posted:        {Bidding, Assigned, Cancelled},
	Bidding:       {Assigned, Cancelled},
	Assigned:      {PickupPending, Cancelled},
	PickupPending: {PickedUp, Cancelled},
	PickedUp:      {InTransit},
	InTransit:     {Delivered, Disputed},
	Delivered:     {Completed, Disputed},
	Completed:     {},
	Cancelled:     {},
	Disputed:      {Completed, Cancelled},
}

// statusesRequiringFinalPrice are the states an order can only reach through
// bid acceptance, which is the single point that sets the final price.
var statusesRequiringFinalPrice = map[Status]bool{
	Assigned:      true,
	PickupPending: true,
	PickedUp:      true,
	InTransit:     true,
	Delivered:     true,
	Completed:     true,
}

// InvalidTransitionError reports an attempted transition that is not listed
// in the transition table, naming both the current and the requested state.
// Transition errors are permanent for the given input.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from '%s' to '%s'", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Validate checks that the Status value is one of the defined enum members.
func (s Status) Validate() error {
	if _, ok := transitionTable[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("'%s' is not a valid order status", string(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the move is legal, or an
// InvalidTransitionError leaving the caller's state untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return "", &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitionTable[s]) == 0
}

// IsBiddable reports whether carriers may place bids in this status.
func (s Status) IsBiddable() bool {
	return s == Posted || s == Bidding
}

// RequiresFinalPrice reports whether an order in this status must carry a
// final price. These are exactly the states reached through bid acceptance.
func (s Status) RequiresFinalPrice() bool {
	return statusesRequiringFinalPrice[s]
}

// AllowsFinalPrice reports whether an order in this status may carry a final
// price. CANCELLED and DISPUTED are reachable both before and after bid
// acceptance, so the price is optional there: cancelling an assigned order or
// disputing a delivery keeps the price fixed at acceptance.
func (s Status) AllowsFinalPrice() bool {
	return statusesRequiringFinalPrice[s] || s == Cancelled || s == Disputed
}

// AllStatuses returns every defined status. Intended for exhaustive
// validation and tests.
func AllStatuses() []Status {
	return []Status{
		Draft, Posted, Bidding, Assigned, PickupPending,
		PickedUp, InTransit, Delivered, Completed, Cancelled, Disputed,
	}
}
