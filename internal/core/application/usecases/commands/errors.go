package commands

import "errors"

var (
	// ErrWrongParty is returned when the caller is not the party a rule
	// requires: a non-owner posting an order, a non-driver submitting proof,
	// a carrier touching someone else's bid.
	ErrWrongParty = errors.New("caller is not permitted to perform this operation on the order")

	// ErrNotAPartyToOrder is returned when the caller is neither the shipper
	// nor the assigned driver of the order.
	ErrNotAPartyToOrder = errors.New("caller is not a party to the order")

	// ErrBidNoLongerAvailable is returned when an operation targets a bid
	// that has already been resolved (accepted, rejected or withdrawn).
	ErrBidNoLongerAvailable = errors.New("bid is no longer available")

	// ErrOrderNotCompleted is returned when rating is attempted before the
	// order reaches COMPLETED.
	ErrOrderNotCompleted = errors.New("order is not completed")
)
