// Package bid provides the Bid aggregate: a carrier's priced offer to fulfil
// a specific freight order.
//
// Lifecycle: a bid is created PENDING while its order accepts bids, and ends
// in exactly one of ACCEPTED, REJECTED, or WITHDRAWN. Terminal states never
// change. At most one bid per order ever reaches ACCEPTED; sibling rejection
// is coordinated by the accept-bid use case under the order's lock.
package bid

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created
	// through NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

	// ErrOrderNotBiddable is returned when placing a bid on an order that is
	// not accepting bids.
	ErrOrderNotBiddable = errors.New("order is not accepting bids")

	// ErrVehicleOwnershipMismatch is returned when the supplied vehicle does
	// not belong to the bidding carrier.
	ErrVehicleOwnershipMismatch = errors.New("vehicle does not belong to the bidding carrier")
)

// DuplicateBidError reports that a carrier already has a live (non-withdrawn)
// bid on the order.
type DuplicateBidError struct {
	OrderID   kernel.UUID
	CarrierID kernel.UUID
}

func (e *DuplicateBidError) Error() string {
	return fmt.Sprintf("carrier %s already has a bid on order %s", e.CarrierID, e.OrderID)
}

// ErrDuplicateBid is the sentinel for DuplicateBidError.
var ErrDuplicateBid = errors.New("duplicate bid")

func (e *DuplicateBidError) Unwrap() error {
	return ErrDuplicateBid
}

// Status represents the lifecycle state of a bid.
type Status string

const (
	// Pending means the bid is live and awaiting the shipper's decision.
	Pending Status = "PENDING"
	// Accepted means the shipper chose this bid. Terminal.
	Accepted Status = "ACCEPTED"
	// Rejected means the shipper chose a different bid, or the order was
	// otherwise resolved. Terminal.
	Rejected Status = "REJECTED"
	// Withdrawn means the carrier retracted the bid. Terminal. A withdrawn
	// carrier may bid again.
	Withdrawn Status = "WITHDRAWN"
)

var validStatuses = map[Status]bool{
	Pending:   true,
	Accepted:  true,
	Rejected:  true,
	Withdrawn: true,
}

// Validate checks that the Status value is a defined enum member.
func (s Status) Validate() error {
	if !validStatuses[s] {
		return errs.NewValueIsInvalidErrorWithCause("bid status is invalid",
			fmt.Errorf("'%s' is not a valid bid status", string(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status can no longer change.
func (s Status) IsTerminal() bool {
	return s != Pending
}

// Bid is a carrier's offer on an order: a price, an optional vehicle, an
// optional message and pickup estimate.
type Bid struct {
	id                kernel.UUID
	orderID           kernel.UUID
	carrierID         kernel.UUID
	vehicleID         *kernel.UUID
	price             float64
	message           string
	estimatedPickupAt *time.Time
	status            Status
	createdAt         time.Time

	isConstructed bool
}

// NewBid creates a PENDING bid. The price must be positive; order and
// carrier identifiers must be valid.
func NewBid(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierID kernel.UUID,
	vehicleID *kernel.UUID,
	price float64,
	message string,
	estimatedPickupAt *time.Time,
	now time.Time,
) (*Bid, error) {
	b := &Bid{
		message:           message,
		estimatedPickupAt: estimatedPickupAt,
		status:            Pending,
		createdAt:         now,
		isConstructed:     true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setCarrierID(carrierID),
		b.setVehicleID(vehicleID),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid reconstructs a bid from persistence.
func RestoreBid(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierID kernel.UUID,
	vehicleID *kernel.UUID,
	price float64,
	message string,
	estimatedPickupAt *time.Time,
	status Status,
	createdAt time.Time,
) (*Bid, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	b := &Bid{
		message:           message,
		estimatedPickupAt: estimatedPickupAt,
		status:            status,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setCarrierID(carrierID),
		b.setVehicleID(vehicleID),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Bid instance was properly constructed.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// OrderID returns the order this bid targets.
func (b *Bid) OrderID() kernel.UUID {
	return b.orderID
}

// CarrierID returns the bidding carrier.
func (b *Bid) CarrierID() kernel.UUID {
	return b.carrierID
}

// VehicleID returns the offered vehicle, nil when none was named.
func (b *Bid) VehicleID() *kernel.UUID {
	return b.vehicleID
}

// Price returns the offered price.
func (b *Bid) Price() float64 {
	return b.price
}

// Message returns the carrier's free-text message, possibly empty.
func (b *Bid) Message() string {
	return b.message
}

// EstimatedPickupAt returns the carrier's pickup estimate, nil when unset.
func (b *Bid) EstimatedPickupAt() *time.Time {
	return b.estimatedPickupAt
}

// Status returns the current bid status.
func (b *Bid) Status() Status {
	return b.status
}

// CreatedAt returns the creation time.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// IsLive reports whether the bid still counts toward the one-live-bid-per-
// carrier rule: any status except WITHDRAWN.
func (b *Bid) IsLive() bool {
	return b.status != Withdrawn
}

// Accept marks the bid ACCEPTED. Only PENDING bids can be accepted.
func (b *Bid) Accept() error {
	return b.resolve(Accepted)
}

// Reject marks the bid REJECTED. Only PENDING bids can be rejected.
func (b *Bid) Reject() error {
	return b.resolve(Rejected)
}

// Withdraw marks the bid WITHDRAWN. Only PENDING bids can be withdrawn.
func (b *Bid) Withdraw() error {
	return b.resolve(Withdrawn)
}

func (b *Bid) resolve(target Status) error {
	if b.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("bid status is invalid",
			fmt.Errorf("cannot move bid from terminal status '%s' to '%s'", b.status, target))
	}

	b.status = target
	return nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Bid) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	b.carrierID = carrierID
	return nil
}

func (b *Bid) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	b.vehicleID = vehicleID
	return nil
}

func (b *Bid) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%f is not greater than 0", price))
	}
	b.price = price
	return nil
}
