package order

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotEditable is returned when mutating an order that has
	// already left the DRAFT status.
	ErrOrderIsNotEditable = errors.New("only draft orders can be edited")
)

// Order is the aggregate root for a freight movement request. It owns the
// order lifecycle from DRAFT through posting, bidding, assignment, transit
// and completion.
//
// Invariants maintained by the aggregate:
//   - status is always a member of the defined enum and only changes along
//     the transition table
//   - statusChangedAt is stamped on every transition
//   - finalPrice is set exactly when the order progressed through bid
//     acceptance (ASSIGNED and beyond); it survives a later cancellation
//     or dispute
//   - reference and estimatedDistanceKm are computed once at creation and
//     never change
//   - cargo and waypoints are mutable only while the order is DRAFT
type Order struct {
	id        kernel.UUID
	reference string
	shipperID kernel.UUID
	brokerID  *kernel.UUID

	cargo    Cargo
	pickup   Waypoint
	delivery Waypoint

	pickupScheduledAt *time.Time
	deliveryDeadline  *time.Time

	proposedPrice *float64
	finalPrice    *float64
	currency      string

	estimatedDistanceKm *float64

	status             Status
	statusChangedAt    *time.Time
	cancellationReason string

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a DRAFT order for the given shipper. The human-readable
// reference is assigned here, exactly once. When both waypoints carry
// coordinates the great-circle distance estimate is computed here, exactly
// once; later edits never recompute it.
func NewOrder(
	id kernel.UUID,
	reference string,
	shipperID kernel.UUID,
	brokerID *kernel.UUID,
	cargo Cargo,
	pickup Waypoint,
	delivery Waypoint,
	proposedPrice *float64,
	currency string,
	now time.Time,
) (*Order, error) {
	if currency == "" {
		currency = "XOF"
	}

	o := &Order{
		status:        Draft,
		currency:      currency,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setShipperID(shipperID),
		o.setBrokerID(brokerID),
		o.setCargo(cargo),
		o.setWaypoints(pickup, delivery),
		o.setProposedPrice(proposedPrice),
	); err != nil {
		return nil, err
	}

	o.estimatedDistanceKm = estimateDistanceKm(pickup, delivery)
	return o, nil
}

// RestoreOrderParams carries the persisted state of an order for
// reconstruction. All fields are trusted to the extent that they were written
// by this aggregate; cross-field consistency is still re-checked.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	Reference           string
	ShipperID           kernel.UUID
	BrokerID            *kernel.UUID
	Cargo               Cargo
	Pickup              Waypoint
	Delivery            Waypoint
	PickupScheduledAt   *time.Time
	DeliveryDeadline    *time.Time
	ProposedPrice       *float64
	FinalPrice          *float64
	Currency            string
	EstimatedDistanceKm *float64
	Status              Status
	StatusChangedAt     *time.Time
	CancellationReason  string
	CreatedAt           time.Time
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// status enum and the final-price/status invariant.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	if err := validateFinalPrice(p.Status, p.FinalPrice); err != nil {
		return nil, err
	}

	o := &Order{
		pickupScheduledAt:   p.PickupScheduledAt,
		deliveryDeadline:    p.DeliveryDeadline,
		finalPrice:          p.FinalPrice,
		currency:            p.Currency,
		estimatedDistanceKm: p.EstimatedDistanceKm,
		status:              p.Status,
		statusChangedAt:     p.StatusChangedAt,
		cancellationReason:  p.CancellationReason,
		createdAt:           p.CreatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setReference(p.Reference),
		o.setShipperID(p.ShipperID),
		o.setBrokerID(p.BrokerID),
		o.setCargo(p.Cargo),
		o.setWaypoints(p.Pickup, p.Delivery),
		o.setProposedPrice(p.ProposedPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Reference returns the human-readable order reference.
func (o *Order) Reference() string {
	return o.reference
}

// ShipperID returns the owning shipper's identifier.
func (o *Order) ShipperID() kernel.UUID {
	return o.shipperID
}

// BrokerID returns the optional broker's identifier, nil when absent.
func (o *Order) BrokerID() *kernel.UUID {
	return o.brokerID
}

// Cargo returns the cargo descriptor.
func (o *Order) Cargo() Cargo {
	return o.cargo
}

// Pickup returns the pickup waypoint.
func (o *Order) Pickup() Waypoint {
	return o.pickup
}

// Delivery returns the delivery waypoint.
func (o *Order) Delivery() Waypoint {
	return o.delivery
}

// PickupScheduledAt returns the scheduled pickup window start, nil when unset.
func (o *Order) PickupScheduledAt() *time.Time {
	return o.pickupScheduledAt
}

// DeliveryDeadline returns the delivery deadline, nil when unset.
func (o *Order) DeliveryDeadline() *time.Time {
	return o.deliveryDeadline
}

// ProposedPrice returns the shipper-set target price, nil when unset.
func (o *Order) ProposedPrice() *float64 {
	return o.proposedPrice
}

// FinalPrice returns the accepted bid price, nil until a bid is accepted.
func (o *Order) FinalPrice() *float64 {
	return o.finalPrice
}

// Currency returns the ISO currency code for all prices on this order.
func (o *Order) Currency() string {
	return o.currency
}

// EstimatedDistanceKm returns the great-circle distance estimate computed at
// creation, nil when either waypoint lacked coordinates.
func (o *Order) EstimatedDistanceKm() *float64 {
	return o.estimatedDistanceKm
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StatusChangedAt returns the time of the most recent transition, nil before
// the first one.
func (o *Order) StatusChangedAt() *time.Time {
	return o.statusChangedAt
}

// CancellationReason returns the recorded cancellation reason, empty unless
// the order was cancelled with one.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SetSchedule sets the pickup window and delivery deadline. Allowed only
// while the order is DRAFT.
func (o *Order) SetSchedule(pickupScheduledAt, deliveryDeadline *time.Time) error {
	if o.status != Draft {
		return ErrOrderIsNotEditable
	}

	o.pickupScheduledAt = pickupScheduledAt
	o.deliveryDeadline = deliveryDeadline
	return nil
}

// UpdateDraft replaces the mutable order details. Allowed only while the
// order is DRAFT. The distance estimate is deliberately not recomputed: it is
// derived once at creation.
func (o *Order) UpdateDraft(cargo Cargo, pickup, delivery Waypoint, proposedPrice *float64) error {
	if o.status != Draft {
		return ErrOrderIsNotEditable
	}

	if err := errors.Join(
		cargo.Validate(),
		pickup.Validate(),
		delivery.Validate(),
	); err != nil {
		return err
	}

	if err := o.setProposedPrice(proposedPrice); err != nil {
		return err
	}

	o.cargo = cargo
	o.pickup = pickup
	o.delivery = delivery
	return nil
}

// CanTransitionTo reports whether the transition table allows moving to
// target from the current status.
func (o *Order) CanTransitionTo(target Status) bool {
	return o.status.CanTransitionTo(target)
}

// TransitionTo moves the order to target, stamping statusChangedAt. Illegal
// moves return an InvalidTransitionError and leave the order unchanged.
// This is the single mutation point for status; callers are responsible for
// emitting outward notifications only after their transaction commits.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.statusChangedAt = &now
	return nil
}

// Cancel transitions the order to CANCELLED, recording the reason.
func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.TransitionTo(Cancelled, now); err != nil {
		return err
	}

	o.cancellationReason = reason
	return nil
}

// Assign transitions the order to ASSIGNED and fixes the final price to the
// accepted bid price. This is the only mutation that sets finalPrice,
// preserving the invariant that a final price exists exactly when the order
// has progressed through bid acceptance.
func (o *Order) Assign(finalPrice float64, now time.Time) error {
	if finalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("final price is invalid",
			fmt.Errorf("%f is not greater than 0", finalPrice))
	}

	if err := o.TransitionTo(Assigned, now); err != nil {
		return err
	}

	o.finalPrice = &finalPrice
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	o.reference = reference
	return nil
}

func (o *Order) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}
	o.shipperID = shipperID
	return nil
}

func (o *Order) setBrokerID(brokerID *kernel.UUID) error {
	if brokerID != nil {
		if err := brokerID.Validate(); err != nil {
			return err
		}
	}
	o.brokerID = brokerID
	return nil
}

func (o *Order) setCargo(cargo Cargo) error {
	if err := cargo.Validate(); err != nil {
		return err
	}
	o.cargo = cargo
	return nil
}

func (o *Order) setWaypoints(pickup, delivery Waypoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	o.pickup = pickup
	o.delivery = delivery
	return nil
}

func (o *Order) setProposedPrice(proposedPrice *float64) error {
	if proposedPrice != nil && *proposedPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("proposed price is invalid",
			fmt.Errorf("%f is not greater than 0", *proposedPrice))
	}
	o.proposedPrice = proposedPrice
	return nil
}

func estimateDistanceKm(pickup, delivery Waypoint) *float64 {
	if pickup.Point() == nil || delivery.Point() == nil {
		return nil
	}

	km, err := pickup.Point().DistanceKmTo(*delivery.Point())
	if err != nil {
		return nil
	}
	return &km
}

func validateFinalPrice(status Status, finalPrice *float64) error {
	if finalPrice != nil && !status.AllowsFinalPrice() {
		return errs.NewValueIsInvalidErrorWithCause("final price is invalid",
			fmt.Errorf("status '%s' cannot carry a final price", status))
	}

	if finalPrice == nil && status.RequiresFinalPrice() {
		return errs.NewValueIsInvalidErrorWithCause("final price is invalid",
			fmt.Errorf("status '%s' requires a final price", status))
	}

	return nil
}
