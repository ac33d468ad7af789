// Package assignment provides the Assignment aggregate: the binding created
// when a bid is accepted, tracking the execution lifecycle of an order from
// assignment through delivery, confirmation and mutual rating.
//
// An order has exactly one assignment, created atomically with the ASSIGNED
// transition and never replaced. Lifecycle timestamps are each set at most
// once, by the matching order-status transition, so they are monotonically
// non-decreasing by construction.
package assignment

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not
	// created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

	// ErrAlreadyRated is returned when a party attempts to rate the same
	// order twice. Ratings are one-shot fields; the second call is rejected
	// and the stored rating is unchanged.
	ErrAlreadyRated = errors.New("rating already submitted")
)

// MinRating and MaxRating bound the 1–5 rating scale.
const (
	MinRating = 1
	MaxRating = 5
)

// Assignment binds an accepted bid to its execution: the driver, the
// vehicle, proof of delivery, confirmation and ratings.
type Assignment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	driverID      kernel.UUID
	vehicleID     *kernel.UUID
	acceptedBidID kernel.UUID

	assignedAt      time.Time
	driverEnRouteAt *time.Time
	pickedUpAt      *time.Time
	inTransitAt     *time.Time
	deliveredAt     *time.Time
	completedAt     *time.Time

	proofPhotoRef              string
	proofNote                  string
	proofSignature             string
	deliveryConfirmedByShipper bool

	shipperRating *int
	driverRating  *int
	shipperReview string
	driverReview  string

	isConstructed bool
}

// NewAssignment creates the assignment for an accepted bid. Called exactly
// once per order, inside the same transaction as the ASSIGNED transition.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	vehicleID *kernel.UUID,
	acceptedBidID kernel.UUID,
	assignedAt time.Time,
) (*Assignment, error) {
	a := &Assignment{
		assignedAt:    assignedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setDriverID(driverID),
		a.setVehicleID(vehicleID),
		a.setAcceptedBidID(acceptedBidID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignmentParams carries the persisted state of an assignment for
// reconstruction.
type RestoreAssignmentParams struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	DriverID      kernel.UUID
	VehicleID     *kernel.UUID
	AcceptedBidID kernel.UUID

	AssignedAt      time.Time
	DriverEnRouteAt *time.Time
	PickedUpAt      *time.Time
	InTransitAt     *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time

	ProofPhotoRef              string
	ProofNote                  string
	ProofSignature             string
	DeliveryConfirmedByShipper bool

	ShipperRating *int
	DriverRating  *int
	ShipperReview string
	DriverReview  string
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(p RestoreAssignmentParams) (*Assignment, error) {
	a := &Assignment{
		assignedAt:                 p.AssignedAt,
		driverEnRouteAt:            p.DriverEnRouteAt,
		pickedUpAt:                 p.PickedUpAt,
		inTransitAt:                p.InTransitAt,
		deliveredAt:                p.DeliveredAt,
		completedAt:                p.CompletedAt,
		proofPhotoRef:              p.ProofPhotoRef,
		proofNote:                  p.ProofNote,
		proofSignature:             p.ProofSignature,
		deliveryConfirmedByShipper: p.DeliveryConfirmedByShipper,
		shipperRating:              p.ShipperRating,
		driverRating:               p.DriverRating,
		shipperReview:              p.ShipperReview,
		driverReview:               p.DriverReview,
		isConstructed:              true,
	}

	if err := errors.Join(
		a.setID(p.ID),
		a.setOrderID(p.OrderID),
		a.setDriverID(p.DriverID),
		a.setVehicleID(p.VehicleID),
		a.setAcceptedBidID(p.AcceptedBidID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the bound order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// DriverID returns the assigned driver.
func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

// VehicleID returns the assigned vehicle, nil when the bid named none.
func (a *Assignment) VehicleID() *kernel.UUID {
	return a.vehicleID
}

// AcceptedBidID returns a non-owning reference to the accepted bid.
func (a *Assignment) AcceptedBidID() kernel.UUID {
	return a.acceptedBidID
}

// AssignedAt returns when the assignment was created.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// DriverEnRouteAt returns when the driver set off for pickup, nil before.
func (a *Assignment) DriverEnRouteAt() *time.Time {
	return a.driverEnRouteAt
}

// PickedUpAt returns when the cargo was collected, nil before.
func (a *Assignment) PickedUpAt() *time.Time {
	return a.pickedUpAt
}

// InTransitAt returns when transit began, nil before.
func (a *Assignment) InTransitAt() *time.Time {
	return a.inTransitAt
}

// DeliveredAt returns when proof of delivery was submitted, nil before.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// CompletedAt returns when the shipper confirmed delivery, nil before.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// ProofPhotoRef returns the proof photo reference, possibly empty.
func (a *Assignment) ProofPhotoRef() string {
	return a.proofPhotoRef
}

// ProofNote returns the proof note, possibly empty.
func (a *Assignment) ProofNote() string {
	return a.proofNote
}

// ProofSignature returns the proof signature blob, possibly empty.
func (a *Assignment) ProofSignature() string {
	return a.proofSignature
}

// DeliveryConfirmedByShipper reports whether the shipper confirmed receipt.
func (a *Assignment) DeliveryConfirmedByShipper() bool {
	return a.deliveryConfirmedByShipper
}

// ShipperRating returns the shipper's score for the driver, nil before rating.
func (a *Assignment) ShipperRating() *int {
	return a.shipperRating
}

// DriverRating returns the driver's score for the shipper, nil before rating.
func (a *Assignment) DriverRating() *int {
	return a.driverRating
}

// ShipperReview returns the shipper's free-text review, possibly empty.
func (a *Assignment) ShipperReview() string {
	return a.shipperReview
}

// DriverReview returns the driver's free-text review, possibly empty.
func (a *Assignment) DriverReview() string {
	return a.driverReview
}

// IsDriver reports whether userID is the assigned driver.
func (a *Assignment) IsDriver(userID kernel.UUID) bool {
	return a.driverID.IsEqual(userID)
}

// MarkDriverEnRoute stamps the en-route time. Set at most once; repeated
// transitions through the state machine cannot occur, so an existing stamp
// is preserved.
func (a *Assignment) MarkDriverEnRoute(now time.Time) {
	if a.driverEnRouteAt == nil {
		a.driverEnRouteAt = &now
	}
}

// MarkPickedUp stamps the pickup time, at most once.
func (a *Assignment) MarkPickedUp(now time.Time) {
	if a.pickedUpAt == nil {
		a.pickedUpAt = &now
	}
}

// MarkInTransit stamps the transit start time, at most once.
func (a *Assignment) MarkInTransit(now time.Time) {
	if a.inTransitAt == nil {
		a.inTransitAt = &now
	}
}

// AttachProof records proof of delivery and stamps deliveredAt. Called by
// the submit-proof use case together with the IN_TRANSIT→DELIVERED
// transition.
func (a *Assignment) AttachProof(photoRef, note, signature string, now time.Time) {
	if photoRef != "" {
		a.proofPhotoRef = photoRef
	}
	a.proofNote = note
	a.proofSignature = signature
	if a.deliveredAt == nil {
		a.deliveredAt = &now
	}
}

// ConfirmByShipper records the shipper's confirmation and stamps
// completedAt. Called together with the DELIVERED→COMPLETED transition.
func (a *Assignment) ConfirmByShipper(now time.Time) {
	a.deliveryConfirmedByShipper = true
	if a.completedAt == nil {
		a.completedAt = &now
	}
}

// RateByShipper records the shipper's one-shot rating of the driver.
// A second call fails with ErrAlreadyRated and leaves the stored rating
// unchanged.
func (a *Assignment) RateByShipper(score int, review string) error {
	if a.shipperRating != nil {
		return ErrAlreadyRated
	}

	if err := validateScore(score); err != nil {
		return err
	}

	a.shipperRating = &score
	a.shipperReview = review
	return nil
}

// RateByDriver records the driver's one-shot rating of the shipper.
func (a *Assignment) RateByDriver(score int, review string) error {
	if a.driverRating != nil {
		return ErrAlreadyRated
	}

	if err := validateScore(score); err != nil {
		return err
	}

	a.driverRating = &score
	a.driverReview = review
	return nil
}

func validateScore(score int) error {
	if score < MinRating || score > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", score, MinRating, MaxRating)
	}
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	a.driverID = driverID
	return nil
}

func (a *Assignment) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	a.vehicleID = vehicleID
	return nil
}

func (a *Assignment) setAcceptedBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}
	a.acceptedBidID = bidID
	return nil
}
