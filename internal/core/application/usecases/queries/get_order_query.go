// Package queries contains the read-side operations. Query handlers bypass
// the aggregates and read projection rows straight from the database.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its assignment summary.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch one order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the detailed order view.
type GetOrderQueryResponse struct {
	ID        kernel.UUID
	Reference string
	ShipperID kernel.UUID
	Status    string

	CargoType        string
	CargoDescription string
	CargoWeightKg    float64
	CargoQuantity    int

	PickupAddress   string
	PickupCity      string
	DeliveryAddress string
	DeliveryCity    string

	ProposedPrice       *float64
	FinalPrice          *float64
	Currency            string
	EstimatedDistanceKm *float64

	CancellationReason string
	StatusChangedAt    *time.Time
	CreatedAt          time.Time

	Assignment *AssignmentView
}

// AssignmentView summarizes the carrier assignment of an order, present once
// a bid has been accepted.
type AssignmentView struct {
	DriverID    kernel.UUID
	VehicleID   *kernel.UUID
	AssignedAt  time.Time
	DeliveredAt *time.Time
	CompletedAt *time.Time
}
