package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrListBidsQueryIsNotConstructed = errors.New(
	"ListBidsQuery must be created via NewListBidsQuery constructor",
)

// ListBidsQuery lists the bids on one order, cheapest first.
type ListBidsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListBidsQuery creates a query for an order's bids.
func NewListBidsQuery(orderID kernel.UUID) (ListBidsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListBidsQuery{}, err
	}

	return ListBidsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListBidsQuery) Validate() error {
	return q.guard.Validate(ErrListBidsQueryIsNotConstructed)
}

// OrderID returns the order whose bids are listed.
func (q ListBidsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ListBidsQueryResponse is one row of the bid listing.
type ListBidsQueryResponse struct {
	ID                kernel.UUID
	CarrierID         kernel.UUID
	VehicleID         *kernel.UUID
	Price             float64
	Message           string
	Status            string
	EstimatedPickupAt *time.Time
	CreatedAt         time.Time
}
