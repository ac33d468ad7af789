package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders visible to the caller. Visibility follows the
// caller's role: shippers see their own orders, carriers see the open market
// plus orders assigned to them, admins see everything.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actingUserID kernel.UUID
	role         ports.Role

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a role-filtered order listing query.
func NewListOrdersQuery(actingUserID kernel.UUID, role ports.Role) (ListOrdersQuery, error) {
	if err := actingUserID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actingUserID: actingUserID,
		role:         role,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ActingUserID returns the caller's identity.
func (q ListOrdersQuery) ActingUserID() kernel.UUID {
	return q.actingUserID
}

// Role returns the caller's platform role.
func (q ListOrdersQuery) Role() ports.Role {
	return q.role
}

// ListOrdersQueryResponse is one row of the order listing.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	Reference     string
	Status        string
	CargoType     string
	PickupCity    string
	DeliveryCity  string
	ProposedPrice *float64
	FinalPrice    *float64
	Currency      string
	CreatedAt     time.Time
}
