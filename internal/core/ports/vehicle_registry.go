package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// VehicleRegistry confirms vehicle ownership. The fleet registry itself is an
// external collaborator; the core only asks one question of it, for the
// bidding vehicle-ownership check.
type VehicleRegistry interface {
	// OwnedBy reports whether the vehicle belongs to the given owner.
	// An unknown vehicle is simply not owned.
	OwnedBy(ctx context.Context, vehicleID, ownerID kernel.UUID) (bool, error)
}
