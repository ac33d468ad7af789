package ports

import (
	"context"

	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"
)

// CarrierRepository defines the persistence contract for carrier profiles.
type CarrierRepository interface {
	// Ensure retrieves the carrier's profile, creating an empty one if none
	// exists yet. The create-if-absent behavior is explicit and idempotent:
	// a concurrent Ensure for the same carrier yields the same profile.
	Ensure(ctx context.Context, carrierID kernel.UUID) (*carrier.Profile, error)

	// Update persists rating changes to an existing profile.
	Update(ctx context.Context, profile *carrier.Profile) error
}
