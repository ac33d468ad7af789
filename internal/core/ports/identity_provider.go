package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// Role is the coarse platform role of a caller. The core never
// authenticates; it authorizes by comparing caller identities to stored
// references, and consults the role only where a rule names one (admin
// overrides).
type Role string

const (
	RoleShipper      Role = "SHIPPER"
	RoleDriver       Role = "DRIVER"
	RoleBroker       Role = "BROKER"
	RoleFleetManager Role = "FLEET_MANAGER"
	RoleAdmin        Role = "ADMIN"
)

// IdentityProvider resolves an opaque caller identity to a platform role.
// Identity management is an external collaborator; this is its only surface
// visible to the dispatch core.
type IdentityProvider interface {
	// RoleOf returns the caller's role. Unknown callers resolve to an empty
	// role, not an error.
	RoleOf(ctx context.Context, userID kernel.UUID) (Role, error)
}
