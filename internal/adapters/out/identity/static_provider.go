// Package identity resolves caller roles. Role data normally lives with the
// identity subsystem; this adapter serves a static mapping loaded at
// startup, which is sufficient for the dispatch core's single role-sensitive
// rule (admin overrides).
package identity

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// StaticProvider implements IdentityProvider from an in-memory role map.
type StaticProvider struct {
	roles map[string]ports.Role
}

// NewStaticProvider creates a provider from explicit user-to-role entries.
func NewStaticProvider(roles map[string]ports.Role) *StaticProvider {
	if roles == nil {
		roles = make(map[string]ports.Role)
	}
	return &StaticProvider{roles: roles}
}

// NewStaticProviderWithAdmins creates a provider that knows only the given
// admin IDs. Everyone else resolves to an empty role.
func NewStaticProviderWithAdmins(adminIDs []kernel.UUID) *StaticProvider {
	roles := make(map[string]ports.Role, len(adminIDs))
	for _, id := range adminIDs {
		roles[id.String()] = ports.RoleAdmin
	}
	return &StaticProvider{roles: roles}
}

// RoleOf returns the user's role, or an empty role for unknown users.
func (p *StaticProvider) RoleOf(_ context.Context, userID kernel.UUID) (ports.Role, error) {
	return p.roles[userID.String()], nil
}
