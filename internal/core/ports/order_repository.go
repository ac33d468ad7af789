// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the unit of work, and the external
// collaborator interfaces (notifier, vehicle registry, identity provider).
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and takes the per-order exclusive lock
	// that serializes all read-then-write operations on it. The wait is
	// bounded: contention surfaces as a retryable conflict error instead of
	// blocking. Must be called inside an open transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStalePosted retrieves orders still POSTED that were created before
	// the cutoff, locking each row and skipping rows locked by concurrent
	// operations. Used by the reconciliation sweep.
	GetStalePosted(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
