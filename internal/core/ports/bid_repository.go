package ports

import (
	"context"

	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
type BidRepository interface {
	// Add persists a new bid. The storage layer enforces the
	// one-live-bid-per-(order,carrier) constraint as a backstop and reports
	// violations as a duplicate-bid error.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// GetForOrder retrieves a bid by ID scoped to an order. A bid that
	// exists but belongs to a different order is reported as not found.
	GetForOrder(ctx context.Context, orderID, bidID kernel.UUID) (*bid.Bid, error)

	// GetAllForOrder retrieves every bid on the order in display order:
	// ascending price, then descending creation time.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)

	// HasLiveBid reports whether the carrier already has a non-withdrawn bid
	// on the order.
	HasLiveBid(ctx context.Context, orderID, carrierID kernel.UUID) (bool, error)
}
