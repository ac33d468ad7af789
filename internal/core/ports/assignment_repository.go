package ports

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates. Assignments are created once per order and never deleted.
type AssignmentRepository interface {
	// Add persists the assignment created by bid acceptance.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists lifecycle, proof and rating changes.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetByOrder retrieves the order's single assignment.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
}
