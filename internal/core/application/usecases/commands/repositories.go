// Package commands contains the business operations that modify dispatch
// state. Every operation follows the same shape: a validated command object,
// a handler that opens a unit of work, takes the per-order lock, applies the
// domain mutation, commits, and only then emits notifications.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers, composed per command from the repositories it actually needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BidRepoFactory provides access to the bid repository within a
	// transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository
	// within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// CarrierRepoFactory provides access to the carrier repository within a
	// transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (creation, posting, the stale-order sweep).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BidUoW manages transactions spanning orders and their bids
	// (bid placement and withdrawal).
	BidUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
	}

	// BidUoWFactory creates new bid unit of work instances.
	BidUoWFactory interface {
		Create() BidUoW
	}

	// DispatchUoW manages transactions across the whole dispatch aggregate
	// cluster: order, bids, assignment and carrier profile. Used by bid
	// acceptance and the delivery lifecycle operations.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		AssignmentRepoFactory
		CarrierRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
