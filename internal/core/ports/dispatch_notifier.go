package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// EventKind identifies the dispatch events signalled outward.
type EventKind string

const (
	// EventOrderPosted is fanned out to eligible carriers when an order is
	// published to the market.
	EventOrderPosted EventKind = "order.posted"
	// EventBidAccepted is sent to the winning carrier.
	EventBidAccepted EventKind = "bid.accepted"
	// EventOrderStatusChanged is sent to the shipper and, when assigned, the
	// driver on every explicit status transition.
	EventOrderStatusChanged EventKind = "order.status_changed"
)

// DispatchNotifier signals state changes to the notification subsystem.
//
// The contract is fire-and-forget relative to the transaction: callers invoke
// it only after their state-changing transaction commits, and a notification
// failure never rolls back or blocks the committed change. Delivery is
// at-least-once, best-effort; retries belong to the notification subsystem.
type DispatchNotifier interface {
	// Notify signals one recipient.
	Notify(ctx context.Context, recipientID kernel.UUID, kind EventKind, payload map[string]any) error

	// Broadcast signals all eligible carriers. Which carriers are eligible
	// for an event is resolved by the notification subsystem, not the core.
	Broadcast(ctx context.Context, kind EventKind, payload map[string]any) error
}
