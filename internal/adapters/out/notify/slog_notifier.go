// Package notify contains the outbound notification adapter. The real push
// and SMS delivery lives in the notification subsystem; this adapter hands
// events over and logs them, which also makes it the complete implementation
// for environments without that subsystem.
package notify

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// SlogNotifier implements DispatchNotifier by structured-logging every
// event. Failures are impossible by construction, which matches the port's
// fire-and-forget contract.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

// Notify logs a single-recipient event.
func (n *SlogNotifier) Notify(_ context.Context, recipientID kernel.UUID, kind ports.EventKind, payload map[string]any) error {
	n.logger.Info("dispatch event",
		slog.String("kind", string(kind)),
		slog.String("recipient", recipientID.String()),
		slog.Any("payload", payload),
	)
	return nil
}

// Broadcast logs a market-wide event.
func (n *SlogNotifier) Broadcast(_ context.Context, kind ports.EventKind, payload map[string]any) error {
	n.logger.Info("dispatch event broadcast",
		slog.String("kind", string(kind)),
		slog.Any("payload", payload),
	)
	return nil
}
