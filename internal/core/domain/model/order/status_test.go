package order_test

import (
	"errors"
	"testing"

	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowedTransitions mirrors the full workflow rule set. The test walks
// every (from, to) pair so any accidental table edit shows up immediately.
var allowedTransitions = map[order.Status][]order.Status{
	order.Draft:         {order.Posted, order.Cancelled},
	order.Posted:        {order.Bidding, order.Assigned, order.Cancelled},
	order.Bidding:       {order.Assigned, order.Cancelled},
	order.Assigned:      {order.PickupPending, order.Cancelled},
	order.PickupPending: {order.PickedUp, order.Cancelled},
	order.PickedUp:      {order.InTransit},
	order.InTransit:     {order.Delivered, order.Disputed},
	order.Delivered:     {order.Completed, order.Disputed},
	order.Completed:     {},
	order.Cancelled:     {},
	order.Disputed:      {order.Completed, order.Cancelled},
}

func TestStatus_CanTransitionTo_ExhaustiveGrid(t *testing.T) {
	statuses := order.AllStatuses()
	require.Len(t, statuses, 11)

	for _, from := range statuses {
		allowed := make(map[order.Status]bool)
		for _, to := range allowedTransitions[from] {
			allowed[to] = true
		}

		for _, to := range statuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[to], got, "%s -> %s", from, to)
		}
	}
}

func TestStatus_TransitionTo_IllegalMove(t *testing.T) {
	_, err := order.Delivered.TransitionTo(order.Draft)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var invalidErr *order.InvalidTransitionError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, order.Delivered, invalidErr.From)
	assert.Equal(t, order.Draft, invalidErr.To)
	assert.Equal(t, "cannot transition from 'DELIVERED' to 'DRAFT'", err.Error())
}

func TestStatus_TransitionTo_LegalMove(t *testing.T) {
	next, err := order.Draft.TransitionTo(order.Posted)
	require.NoError(t, err)
	assert.Equal(t, order.Posted, next)
}

func TestStatus_SelfTransitionIsIllegal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		assert.False(t, s.CanTransitionTo(s), "self transition for %s", s)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Disputed.IsTerminal())
	assert.False(t, order.Draft.IsTerminal())
}

func TestStatus_IsBiddable(t *testing.T) {
	for _, s := range order.AllStatuses() {
		want := s == order.Posted || s == order.Bidding
		assert.Equal(t, want, s.IsBiddable(), "biddable for %s", s)
	}
}

func TestStatus_RequiresFinalPrice(t *testing.T) {
	required := map[order.Status]bool{
		order.Assigned:      true,
		order.PickupPending: true,
		order.PickedUp:      true,
		order.InTransit:     true,
		order.Delivered:     true,
		order.Completed:     true,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, required[s], s.RequiresFinalPrice(), "final price required for %s", s)
	}
}

func TestStatus_AllowsFinalPrice(t *testing.T) {
	allowed := map[order.Status]bool{
		order.Assigned:      true,
		order.PickupPending: true,
		order.PickedUp:      true,
		order.InTransit:     true,
		order.Delivered:     true,
		order.Completed:     true,
		order.Cancelled:     true,
		order.Disputed:      true,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, allowed[s], s.AllowsFinalPrice(), "final price allowed for %s", s)
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		assert.NoError(t, s.Validate())
	}

	assert.Error(t, order.Status("SHIPPED").Validate())
	assert.Error(t, order.Status("").Validate())
}
