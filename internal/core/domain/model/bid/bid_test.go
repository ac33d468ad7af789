package bid_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingBid(t *testing.T) *bid.Bid {
	t.Helper()
	b, err := bid.NewBid(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, 125000, "can pick up tomorrow morning", nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return b
}

func TestNewBid_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	pickupAt := time.Now().UTC().Add(12 * time.Hour)
	now := time.Now().UTC()

	b, err := bid.NewBid(
		kernel.NewUUID(), orderID, carrierID, &vehicleID,
		125000, "refrigerated truck available", &pickupAt, now,
	)

	require.NoError(t, err)
	require.NoError(t, b.Validate())
	assert.Equal(t, bid.Pending, b.Status())
	assert.True(t, b.OrderID().IsEqual(orderID))
	assert.True(t, b.CarrierID().IsEqual(carrierID))
	require.NotNil(t, b.VehicleID())
	assert.True(t, b.VehicleID().IsEqual(vehicleID))
	assert.Equal(t, 125000.0, b.Price())
	assert.Equal(t, &pickupAt, b.EstimatedPickupAt())
	assert.Equal(t, now, b.CreatedAt())
	assert.True(t, b.IsLive())
}

func TestNewBid_RejectsNonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -1} {
		_, err := bid.NewBid(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, price, "", nil, time.Now().UTC(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, "price %f", price)
	}
}

func TestNewBid_RequiresValidIdentifiers(t *testing.T) {
	_, err := bid.NewBid(
		kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
		nil, 125000, "", nil, time.Now().UTC(),
	)
	require.Error(t, err)

	_, err = bid.NewBid(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		&kernel.UUID{}, 125000, "", nil, time.Now().UTC(),
	)
	require.Error(t, err)
}

func TestBid_Accept(t *testing.T) {
	b := newPendingBid(t)

	require.NoError(t, b.Accept())
	assert.Equal(t, bid.Accepted, b.Status())
	assert.True(t, b.IsLive())
}

func TestBid_Reject(t *testing.T) {
	b := newPendingBid(t)

	require.NoError(t, b.Reject())
	assert.Equal(t, bid.Rejected, b.Status())
	assert.True(t, b.IsLive())
}

func TestBid_Withdraw(t *testing.T) {
	b := newPendingBid(t)

	require.NoError(t, b.Withdraw())
	assert.Equal(t, bid.Withdrawn, b.Status())
	assert.False(t, b.IsLive(), "withdrawn bids free the carrier to bid again")
}

func TestBid_TerminalStatusesNeverChange(t *testing.T) {
	resolutions := map[string]func(*bid.Bid) error{
		"accept":   (*bid.Bid).Accept,
		"reject":   (*bid.Bid).Reject,
		"withdraw": (*bid.Bid).Withdraw,
	}

	for firstName, first := range resolutions {
		for secondName, second := range resolutions {
			t.Run(firstName+" then "+secondName, func(t *testing.T) {
				b := newPendingBid(t)
				require.NoError(t, first(b))
				before := b.Status()

				err := second(b)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, before, b.Status())
			})
		}
	}
}

func TestRestoreBid_RejectsUnknownStatus(t *testing.T) {
	_, err := bid.RestoreBid(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, 125000, "", nil, bid.Status("OPEN"), time.Now().UTC(),
	)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreBid_KeepsTerminalStatus(t *testing.T) {
	b, err := bid.RestoreBid(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, 125000, "", nil, bid.Rejected, time.Now().UTC(),
	)
	require.NoError(t, err)
	assert.Equal(t, bid.Rejected, b.Status())
	assert.ErrorIs(t, b.Accept(), errs.ErrValueIsInvalid)
}

func TestDuplicateBidError(t *testing.T) {
	err := &bid.DuplicateBidError{OrderID: kernel.NewUUID(), CarrierID: kernel.NewUUID()}
	assert.ErrorIs(t, err, bid.ErrDuplicateBid)
	assert.Contains(t, err.Error(), "already has a bid")
}

func TestBid_Validate_ZeroValue(t *testing.T) {
	var b bid.Bid
	assert.ErrorIs(t, b.Validate(), bid.ErrBidIsNotConstructed)
}
