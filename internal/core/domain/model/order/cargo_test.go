package order_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCargo_Success(t *testing.T) {
	cargo, err := order.NewCargo(order.CargoRefrigerated, "frozen fish", 800, ptr(3.2), 20)

	require.NoError(t, err)
	require.NoError(t, cargo.Validate())
	assert.Equal(t, order.CargoRefrigerated, cargo.Type())
	assert.Equal(t, "frozen fish", cargo.Description())
	assert.Equal(t, 800.0, cargo.WeightKg())
	assert.Equal(t, 3.2, *cargo.VolumeM3())
	assert.Equal(t, 20, cargo.Quantity())
}

func TestNewCargo_EmptyTypeDefaultsToGeneral(t *testing.T) {
	cargo, err := order.NewCargo("", "boxes", 100, nil, 1)

	require.NoError(t, err)
	assert.Equal(t, order.CargoGeneral, cargo.Type())
}

func TestNewCargo_ValidationErrors(t *testing.T) {
	tests := map[string]func() (order.Cargo, error){
		"unknown type": func() (order.Cargo, error) {
			return order.NewCargo(order.CargoType("PERISHABLE"), "boxes", 100, nil, 1)
		},
		"empty description": func() (order.Cargo, error) {
			return order.NewCargo(order.CargoGeneral, "", 100, nil, 1)
		},
		"non-positive weight": func() (order.Cargo, error) {
			return order.NewCargo(order.CargoGeneral, "boxes", 0, nil, 1)
		},
		"non-positive volume": func() (order.Cargo, error) {
			return order.NewCargo(order.CargoGeneral, "boxes", 100, ptr(-1.0), 1)
		},
		"zero quantity": func() (order.Cargo, error) {
			return order.NewCargo(order.CargoGeneral, "boxes", 100, nil, 0)
		},
	}

	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			assert.Error(t, err)
		})
	}
}

func TestCargo_Validate_ZeroValue(t *testing.T) {
	var cargo order.Cargo
	assert.ErrorIs(t, cargo.Validate(), errs.ErrValueIsRequired)
}

func TestNewWaypoint_Success(t *testing.T) {
	point, err := kernel.NewGeoPoint(14.7, -17.4)
	require.NoError(t, err)

	wp, err := order.NewWaypoint("12 Rue Felix Faure", "Dakar", &point, "Mamadou", "+221771234567")

	require.NoError(t, err)
	require.NoError(t, wp.Validate())
	assert.Equal(t, "12 Rue Felix Faure", wp.Address())
	assert.Equal(t, "Dakar", wp.City())
	require.NotNil(t, wp.Point())
	assert.Equal(t, 14.7, wp.Point().Lat())
	assert.Equal(t, "Mamadou", wp.ContactName())
	assert.Equal(t, "+221771234567", wp.ContactPhone())
}

func TestNewWaypoint_AddressIsRequired(t *testing.T) {
	_, err := order.NewWaypoint("", "Dakar", nil, "", "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewWaypoint_RejectsUnconstructedPoint(t *testing.T) {
	_, err := order.NewWaypoint("12 Rue Felix Faure", "Dakar", &kernel.GeoPoint{}, "", "")
	assert.Error(t, err)
}

func TestNewWaypoint_OptionalFieldsMayBeEmpty(t *testing.T) {
	wp, err := order.NewWaypoint("Km 4 Route de Rufisque", "", nil, "", "")

	require.NoError(t, err)
	assert.Nil(t, wp.Point())
	assert.Empty(t, wp.City())
}

func TestWaypoint_Validate_ZeroValue(t *testing.T) {
	var wp order.Waypoint
	assert.ErrorIs(t, wp.Validate(), errs.ErrValueIsRequired)
}
