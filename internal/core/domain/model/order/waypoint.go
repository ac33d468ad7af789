package order

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrWaypointIsNotConstructed is returned when a Waypoint was not created via
// NewWaypoint.
var ErrWaypointIsNotConstructed = errs.NewValueIsRequiredError(
	"waypoint must be created via NewWaypoint constructor")

// Waypoint is one end of a freight movement: a street address plus optional
// coordinates and an on-site contact. Immutable value object.
type Waypoint struct { //nolint:recvcheck //using for validation
	address      string
	city         string
	point        *kernel.GeoPoint
	contactName  string
	contactPhone string

	guard guard.ConstructorGuard
}

// NewWaypoint creates a validated Waypoint. The street address is required;
// coordinates and contact details are optional.
func NewWaypoint(address, city string, point *kernel.GeoPoint, contactName, contactPhone string) (Waypoint, error) {
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}

	if point != nil {
		if err := point.Validate(); err != nil {
			return Waypoint{}, err
		}
	}

	return Waypoint{
		address:      address,
		city:         city,
		point:        point,
		contactName:  contactName,
		contactPhone: contactPhone,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Waypoint was created through the constructor.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Address returns the street address.
func (w Waypoint) Address() string {
	return w.address
}

// City returns the city name, possibly empty.
func (w Waypoint) City() string {
	return w.city
}

// Point returns the GPS coordinates, nil when not provided.
func (w Waypoint) Point() *kernel.GeoPoint {
	return w.point
}

// ContactName returns the on-site contact name, possibly empty.
func (w Waypoint) ContactName() string {
	return w.contactName
}

// ContactPhone returns the on-site contact phone, possibly empty.
func (w Waypoint) ContactPhone() string {
	return w.contactPhone
}
