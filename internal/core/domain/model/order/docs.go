// Package order provides the aggregate root of the freight dispatch core:
// the order lifecycle, its state machine, and the cargo and waypoint value
// objects.
//
// Key business rules:
//   - Orders are created DRAFT and editable only while DRAFT
//   - Status changes follow the explicit transition table in status.go;
//     every other move is rejected with InvalidTransitionError
//   - finalPrice is set exactly once, by Assign, when a bid is accepted
//   - reference and estimatedDistanceKm are derived once at creation
//
// The transition table is kept as data (status → allowed targets) rather
// than behavior per state, so it can be audited and tested exhaustively.
package order
