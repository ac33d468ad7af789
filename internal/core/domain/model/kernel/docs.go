// Package kernel provides shared value objects used across all domain
// aggregates of the freight dispatch core.
//
// The package includes:
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - GeoPoint: GPS coordinate pair with a great-circle distance estimate
//
// All value objects are immutable, created through validating constructors,
// and their zero values fail validation.
package kernel
