// Package services provides stateless domain services of the dispatch core.
package services

import (
	"math/rand/v2"
	"strings"
)

// referenceAlphabet excludes easily confused characters (0/O, 1/I).
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// referenceLength is the length of the random part of an order reference.
const referenceLength = 5

// ReferenceGenerator produces short human-readable order references such as
// "MESS-K7X2P". A reference is generated once at order creation and never
// changes. Uniqueness is enforced by the orders table; the keyspace of 32^5
// makes retries on collision rare enough to surface as a storage error.
type ReferenceGenerator struct {
	prefix string
}

// NewReferenceGenerator creates a generator with the platform prefix.
func NewReferenceGenerator() ReferenceGenerator {
	return ReferenceGenerator{prefix: "MESS"}
}

// Generate returns a new order reference.
func (g ReferenceGenerator) Generate() string {
	var sb strings.Builder
	sb.WriteString(g.prefix)
	sb.WriteByte('-')
	for range referenceLength {
		sb.WriteByte(referenceAlphabet[rand.IntN(len(referenceAlphabet))]) //nolint:gosec // not security sensitive
	}
	return sb.String()
}
