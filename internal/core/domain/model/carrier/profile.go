// Package carrier provides the carrier-side read/write model the dispatch
// core maintains itself: the running average rating fed by shipper ratings.
// Carrier identity, documents and fleet membership live in external systems
// and are only referenced by ID.
package carrier

import (
	"errors"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrProfileIsNotConstructed is returned when a Profile was not created
// through NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

// Profile accumulates a carrier's rating as a running average weighted by the
// number of prior ratings:
//
//	newAvg = (oldAvg*oldCount + score) / (oldCount + 1)
//
// The average is stored to two decimals, matching the persisted scale.
type Profile struct {
	carrierID    kernel.UUID
	rating       float64
	totalRatings int

	isConstructed bool
}

// NewProfile creates an empty profile for a carrier: no ratings yet.
func NewProfile(carrierID kernel.UUID) (*Profile, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	return &Profile{
		carrierID:     carrierID,
		isConstructed: true,
	}, nil
}

// RestoreProfile reconstructs a profile from persistence.
func RestoreProfile(carrierID kernel.UUID, rating float64, totalRatings int) (*Profile, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	if totalRatings < 0 {
		return nil, errs.NewValueIsInvalidError("total ratings is negative")
	}

	return &Profile{
		carrierID:     carrierID,
		rating:        rating,
		totalRatings:  totalRatings,
		isConstructed: true,
	}, nil
}

// Validate ensures the Profile instance was properly constructed.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// CarrierID returns the carrier this profile belongs to.
func (p *Profile) CarrierID() kernel.UUID {
	return p.carrierID
}

// Rating returns the running average rating, 0 before the first rating.
func (p *Profile) Rating() float64 {
	return p.rating
}

// TotalRatings returns how many ratings have been applied.
func (p *Profile) TotalRatings() int {
	return p.totalRatings
}

// ApplyRating folds a new score into the running average and increments the
// count. The result is rounded to two decimals.
func (p *Profile) ApplyRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("rating", score, 1, 5)
	}

	total := p.rating*float64(p.totalRatings) + float64(score)
	p.totalRatings++
	p.rating = roundToTwoDecimals(total / float64(p.totalRatings))
	return nil
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
