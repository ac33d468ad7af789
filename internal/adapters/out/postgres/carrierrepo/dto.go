// Package carrierrepo persists carrier rating profiles.
package carrierrepo

import (
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierProfileDTO represents the database structure for carrier rating
// profiles, keyed by the carrier's identity.
type CarrierProfileDTO struct {
	CarrierID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Rating       float64
	TotalRatings int
}

// TableName specifies the database table name for carrier profiles.
func (CarrierProfileDTO) TableName() string {
	return "carrier_profiles"
}

// fromDomain converts a carrier profile to its database representation.
func fromDomain(profile *carrier.Profile) CarrierProfileDTO {
	return CarrierProfileDTO{
		CarrierID:    profile.CarrierID().Bytes(),
		Rating:       profile.Rating(),
		TotalRatings: profile.TotalRatings(),
	}
}

// toDomain converts a database DTO to a carrier profile.
func toDomain(dto CarrierProfileDTO) (*carrier.Profile, error) {
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return carrier.RestoreProfile(carrierID, dto.Rating, dto.TotalRatings)
}
