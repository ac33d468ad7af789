package carrierrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCarrierRepository implements CarrierRepository using GORM.
type GormCarrierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCarrierRepository creates a new GORM carrier profile repository.
func NewGormCarrierRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierRepository {
	return &GormCarrierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Ensure retrieves the carrier's profile, creating an empty one on first
// use. The insert is ON CONFLICT DO NOTHING, so two concurrent first ratings
// converge on the same row instead of failing.
func (r *GormCarrierRepository) Ensure(ctx context.Context, carrierID kernel.UUID) (*carrier.Profile, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierProfileDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "carrier_id = ?", carrierID.Bytes()).Error
	if err == nil {
		return toDomain(dto)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := carrier.NewProfile(carrierID)
	if err != nil {
		return nil, err
	}

	dto = fromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	// Re-read under lock in case a concurrent insert won the conflict.
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "carrier_id = ?", carrierID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Update saves an existing carrier profile to the database.
func (r *GormCarrierRepository) Update(ctx context.Context, profile *carrier.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(&CarrierProfileDTO{}).
		Where("carrier_id = ?", dto.CarrierID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(profile.CarrierID(), profile)
	return nil
}
