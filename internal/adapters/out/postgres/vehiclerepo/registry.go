// Package vehiclerepo is the read model behind the vehicle ownership check.
// Vehicles are registered by the fleet subsystem; dispatch only reads them.
package vehiclerepo

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleDTO represents the database structure of registered vehicles.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	PlateNumber string    `gorm:"size:32"`
	VehicleType string    `gorm:"size:32"`
	CapacityKg  *float64
	CreatedAt   time.Time
}

// TableName specifies the database table name for vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// GormVehicleRegistry implements the VehicleRegistry port over the vehicles
// table.
type GormVehicleRegistry struct {
	db *gorm.DB
}

// NewGormVehicleRegistry creates a vehicle registry backed by GORM.
func NewGormVehicleRegistry(db *gorm.DB) *GormVehicleRegistry {
	return &GormVehicleRegistry{db: db}
}

// OwnedBy reports whether the vehicle exists and belongs to the owner.
func (r *GormVehicleRegistry) OwnedBy(ctx context.Context, vehicleID, ownerID kernel.UUID) (bool, error) {
	if err := vehicleID.Validate(); err != nil {
		return false, err
	}
	if err := ownerID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ? AND owner_id = ?", vehicleID.Bytes(), ownerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
