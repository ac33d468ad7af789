// Package bidrepo persists the bid aggregate. The bids table carries a
// partial unique index on (order_id, carrier_id) over live bids, the
// database-level backstop for the one-live-bid rule.
package bidrepo

import (
	"time"

	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bid aggregates.
// The live-bid partial unique index is created in the migration step, since
// GORM tags cannot express a WHERE clause.
type BidDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	CarrierID uuid.UUID  `gorm:"type:uuid;index"`
	VehicleID *uuid.UUID `gorm:"type:uuid"`

	Price             float64
	Message           string
	EstimatedPickupAt *time.Time
	Status            string `gorm:"size:16"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	var vehicleID *uuid.UUID
	if id := aggregate.VehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return BidDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		CarrierID:         aggregate.CarrierID().Bytes(),
		VehicleID:         vehicleID,
		Price:             aggregate.Price(),
		Message:           aggregate.Message(),
		EstimatedPickupAt: aggregate.EstimatedPickupAt(),
		Status:            aggregate.Status().String(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a bid aggregate.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	return bid.RestoreBid(
		id,
		orderID,
		carrierID,
		vehicleID,
		dto.Price,
		dto.Message,
		dto.EstimatedPickupAt,
		bid.Status(dto.Status),
		dto.CreatedAt,
	)
}
