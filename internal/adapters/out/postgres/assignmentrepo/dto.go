// Package assignmentrepo persists the assignment aggregate, one row per
// dispatched order.
package assignmentrepo

import (
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignment
// aggregates. order_id is unique: at most one carrier ever wins an order.
type AssignmentDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	DriverID      uuid.UUID  `gorm:"type:uuid;index"`
	VehicleID     *uuid.UUID `gorm:"type:uuid"`
	AcceptedBidID uuid.UUID  `gorm:"type:uuid"`

	AssignedAt      time.Time
	DriverEnRouteAt *time.Time
	PickedUpAt      *time.Time
	InTransitAt     *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time

	ProofPhotoRef              string
	ProofNote                  string
	ProofSignature             string
	DeliveryConfirmedByShipper bool

	ShipperRating *int
	DriverRating  *int
	ShipperReview string
	DriverReview  string
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment aggregate to its database
// representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	var vehicleID *uuid.UUID
	if id := aggregate.VehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return AssignmentDTO{
		ID:                         aggregate.ID().Bytes(),
		OrderID:                    aggregate.OrderID().Bytes(),
		DriverID:                   aggregate.DriverID().Bytes(),
		VehicleID:                  vehicleID,
		AcceptedBidID:              aggregate.AcceptedBidID().Bytes(),
		AssignedAt:                 aggregate.AssignedAt(),
		DriverEnRouteAt:            aggregate.DriverEnRouteAt(),
		PickedUpAt:                 aggregate.PickedUpAt(),
		InTransitAt:                aggregate.InTransitAt(),
		DeliveredAt:                aggregate.DeliveredAt(),
		CompletedAt:                aggregate.CompletedAt(),
		ProofPhotoRef:              aggregate.ProofPhotoRef(),
		ProofNote:                  aggregate.ProofNote(),
		ProofSignature:             aggregate.ProofSignature(),
		DeliveryConfirmedByShipper: aggregate.DeliveryConfirmedByShipper(),
		ShipperRating:              aggregate.ShipperRating(),
		DriverRating:               aggregate.DriverRating(),
		ShipperReview:              aggregate.ShipperReview(),
		DriverReview:               aggregate.DriverReview(),
	}
}

// toDomain converts a database DTO to an assignment aggregate.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	acceptedBidID, err := kernel.UUIDFromBytes(dto.AcceptedBidID[:])
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

	return assignment.RestoreAssignment(assignment.RestoreAssignmentParams{
		ID:                         id,
		OrderID:                    orderID,
		DriverID:                   driverID,
		VehicleID:                  vehicleID,
		AcceptedBidID:              acceptedBidID,
		AssignedAt:                 dto.AssignedAt,
		DriverEnRouteAt:            dto.DriverEnRouteAt,
		PickedUpAt:                 dto.PickedUpAt,
		InTransitAt:                dto.InTransitAt,
		DeliveredAt:                dto.DeliveredAt,
		CompletedAt:                dto.CompletedAt,
		ProofPhotoRef:              dto.ProofPhotoRef,
		ProofNote:                  dto.ProofNote,
		ProofSignature:             dto.ProofSignature,
		DeliveryConfirmedByShipper: dto.DeliveryConfirmedByShipper,
		ShipperRating:              dto.ShipperRating,
		DriverRating:               dto.DriverRating,
		ShipperReview:              dto.ShipperReview,
		DriverReview:               dto.DriverReview,
	})
}
