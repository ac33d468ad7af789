// Package orderrepo persists the order aggregate. DTOs map the aggregate to
// the orders table; reconstruction goes through RestoreOrder so the status
// enum and the final-price invariant are re-checked on every read.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status and created_at are indexed together for the
// stale-order sweep.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference string     `gorm:"uniqueIndex;size:16"`
	ShipperID uuid.UUID  `gorm:"type:uuid;index"`
	BrokerID  *uuid.UUID `gorm:"type:uuid"`

	Cargo    CargoDTO    `gorm:"embedded;embeddedPrefix:cargo_"`
	Pickup   WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery WaypointDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	PickupScheduledAt *time.Time
	DeliveryDeadline  *time.Time

	ProposedPrice       *float64
	FinalPrice          *float64
	Currency            string `gorm:"size:3"`
	EstimatedDistanceKm *float64

	Status             string `gorm:"size:16;index:idx_orders_status_created_at"`
	StatusChangedAt    *time.Time
	CancellationReason string
	CreatedAt          time.Time `gorm:"index:idx_orders_status_created_at"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CargoDTO is the embedded cargo description within the orders table.
type CargoDTO struct {
	Type        string `gorm:"size:16"`
	Description string
	WeightKg    float64
	VolumeM3    *float64
	Quantity    int
}

// WaypointDTO is an embedded pickup or delivery stop within the orders
// table. Coordinates are optional; both are present or both absent.
type WaypointDTO struct {
	Address      string
	City         string
	Lat          *float64
	Lng          *float64
	ContactName  string
	ContactPhone string
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var brokerID *uuid.UUID
	if id := aggregate.BrokerID(); id != nil {
		raw := id.Bytes()
		brokerID = &raw
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Reference:           aggregate.Reference(),
		ShipperID:           aggregate.ShipperID().Bytes(),
		BrokerID:            brokerID,
		Cargo:               cargoFromDomain(aggregate.Cargo()),
		Pickup:              waypointFromDomain(aggregate.Pickup()),
		Delivery:            waypointFromDomain(aggregate.Delivery()),
		PickupScheduledAt:   aggregate.PickupScheduledAt(),
		DeliveryDeadline:    aggregate.DeliveryDeadline(),
		ProposedPrice:       aggregate.ProposedPrice(),
		FinalPrice:          aggregate.FinalPrice(),
		Currency:            aggregate.Currency(),
		EstimatedDistanceKm: aggregate.EstimatedDistanceKm(),
		Status:              aggregate.Status().String(),
		StatusChangedAt:     aggregate.StatusChangedAt(),
		CancellationReason:  aggregate.CancellationReason(),
		CreatedAt:           aggregate.CreatedAt(),
	}
}

func cargoFromDomain(c order.Cargo) CargoDTO {
	return CargoDTO{
		Type:        string(c.Type()),
		Description: c.Description(),
		WeightKg:    c.WeightKg(),
		VolumeM3:    c.VolumeM3(),
		Quantity:    c.Quantity(),
	}
}

func waypointFromDomain(w order.Waypoint) WaypointDTO {
	dto := WaypointDTO{
		Address:      w.Address(),
		City:         w.City(),
		ContactName:  w.ContactName(),
		ContactPhone: w.ContactPhone(),
	}

	if p := w.Point(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	var brokerID *kernel.UUID
	if dto.BrokerID != nil {
		bID, brokerErr := kernel.UUIDFromBytes((*dto.BrokerID)[:])
		if brokerErr != nil {
			return nil, brokerErr
		}
		brokerID = &bID
	}

	cargo, err := cargoToDomain(dto.Cargo)
	if err != nil {
		return nil, err
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	delivery, err := waypointToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		Reference:           dto.Reference,
		ShipperID:           shipperID,
		BrokerID:            brokerID,
		Cargo:               cargo,
		Pickup:              pickup,
		Delivery:            delivery,
		PickupScheduledAt:   dto.PickupScheduledAt,
		DeliveryDeadline:    dto.DeliveryDeadline,
		ProposedPrice:       dto.ProposedPrice,
		FinalPrice:          dto.FinalPrice,
		Currency:            dto.Currency,
		EstimatedDistanceKm: dto.EstimatedDistanceKm,
		Status:              order.Status(dto.Status),
		StatusChangedAt:     dto.StatusChangedAt,
		CancellationReason:  dto.CancellationReason,
		CreatedAt:           dto.CreatedAt,
	})
}

func cargoToDomain(dto CargoDTO) (order.Cargo, error) {
	return order.NewCargo(
		order.CargoType(dto.Type),
		dto.Description,
		dto.WeightKg,
		dto.VolumeM3,
		dto.Quantity,
	)
}

func waypointToDomain(dto WaypointDTO) (order.Waypoint, error) {
	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return order.Waypoint{}, err
		}
		point = &p
	}

	return order.NewWaypoint(dto.Address, dto.City, point, dto.ContactName, dto.ContactPhone)
}
