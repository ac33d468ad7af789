package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order, joined with its assignment when one
// exists.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order view. Returns an ObjectNotFound error when no
// such order exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference,
			shipper_id,
			status,
			cargo_type,
			cargo_description,
			cargo_weight_kg,
			cargo_quantity,
			pickup_address,
			pickup_city,
			delivery_address,
			delivery_city,
			proposed_price,
			final_price,
			currency,
			estimated_distance_km,
			cancellation_reason,
			status_changed_at,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp      GetOrderQueryResponse
		id        uuid.UUID
		shipperID uuid.UUID

		proposedPrice sql.NullFloat64
		finalPrice    sql.NullFloat64
		distanceKm    sql.NullFloat64
		changedAt     sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.Reference,
		&shipperID,
		&resp.Status,
		&resp.CargoType,
		&resp.CargoDescription,
		&resp.CargoWeightKg,
		&resp.CargoQuantity,
		&resp.PickupAddress,
		&resp.PickupCity,
		&resp.DeliveryAddress,
		&resp.DeliveryCity,
		&proposedPrice,
		&finalPrice,
		&resp.Currency,
		&distanceKm,
		&resp.CancellationReason,
		&changedAt,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if proposedPrice.Valid {
		resp.ProposedPrice = &proposedPrice.Float64
	}
	if finalPrice.Valid {
		resp.FinalPrice = &finalPrice.Float64
	}
	if distanceKm.Valid {
		resp.EstimatedDistanceKm = &distanceKm.Float64
	}
	if changedAt.Valid {
		resp.StatusChangedAt = &changedAt.Time
	}

	asg, err := h.loadAssignment(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Assignment = asg

	return resp, nil
}

func (h GetOrderQueryHandler) loadAssignment(ctx context.Context, orderID kernel.UUID) (*AssignmentView, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			vehicle_id,
			assigned_at,
			delivered_at,
			completed_at
		FROM assignments
		WHERE order_id = ?
	`, orderID.Bytes()).Row()

	var (
		view        AssignmentView
		driverID    uuid.UUID
		vehicleID   uuid.NullUUID
		deliveredAt sql.NullTime
		completedAt sql.NullTime
	)

	err := row.Scan(&driverID, &vehicleID, &view.AssignedAt, &deliveredAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if view.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return nil, err
	}
	if vehicleID.Valid {
		vid, vidErr := kernel.UUIDFromBytes(vehicleID.UUID[:])
		if vidErr != nil {
			return nil, vidErr
		}
		view.VehicleID = &vid
	}
	if deliveredAt.Valid {
		view.DeliveredAt = &deliveredAt.Time
	}
	if completedAt.Valid {
		view.CompletedAt = &completedAt.Time
	}

	return &view, nil
}
