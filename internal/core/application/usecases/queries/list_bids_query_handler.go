package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListBidsQueryHandler lists an order's bids for shipper review.
type ListBidsQueryHandler struct {
	db *gorm.DB
}

// NewListBidsQueryHandler creates a handler for bid listings.
func NewListBidsQueryHandler(db *gorm.DB) ListBidsQueryHandler {
	return ListBidsQueryHandler{db: db}
}

// Handle lists the order's bids sorted by price ascending, then newest
// first within equal prices.
func (h ListBidsQueryHandler) Handle(ctx context.Context, query ListBidsQuery) ([]ListBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			carrier_id,
			vehicle_id,
			price,
			message,
			status,
			estimated_pickup_at,
			created_at
		FROM bids
		WHERE order_id = ?
		ORDER BY price ASC, created_at DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListBidsQueryResponse, 0)

	for rows.Next() {
		var (
			resp      ListBidsQueryResponse
			id        uuid.UUID
			carrierID uuid.UUID
			vehicleID uuid.NullUUID
			pickupAt  sql.NullTime
		)

		if err = rows.Scan(
			&id,
			&carrierID,
			&vehicleID,
			&resp.Price,
			&resp.Message,
			&resp.Status,
			&pickupAt,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CarrierID, err = kernel.UUIDFromBytes(carrierID[:]); err != nil {
			return nil, err
		}
		if vehicleID.Valid {
			vid, vidErr := kernel.UUIDFromBytes(vehicleID.UUID[:])
			if vidErr != nil {
				return nil, vidErr
			}
			resp.VehicleID = &vid
		}
		if pickupAt.Valid {
			resp.EstimatedPickupAt = &pickupAt.Time
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
