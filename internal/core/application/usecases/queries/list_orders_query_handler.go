package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders under the caller's visibility rules.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle lists orders newest first. Shippers and brokers see orders they
// placed, drivers and fleet managers see the open market plus their
// assignments, admins see all.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const selectColumns = `
		SELECT
			o.id,
			o.reference,
			o.status,
			o.cargo_type,
			o.pickup_city,
			o.delivery_city,
			o.proposed_price,
			o.final_price,
			o.currency,
			o.created_at
		FROM orders o
	`

	var tx *gorm.DB

	switch query.Role() {
	case ports.RoleAdmin:
		tx = h.db.WithContext(ctx).Raw(
			selectColumns+`ORDER BY o.created_at DESC`,
		)
	case ports.RoleDriver, ports.RoleFleetManager:
		tx = h.db.WithContext(ctx).Raw(
			selectColumns+`
			WHERE o.status IN (?, ?)
			   OR EXISTS (
					SELECT 1 FROM assignments a
					WHERE a.order_id = o.id AND a.driver_id = ?
			   )
			ORDER BY o.created_at DESC`,
			order.Posted, order.Bidding, query.ActingUserID().Bytes(),
		)
	default:
		tx = h.db.WithContext(ctx).Raw(
			selectColumns+`
			WHERE o.shipper_id = ? OR o.broker_id = ?
			ORDER BY o.created_at DESC`,
			query.ActingUserID().Bytes(), query.ActingUserID().Bytes(),
		)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			resp          ListOrdersQueryResponse
			id            uuid.UUID
			proposedPrice sql.NullFloat64
			finalPrice    sql.NullFloat64
		)

		if err = rows.Scan(
			&id,
			&resp.Reference,
			&resp.Status,
			&resp.CargoType,
			&resp.PickupCity,
			&resp.DeliveryCity,
			&proposedPrice,
			&finalPrice,
			&resp.Currency,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if proposedPrice.Valid {
			resp.ProposedPrice = &proposedPrice.Float64
		}
		if finalPrice.Valid {
			resp.FinalPrice = &finalPrice.Float64
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
