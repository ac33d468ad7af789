package http

import (
	"time"

	"freight/internal/core/application/usecases/queries"
)

// Error is the uniform HTTP error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WaypointPayload carries a pickup or delivery stop in requests and
// responses.
type WaypointPayload struct {
	Address      string   `json:"address"`
	City         string   `json:"city,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	ContactName  string   `json:"contact_name,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CargoType        string          `json:"cargo_type"`
	CargoDescription string          `json:"cargo_description"`
	WeightKg         float64         `json:"weight_kg"`
	VolumeM3         *float64        `json:"volume_m3,omitempty"`
	Quantity         int             `json:"quantity"`
	Pickup           WaypointPayload `json:"pickup"`
	Delivery         WaypointPayload `json:"delivery"`

	PickupScheduledAt *time.Time `json:"pickup_scheduled_at,omitempty"`
	DeliveryDeadline  *time.Time `json:"delivery_deadline,omitempty"`
	ProposedPrice     *float64   `json:"proposed_price,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	BrokerID          *string    `json:"broker_id,omitempty"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:orderID. The full
// editable set is replaced; draft-only enforcement happens in the domain.
type UpdateOrderRequest struct {
	CargoType        string          `json:"cargo_type"`
	CargoDescription string          `json:"cargo_description"`
	WeightKg         float64         `json:"weight_kg"`
	VolumeM3         *float64        `json:"volume_m3,omitempty"`
	Quantity         int             `json:"quantity"`
	Pickup           WaypointPayload `json:"pickup"`
	Delivery         WaypointPayload `json:"delivery"`
	ProposedPrice    *float64        `json:"proposed_price,omitempty"`
}

// PlaceBidRequest is the body of POST /api/v1/orders/:orderID/bids.
type PlaceBidRequest struct {
	Price             float64    `json:"price"`
	Message           string     `json:"message,omitempty"`
	VehicleID         *string    `json:"vehicle_id,omitempty"`
	EstimatedPickupAt *time.Time `json:"estimated_pickup_at,omitempty"`
}

// TransitionRequest is the body of POST /api/v1/orders/:orderID/transition.
type TransitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
}

// SubmitProofRequest is the body of POST /api/v1/orders/:orderID/proof.
type SubmitProofRequest struct {
	PhotoRef  string `json:"photo_ref,omitempty"`
	Note      string `json:"note,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// RateRequest is the body of POST /api/v1/orders/:orderID/rate.
type RateRequest struct {
	Score  int    `json:"score"`
	Review string `json:"review,omitempty"`
}

// OrderCreatedResponse confirms order creation.
type OrderCreatedResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// BidCreatedResponse confirms bid placement.
type BidCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AssignmentResponse reports the result of bid acceptance.
type AssignmentResponse struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	DriverID   string  `json:"driver_id"`
	VehicleID  *string `json:"vehicle_id,omitempty"`
	AssignedAt string  `json:"assigned_at"`
}

// OrderSummary is one row of GET /api/v1/orders.
type OrderSummary struct {
	ID            string   `json:"id"`
	Reference     string   `json:"reference"`
	Status        string   `json:"status"`
	CargoType     string   `json:"cargo_type"`
	PickupCity    string   `json:"pickup_city,omitempty"`
	DeliveryCity  string   `json:"delivery_city,omitempty"`
	ProposedPrice *float64 `json:"proposed_price,omitempty"`
	FinalPrice    *float64 `json:"final_price,omitempty"`
	Currency      string   `json:"currency"`
	CreatedAt     string   `json:"created_at"`
}

// OrderDetail is the body of GET /api/v1/orders/:orderID.
type OrderDetail struct {
	ID                  string             `json:"id"`
	Reference           string             `json:"reference"`
	ShipperID           string             `json:"shipper_id"`
	Status              string             `json:"status"`
	CargoType           string             `json:"cargo_type"`
	CargoDescription    string             `json:"cargo_description"`
	WeightKg            float64            `json:"weight_kg"`
	Quantity            int                `json:"quantity"`
	PickupAddress       string             `json:"pickup_address"`
	PickupCity          string             `json:"pickup_city,omitempty"`
	DeliveryAddress     string             `json:"delivery_address"`
	DeliveryCity        string             `json:"delivery_city,omitempty"`
	ProposedPrice       *float64           `json:"proposed_price,omitempty"`
	FinalPrice          *float64           `json:"final_price,omitempty"`
	Currency            string             `json:"currency"`
	EstimatedDistanceKm *float64           `json:"estimated_distance_km,omitempty"`
	CancellationReason  string             `json:"cancellation_reason,omitempty"`
	CreatedAt           string             `json:"created_at"`
	Assignment          *AssignmentSummary `json:"assignment,omitempty"`
}

// AssignmentSummary is the assignment block inside OrderDetail.
type AssignmentSummary struct {
	DriverID    string  `json:"driver_id"`
	VehicleID   *string `json:"vehicle_id,omitempty"`
	AssignedAt  string  `json:"assigned_at"`
	DeliveredAt *string `json:"delivered_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// BidSummary is one row of GET /api/v1/orders/:orderID/bids.
type BidSummary struct {
	ID                string     `json:"id"`
	CarrierID         string     `json:"carrier_id"`
	VehicleID         *string    `json:"vehicle_id,omitempty"`
	Price             float64    `json:"price"`
	Message           string     `json:"message,omitempty"`
	Status            string     `json:"status"`
	EstimatedPickupAt *time.Time `json:"estimated_pickup_at,omitempty"`
	CreatedAt         string     `json:"created_at"`
}

func orderDetailFromQuery(view queries.GetOrderQueryResponse) OrderDetail {
	detail := OrderDetail{
		ID:                  view.ID.String(),
		Reference:           view.Reference,
		ShipperID:           view.ShipperID.String(),
		Status:              view.Status,
		CargoType:           view.CargoType,
		CargoDescription:    view.CargoDescription,
		WeightKg:            view.CargoWeightKg,
		Quantity:            view.CargoQuantity,
		PickupAddress:       view.PickupAddress,
		PickupCity:          view.PickupCity,
		DeliveryAddress:     view.DeliveryAddress,
		DeliveryCity:        view.DeliveryCity,
		ProposedPrice:       view.ProposedPrice,
		FinalPrice:          view.FinalPrice,
		Currency:            view.Currency,
		EstimatedDistanceKm: view.EstimatedDistanceKm,
		CancellationReason:  view.CancellationReason,
		CreatedAt:           view.CreatedAt.Format(time.RFC3339),
	}

	if view.Assignment != nil {
		summary := AssignmentSummary{
			DriverID:   view.Assignment.DriverID.String(),
			AssignedAt: view.Assignment.AssignedAt.Format(time.RFC3339),
		}
		if view.Assignment.VehicleID != nil {
			vid := view.Assignment.VehicleID.String()
			summary.VehicleID = &vid
		}
		if view.Assignment.DeliveredAt != nil {
			s := view.Assignment.DeliveredAt.Format(time.RFC3339)
			summary.DeliveredAt = &s
		}
		if view.Assignment.CompletedAt != nil {
			s := view.Assignment.CompletedAt.Format(time.RFC3339)
			summary.CompletedAt = &s
		}
		detail.Assignment = &summary
	}

	return detail
}
