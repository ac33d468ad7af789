// Package http exposes the dispatch operations over REST. Authentication is
// terminated upstream; the gateway forwards the caller's identity in the
// X-User-ID header and this adapter passes it to the use cases, which do the
// actual authorization.
package http

import (
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const userIDHeader = "X-User-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	updateDraftHandler     commands.UpdateOrderDraftCommandHandler
	postOrderHandler       commands.PostOrderCommandHandler
	placeBidHandler        commands.PlaceBidCommandHandler
	acceptBidHandler       commands.AcceptBidCommandHandler
	withdrawBidHandler     commands.WithdrawBidCommandHandler
	transitionHandler      commands.TransitionOrderCommandHandler
	submitProofHandler     commands.SubmitProofCommandHandler
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler
	rateDeliveryHandler    commands.RateDeliveryCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
	listBidsHandler   queries.ListBidsQueryHandler

	identity ports.IdentityProvider
}

// NewServer creates the HTTP server with all command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateDraftHandler commands.UpdateOrderDraftCommandHandler,
	postOrderHandler commands.PostOrderCommandHandler,
	placeBidHandler commands.PlaceBidCommandHandler,
	acceptBidHandler commands.AcceptBidCommandHandler,
	withdrawBidHandler commands.WithdrawBidCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	submitProofHandler commands.SubmitProofCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	rateDeliveryHandler commands.RateDeliveryCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listBidsHandler queries.ListBidsQueryHandler,
	identity ports.IdentityProvider,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		updateDraftHandler:     updateDraftHandler,
		postOrderHandler:       postOrderHandler,
		placeBidHandler:        placeBidHandler,
		acceptBidHandler:       acceptBidHandler,
		withdrawBidHandler:     withdrawBidHandler,
		transitionHandler:      transitionHandler,
		submitProofHandler:     submitProofHandler,
		confirmDeliveryHandler: confirmDeliveryHandler,
		rateDeliveryHandler:    rateDeliveryHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		listBidsHandler:        listBidsHandler,
		identity:               identity,
	}
}

// RegisterRoutes mounts all dispatch endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:orderID", s.GetOrder)
	v1.PATCH("/orders/:orderID", s.UpdateOrder)
	v1.POST("/orders/:orderID/post", s.PostOrder)
	v1.POST("/orders/:orderID/transition", s.TransitionOrder)
	v1.POST("/orders/:orderID/proof", s.SubmitProof)
	v1.POST("/orders/:orderID/confirm", s.ConfirmDelivery)
	v1.POST("/orders/:orderID/rate", s.RateDelivery)

	v1.GET("/orders/:orderID/bids", s.ListBids)
	v1.POST("/orders/:orderID/bids", s.PlaceBid)
	v1.POST("/orders/:orderID/bids/:bidID/accept", s.AcceptBid)
	v1.POST("/orders/:orderID/bids/:bidID/withdraw", s.WithdrawBid)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cargo, pickup, delivery, err := buildOrderValues(
		req.CargoType, req.CargoDescription, req.WeightKg, req.VolumeM3, req.Quantity,
		req.Pickup, req.Delivery,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	var brokerID *kernel.UUID
	if req.BrokerID != nil {
		id, brokerErr := kernel.UUIDFromString(*req.BrokerID)
		if brokerErr != nil {
			return writeError(ctx, brokerErr)
		}
		brokerID = &id
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		caller,
		brokerID,
		cargo,
		pickup,
		delivery,
		req.PickupScheduledAt,
		req.DeliveryDeadline,
		req.ProposedPrice,
		req.Currency,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{
		ID:        created.ID().String(),
		Reference: created.Reference(),
		Status:    created.Status().String(),
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:orderID.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cargo, pickup, delivery, err := buildOrderValues(
		req.CargoType, req.CargoDescription, req.WeightKg, req.VolumeM3, req.Quantity,
		req.Pickup, req.Delivery,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderDraftCommand(orderID, caller, cargo, pickup, delivery, req.ProposedPrice)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateDraftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PostOrder handles POST /api/v1/orders/:orderID/post.
func (s *Server) PostOrder(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPostOrderCommand(orderID, caller)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.postOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, caller, order.Status(req.Target), req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceBid handles POST /api/v1/orders/:orderID/bids.
func (s *Server) PlaceBid(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PlaceBidRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var vehicleID *kernel.UUID
	if req.VehicleID != nil {
		id, vehicleErr := kernel.UUIDFromString(*req.VehicleID)
		if vehicleErr != nil {
			return writeError(ctx, vehicleErr)
		}
		vehicleID = &id
	}

	cmd, err := commands.NewPlaceBidCommand(
		kernel.NewUUID(),
		orderID,
		caller,
		vehicleID,
		req.Price,
		req.Message,
		req.EstimatedPickupAt,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.placeBidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, BidCreatedResponse{
		ID:     placed.ID().String(),
		Status: placed.Status().String(),
	})
}

// AcceptBid handles POST /api/v1/orders/:orderID/bids/:bidID/accept.
func (s *Server) AcceptBid(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	bidID, err := kernel.UUIDFromString(ctx.Param("bidID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptBidCommand(orderID, bidID, caller)
	if err != nil {
		return writeError(ctx, err)
	}

	asg, err := s.acceptBidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := AssignmentResponse{
		ID:         asg.ID().String(),
		OrderID:    asg.OrderID().String(),
		DriverID:   asg.DriverID().String(),
		AssignedAt: asg.AssignedAt().Format(time.RFC3339),
	}
	if asg.VehicleID() != nil {
		vid := asg.VehicleID().String()
		resp.VehicleID = &vid
	}

	return ctx.JSON(http.StatusOK, resp)
}

// WithdrawBid handles POST /api/v1/orders/:orderID/bids/:bidID/withdraw.
func (s *Server) WithdrawBid(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	bidID, err := kernel.UUIDFromString(ctx.Param("bidID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewWithdrawBidCommand(orderID, bidID, caller)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.withdrawBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitProof handles POST /api/v1/orders/:orderID/proof.
func (s *Server) SubmitProof(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req SubmitProofRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSubmitProofCommand(orderID, caller, req.PhotoRef, req.Note, req.Signature)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.submitProofHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/orders/:orderID/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, caller)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateDelivery handles POST /api/v1/orders/:orderID/rate.
func (s *Server) RateDelivery(ctx echo.Context) error {
	caller, orderID, err := callerAndOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRateDeliveryCommand(orderID, caller, req.Score, req.Review)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailFromQuery(view))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	caller, err := callerID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	role, err := s.identity.RoleOf(ctx.Request().Context(), caller)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(caller, role)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummary, len(rows))
	for i, row := range rows {
		response[i] = OrderSummary{
			ID:            row.ID.String(),
			Reference:     row.Reference,
			Status:        row.Status,
			CargoType:     row.CargoType,
			PickupCity:    row.PickupCity,
			DeliveryCity:  row.DeliveryCity,
			ProposedPrice: row.ProposedPrice,
			FinalPrice:    row.FinalPrice,
			Currency:      row.Currency,
			CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListBids handles GET /api/v1/orders/:orderID/bids.
func (s *Server) ListBids(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListBidsQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.listBidsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BidSummary, len(rows))
	for i, row := range rows {
		summary := BidSummary{
			ID:                row.ID.String(),
			CarrierID:         row.CarrierID.String(),
			Price:             row.Price,
			Message:           row.Message,
			Status:            row.Status,
			EstimatedPickupAt: row.EstimatedPickupAt,
			CreatedAt:         row.CreatedAt.Format(time.RFC3339),
		}
		if row.VehicleID != nil {
			vid := row.VehicleID.String()
			summary.VehicleID = &vid
		}
		response[i] = summary
	}

	return ctx.JSON(http.StatusOK, response)
}

func callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(userIDHeader + " header")
	}

	return kernel.UUIDFromString(raw)
}

func callerAndOrder(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return caller, orderID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func buildOrderValues(
	cargoType string,
	description string,
	weightKg float64,
	volumeM3 *float64,
	quantity int,
	pickup WaypointPayload,
	delivery WaypointPayload,
) (order.Cargo, order.Waypoint, order.Waypoint, error) {
	cargo, err := order.NewCargo(order.CargoType(cargoType), description, weightKg, volumeM3, quantity)
	if err != nil {
		return order.Cargo{}, order.Waypoint{}, order.Waypoint{}, err
	}

	pickupWP, err := buildWaypoint(pickup)
	if err != nil {
		return order.Cargo{}, order.Waypoint{}, order.Waypoint{}, err
	}

	deliveryWP, err := buildWaypoint(delivery)
	if err != nil {
		return order.Cargo{}, order.Waypoint{}, order.Waypoint{}, err
	}

	return cargo, pickupWP, deliveryWP, nil
}

func buildWaypoint(payload WaypointPayload) (order.Waypoint, error) {
	var point *kernel.GeoPoint
	if payload.Lat != nil && payload.Lng != nil {
		p, err := kernel.NewGeoPoint(*payload.Lat, *payload.Lng)
		if err != nil {
			return order.Waypoint{}, err
		}
		point = &p
	}

	return order.NewWaypoint(payload.Address, payload.City, point, payload.ContactName, payload.ContactPhone)
}
