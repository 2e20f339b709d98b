// Package http exposes the order lifecycle over a REST API.
// It translates requests into commands and queries and maps domain
// rejections onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body for all error replies.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload the checkout flow posts to register a
// new order. Amounts are in minor currency units.
type CreateOrderRequest struct {
	Number      string `json:"number"`
	CustomerID  string `json:"customerId"`
	StoreID     string `json:"storeId"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"deliveryFee"`
	Discount    int64  `json:"discount"`
	Tax         int64  `json:"tax"`
	Total       int64  `json:"total"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransitionRequest asks to move an order to a new status on behalf of an
// actor. ProofCode is required only when completing a delivery.
type TransitionRequest struct {
	Target    string `json:"target"`
	ActorRole string `json:"actorRole"`
	ActorID   string `json:"actorId"`
	Note      string `json:"note,omitempty"`
	ProofCode string `json:"proofCode,omitempty"`
}

// OrderResponse is the state of an order after an applied transition.
type OrderResponse struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Status    string  `json:"status"`
	CourierID *string `json:"courierId,omitempty"`
}

// HistoryEntryResponse is one entry of an order's status trail.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
	ActorRole string    `json:"actorRole"`
	ActorID   string    `json:"actorId"`
	Note      string    `json:"note,omitempty"`
}

// ActiveOrderResponse is a flat projection of one in-flight order.
type ActiveOrderResponse struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	Status     string  `json:"status"`
	CustomerID string  `json:"customerId"`
	StoreID    string  `json:"storeId"`
	CourierID  *string `json:"courierId,omitempty"`
	Total      int64   `json:"total"`
}

// ClaimableOrderResponse is one order a courier can claim.
type ClaimableOrderResponse struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	StoreID string `json:"storeId"`
	Total   int64  `json:"total"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	requestTransitionHandler commands.RequestTransitionCommandHandler

	getStatusHistoryHandler   queries.GetStatusHistoryQueryHandler
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		requestTransitionHandler:  requestTransitionHandler,
		getStatusHistoryHandler:   getStatusHistoryHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getClaimableOrdersHandler: getClaimableOrdersHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.RequestTransition)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/claimable", s.GetClaimableOrders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}
	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store ID")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.Number, customerID, storeID,
		req.Subtotal, req.DeliveryFee, req.Discount, req.Tax, req.Total)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorReply(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     orderID.String(),
		Status: order.Pending.String(),
	})
}

// RequestTransition handles POST /api/v1/orders/:id/status.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Unknown target status: "+req.Target)
	}

	role, err := order.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Unknown actor role: "+req.ActorRole)
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	actor, err := order.NewActor(role, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	cmd, err := commands.NewRequestTransitionCommand(orderID, target, actor, req.Note, req.ProofCode)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	updated, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorReply(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetStatusHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	entries, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorReply(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntryResponse{
			Status:    entry.Status.String(),
			At:        entry.At,
			ActorRole: entry.ActorRole.String(),
			ActorID:   entry.ActorID.String(),
			Note:      entry.Note,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorReply(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		var courierID *string
		if o.CourierID != nil {
			id := o.CourierID.String()
			courierID = &id
		}

		response[i] = ActiveOrderResponse{
			ID:         o.ID.String(),
			Number:     o.Number,
			Status:     o.Status.String(),
			CustomerID: o.CustomerID.String(),
			StoreID:    o.StoreID.String(),
			CourierID:  courierID,
			Total:      o.Total,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetClaimableOrders handles GET /api/v1/orders/claimable.
func (s *Server) GetClaimableOrders(ctx echo.Context) error {
	query := queries.NewGetClaimableOrdersQuery()

	orders, err := s.getClaimableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorReply(ctx, err)
	}

	response := make([]ClaimableOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ClaimableOrderResponse{
			ID:      o.ID.String(),
			Number:  o.Number,
			StoreID: o.StoreID.String(),
			Total:   o.Total,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderResponse(o *order.Order) OrderResponse {
	var courierID *string
	if id := o.Courier(); id != nil {
		s := id.String()
		courierID = &s
	}

	return OrderResponse{
		ID:        o.ID().String(),
		Number:    o.Number(),
		Status:    o.Status().String(),
		CourierID: courierID,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorReply maps domain rejections onto HTTP status codes. Contract
// violations (wrong role) are 403, races and illegal edges are 409, valid
// requests the order's state cannot honor are 422.
func errorReply(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorizedTransition):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrProofInvalid):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
