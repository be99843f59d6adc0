// Package http exposes the dispatch core over a JSON API. Handlers translate
// requests into commands and queries and map domain errors onto status codes;
// they hold no business rules of their own.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler      commands.PlaceOrderCommandHandler
	confirmPaymentHandler  commands.ConfirmPaymentCommandHandler
	claimOrderHandler      commands.ClaimOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	assignCourierHandler   commands.AssignCourierCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler

	// Query handlers
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler

	// Pass-through for entity events raised by external collaborators
	entityNotifier ports.EntityNotifier
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	entityNotifier ports.EntityNotifier,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		confirmPaymentHandler:     confirmPaymentHandler,
		claimOrderHandler:         claimOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		assignCourierHandler:      assignCourierHandler,
		cancelOrderHandler:        cancelOrderHandler,
		getClaimableOrdersHandler: getClaimableOrdersHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		entityNotifier:            entityNotifier,
	}
}

// RegisterRoutes binds the API surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/claimable", s.GetClaimableOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:id/payment", s.ConfirmPayment)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	events := api.Group("/events")
	events.POST("/chef-status", s.PublishChefStatus)
	events.POST("/product-availability", s.PublishProductAvailability)
	events.POST("/wallet", s.PublishWalletUpdate)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderResponse struct {
	ID            string     `json:"id"`
	ChefID        string     `json:"chef_id"`
	CustomerID    string     `json:"customer_id"`
	CourierID     *string    `json:"courier_id,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt    *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

func toOrderResponse(o *order.Order) orderResponse {
	var courierID *string
	if id := o.Courier(); id != nil {
		s := id.String()
		courierID = &s
	}

	return orderResponse{
		ID:            o.ID().String(),
		ChefID:        o.ChefID().String(),
		CustomerID:    o.CustomerID().String(),
		CourierID:     courierID,
		Status:        o.Status().String(),
		PaymentStatus: string(o.PaymentStatus()),
		CancelReason:  o.CancelReason(),
		ApprovedAt:    o.ApprovedAt(),
		AssignedAt:    o.AssignedAt(),
		PickedUpAt:    o.PickedUpAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

// writeError maps domain errors onto the API's status codes. Losing a claim
// race and moving a stale order both surface as conflicts; an order that is
// simply not actionable right now is unprocessable rather than conflicting.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrAlreadyClaimed), errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrNotClaimable):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// PlaceOrder handles POST /api/v1/orders - registers a placed order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body struct {
		ID         string `json:"id"`
		ChefID     string `json:"chef_id"`
		CustomerID string `json:"customer_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.ID != "" {
		parsed, err := kernel.UUIDFromString(body.ID)
		if err != nil {
			return badRequest(ctx, "invalid order id")
		}
		orderID = parsed
	}

	chefID, err := kernel.UUIDFromString(body.ChefID)
	if err != nil {
		return badRequest(ctx, "invalid chef id")
	}
	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, chefID, customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	confirmed, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(confirmed))
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - a courier races to take
// the order. Losing the race is a conflict, not a failure.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var body struct {
		CourierID string `json:"courier_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(claimed))
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var body struct {
		Target string `json:"target"`
		Actor  string `json:"actor"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Status(body.Target), body.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// AssignCourier handles POST /api/v1/orders/:id/assign - the administrator
// override after an escalation.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var body struct {
		CourierID string `json:"courier_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	assigned, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(assigned))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(cancelled))
}

// GetClaimableOrders handles GET /api/v1/orders/claimable.
func (s *Server) GetClaimableOrders(ctx echo.Context) error {
	query := queries.NewGetClaimableOrdersQuery()

	orders, err := s.getClaimableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type claimableOrder struct {
		ID        string    `json:"id"`
		ChefID    string    `json:"chef_id"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}

	response := make([]claimableOrder, len(orders))
	for i, o := range orders {
		response[i] = claimableOrder{
			ID:        o.ID.String(),
			ChefID:    o.ChefID.String(),
			Status:    o.Status.String(),
			CreatedAt: o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type activeOrder struct {
		ID         string    `json:"id"`
		ChefID     string    `json:"chef_id"`
		CustomerID string    `json:"customer_id"`
		CourierID  *string   `json:"courier_id,omitempty"`
		Status     string    `json:"status"`
		CreatedAt  time.Time `json:"created_at"`
	}

	response := make([]activeOrder, len(orders))
	for i, o := range orders {
		var courierID *string
		if o.CourierID != nil {
			s := o.CourierID.String()
			courierID = &s
		}
		response[i] = activeOrder{
			ID:         o.ID.String(),
			ChefID:     o.ChefID.String(),
			CustomerID: o.CustomerID.String(),
			CourierID:  courierID,
			Status:     o.Status.String(),
			CreatedAt:  o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PublishChefStatus handles POST /api/v1/events/chef-status - the catalog
// collaborator announces a kitchen going online or offline.
func (s *Server) PublishChefStatus(ctx echo.Context) error {
	var body struct {
		ChefID string `json:"chef_id"`
		Data   any    `json:"data"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if body.ChefID == "" {
		return badRequest(ctx, "chef_id is required")
	}

	s.entityNotifier.NotifyChefStatus(ctx.Request().Context(), body.ChefID, body.Data)
	return ctx.NoContent(http.StatusAccepted)
}

// PublishProductAvailability handles POST /api/v1/events/product-availability.
func (s *Server) PublishProductAvailability(ctx echo.Context) error {
	var body struct {
		ChefID string `json:"chef_id"`
		Data   any    `json:"data"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if body.ChefID == "" {
		return badRequest(ctx, "chef_id is required")
	}

	s.entityNotifier.NotifyProductAvailability(ctx.Request().Context(), body.ChefID, body.Data)
	return ctx.NoContent(http.StatusAccepted)
}

// PublishWalletUpdate handles POST /api/v1/events/wallet - the payments
// collaborator announces a balance change.
func (s *Server) PublishWalletUpdate(ctx echo.Context) error {
	var body struct {
		UserID string `json:"user_id"`
		Data   any    `json:"data"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if body.UserID == "" {
		return badRequest(ctx, "user_id is required")
	}

	s.entityNotifier.NotifyWalletUpdate(ctx.Request().Context(), body.UserID, body.Data)
	return ctx.NoContent(http.StatusAccepted)
}
