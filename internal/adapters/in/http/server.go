// Package http exposes the workflow over a REST API. It coordinates between
// HTTP handlers and application use cases, translating domain errors into
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"falcon/internal/core/application/usecases/commands"
	"falcon/internal/core/application/usecases/queries"
	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the order workflow API.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	assignAppraiserHandler   commands.AssignAppraiserCommandHandler
	requestTransitionHandler commands.RequestTransitionCommandHandler

	// Query handlers
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	getOrderActivityHandler queries.GetOrderActivityQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignAppraiserHandler commands.AssignAppraiserCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderActivityHandler queries.GetOrderActivityQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		assignAppraiserHandler:   assignAppraiserHandler,
		requestTransitionHandler: requestTransitionHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
		getOrderActivityHandler:  getOrderActivityHandler,
	}
}

// RegisterRoutes attaches the API routes to an Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetActiveOrders)
	v1.POST("/orders/:id/appraiser", s.AssignAppraiser)
	v1.POST("/orders/:id/transitions", s.RequestTransition)
	v1.GET("/orders/:id/activity", s.GetOrderActivity)
}

// ErrorResponse is the JSON error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body for POST /api/v1/orders.
type CreateOrderRequest struct {
	PropertyAddress string  `json:"property_address"`
	ClientID        *string `json:"client_id,omitempty"`
	CreatedBy       string  `json:"created_by"`
}

// CreateOrderResponse echoes back the generated order identifier.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AssignAppraiserRequest is the body for POST /api/v1/orders/:id/appraiser.
type AssignAppraiserRequest struct {
	AppraiserID string `json:"appraiser_id"`
	AssignedBy  string `json:"assigned_by"`
}

// TransitionRequest is the body for POST /api/v1/orders/:id/transitions.
// FromStatus is optional; when present the transition fails with 409 if the
// order moved since the caller last read it.
type TransitionRequest struct {
	FromStatus *string `json:"from_status,omitempty"`
	ToStatus   string  `json:"to_status"`
	ActorID    string  `json:"actor_id"`
	ActorRole  string  `json:"actor_role"`
	Note       string  `json:"note,omitempty"`
}

// TransitionResponse describes the post-transition order state.
type TransitionResponse struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Override bool   `json:"override"`
}

// OrderSummary is one row of GET /api/v1/orders.
type OrderSummary struct {
	ID              string    `json:"id"`
	PropertyAddress string    `json:"property_address"`
	Status          string    `json:"status"`
	AppraiserID     *string   `json:"appraiser_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ActivityEntryResponse is one row of GET /api/v1/orders/:id/activity.
type ActivityEntryResponse struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	ActorRole      string    `json:"actor_role"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new appraisal order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid created_by: "+err.Error())
	}

	var clientID *kernel.UUID
	if req.ClientID != nil {
		id, clientErr := kernel.UUIDFromString(*req.ClientID)
		if clientErr != nil {
			return badRequest(ctx, "Invalid client_id: "+clientErr.Error())
		}
		clientID = &id
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.PropertyAddress, clientID, createdBy)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AssignAppraiser handles POST /api/v1/orders/:id/appraiser.
func (s *Server) AssignAppraiser(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignAppraiserRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	appraiserID, err := kernel.UUIDFromString(req.AppraiserID)
	if err != nil {
		return badRequest(ctx, "Invalid appraiser_id: "+err.Error())
	}

	assignedBy, err := kernel.UUIDFromString(req.AssignedBy)
	if err != nil {
		return badRequest(ctx, "Invalid assigned_by: "+err.Error())
	}

	cmd, err := commands.NewAssignAppraiserCommand(orderID, appraiserID, assignedBy)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignAppraiserHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr, "Failed to assign appraiser")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestTransition handles POST /api/v1/orders/:id/transitions.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	toStatus, err := order.StatusFromString(req.ToStatus)
	if err != nil {
		return badRequest(ctx, "Unknown to_status: "+req.ToStatus)
	}

	fromStatus := order.StatusUnknown
	if req.FromStatus != nil {
		fromStatus, err = order.StatusFromString(*req.FromStatus)
		if err != nil {
			return badRequest(ctx, "Unknown from_status: "+*req.FromStatus)
		}
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	actorRole, err := actor.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Unknown actor_role: "+req.ActorRole)
	}

	cmd, err := commands.NewRequestTransitionCommand(
		orderID, fromStatus, toStatus, actorID, actorRole, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	result, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to apply transition")
	}

	override := result.Entry != nil && result.Entry.Action() == activity.ActionManualOverride
	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID:  result.Order.ID().String(),
		Status:   result.Order.Status().String(),
		Override: override,
	})
}

// GetActiveOrders handles GET /api/v1/orders - retrieves all non-terminal orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		var appraiserID *string
		if o.AppraiserID != nil {
			id := o.AppraiserID.String()
			appraiserID = &id
		}

		response[i] = OrderSummary{
			ID:              o.ID.String(),
			PropertyAddress: o.PropertyAddress,
			Status:          o.Status.String(),
			AppraiserID:     appraiserID,
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderActivity handles GET /api/v1/orders/:id/activity - retrieves the
// audit trail, newest first.
func (s *Server) GetOrderActivity(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderActivityQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	entries, err := s.getOrderActivityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve activity")
	}

	response := make([]ActivityEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = ActivityEntryResponse{
			ID:             entry.ID.String(),
			ActorID:        entry.ActorID.String(),
			ActorRole:      entry.ActorRole.String(),
			Action:         entry.Action,
			PreviousStatus: entry.PreviousStatus.String(),
			NewStatus:      entry.NewStatus.String(),
			Message:        entry.Message,
			CreatedAt:      entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors onto HTTP status codes: unknown status 400,
// forbidden transition 403, missing object 404, concurrent modification 409,
// unmet state precondition 422, anything else 500.
func writeError(ctx echo.Context, err error, fallback string) error {
	var code int
	switch {
	case errors.Is(err, order.ErrUnknownStatus):
		code = http.StatusBadRequest
	case errors.Is(err, order.ErrForbiddenTransition):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionConflict):
		code = http.StatusConflict
	case errors.Is(err, order.ErrInvalidState):
		code = http.StatusUnprocessableEntity
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
