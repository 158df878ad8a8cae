package http

import (
	"net/http"

	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/application/usecases/queries"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler   commands.SubmitOrderCommandHandler
	amendOrderHandler    commands.AmendOrderCommandHandler
	approveOrderHandler  commands.ApproveOrderCommandHandler
	rejectOrderHandler   commands.RejectOrderCommandHandler
	assignAgentHandler   commands.AssignAgentCommandHandler
	dispatchOrderHandler commands.DispatchOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	markDeliveredHandler commands.MarkDeliveredCommandHandler
	restockHandler       commands.RestockCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getOrderEventsHandler    queries.GetOrderEventsQueryHandler
	getLowStockItemsHandler  queries.GetLowStockItemsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	amendOrderHandler commands.AmendOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	restockHandler commands.RestockCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getOrderEventsHandler queries.GetOrderEventsQueryHandler,
	getLowStockItemsHandler queries.GetLowStockItemsQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:       submitOrderHandler,
		amendOrderHandler:        amendOrderHandler,
		approveOrderHandler:      approveOrderHandler,
		rejectOrderHandler:       rejectOrderHandler,
		assignAgentHandler:       assignAgentHandler,
		dispatchOrderHandler:     dispatchOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		markDeliveredHandler:     markDeliveredHandler,
		restockHandler:           restockHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getOrderEventsHandler:    getOrderEventsHandler,
		getLowStockItemsHandler:  getLowStockItemsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.GetOrdersByStatus)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.AmendOrder)
	api.GET("/orders/:id/events", s.GetOrderEvents)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/assign-agent", s.AssignAgent)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/deliver", s.MarkDelivered)
	api.POST("/inventory/:id/restock", s.Restock)
	api.GET("/inventory/low-stock", s.GetLowStockItems)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitOrder handles POST /api/v1/orders - places a new order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, err := kernel.UUIDFromString(itemReq.ProductID)
		if err != nil {
			return respondBadRequest(ctx, "invalid product id: "+itemReq.ProductID)
		}

		item, err := order.NewItem(productID, itemReq.Name, itemReq.Quantity, itemReq.UnitPrice)
		if err != nil {
			return respondError(ctx, err)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(
		orderID,
		req.Customer,
		items,
		req.DeliveryAddress,
		req.DeliveryInstructions,
		req.PaymentMethod,
		req.PaymentStatus,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitOrderResponse{ID: orderID.String()})
}

// AmendOrder handles PATCH /api/v1/orders/:id - pre-dispatch edits.
func (s *Server) AmendOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var req AmendOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, idErr := kernel.UUIDFromString(itemReq.ProductID)
		if idErr != nil {
			return respondBadRequest(ctx, "invalid product id: "+itemReq.ProductID)
		}

		item, itemErr := order.NewItem(productID, itemReq.Name, itemReq.Quantity, itemReq.UnitPrice)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewAmendOrderCommand(orderID, items, req.DeliveryAddress, req.DeliveryInstructions)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.amendOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveOrder handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewApproveOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var req RejectOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignAgent handles POST /api/v1/orders/:id/assign-agent.
func (s *Server) AssignAgent(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var req AssignAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, req.AgentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/:id/deliver.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                   result.ID.String(),
		Customer:             result.Customer,
		Status:               result.Status,
		Total:                result.Total,
		DeliveryAddress:      result.DeliveryAddress,
		DeliveryInstructions: result.DeliveryInstructions,
		AssignedAgent:        result.AssignedAgent,
		RejectionReason:      result.RejectionReason,
		PaymentMethod:        result.PaymentMethod,
		PaymentStatus:        result.PaymentStatus,
		CreatedAt:            result.CreatedAt,
		Items:                items,
	})
}

// GetOrdersByStatus handles GET /api/v1/orders?status=Processing.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return respondBadRequest(ctx, "unknown status: "+ctx.QueryParam("status"))
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(results))
	for i, result := range results {
		response[i] = OrderSummaryResponse{
			ID:            result.ID.String(),
			Customer:      result.Customer,
			Status:        result.Status,
			Total:         result.Total,
			AssignedAgent: result.AssignedAgent,
			CreatedAt:     result.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderEvents handles GET /api/v1/orders/:id/events.
func (s *Server) GetOrderEvents(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := s.getOrderEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderEventResponse, len(results))
	for i, result := range results {
		response[i] = OrderEventResponse{
			Type:      result.Type,
			Payload:   result.Payload,
			Timestamp: result.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Restock handles POST /api/v1/inventory/:id/restock.
func (s *Server) Restock(ctx echo.Context) error {
	productID, err := parseID(ctx)
	if err != nil {
		return respondBadRequest(ctx, "invalid product id")
	}

	var req RestockRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRestockCommand(productID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.restockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLowStockItems handles GET /api/v1/inventory/low-stock.
func (s *Server) GetLowStockItems(ctx echo.Context) error {
	results, err := s.getLowStockItemsHandler.Handle(ctx.Request().Context(), queries.NewGetLowStockItemsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]LowStockItemResponse, len(results))
	for i, result := range results {
		response[i] = LowStockItemResponse{
			ProductID:        result.ProductID.String(),
			Name:             result.Name,
			CurrentStock:     result.CurrentStock,
			ReorderThreshold: result.ReorderThreshold,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}
