package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/platebooks/backend/internal/application/order"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/interfaces/http/dto"
	"github.com/platebooks/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles processing order API endpoints.
type OrderHandler struct {
	BaseHandler
	service *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *orderapp.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers processing order routes on the given group.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/outstanding", h.ListOutstanding)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/start", h.Start)
		orders.POST("/:id/complete", h.Complete)
		orders.POST("/:id/deliver", h.Deliver)
	}
}

// Create records a new processing order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID returns a single processing order.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber returns a processing order by its order number.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated, filtered order listing.
func (h *OrderHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := order.Filter{Filter: toSharedFilter(listReq)}

	customerID, ok := parseUUIDQuery(c, "customer_id")
	if !ok {
		h.BadRequest(c, "Invalid customer_id format")
		return
	}
	filter.CustomerID = customerID

	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid order status")
			return
		}
		filter.Status = &status
	}

	fromDate, ok := parseDateQuery(c, "from_date")
	if !ok {
		h.BadRequest(c, "Invalid from_date, expected YYYY-MM-DD")
		return
	}
	filter.FromDate = fromDate

	toDate, ok := parseDateQuery(c, "to_date")
	if !ok {
		h.BadRequest(c, "Invalid to_date, expected YYYY-MM-DD")
		return
	}
	filter.ToDate = toDate

	filter.Outstanding = c.Query("outstanding") == "true"

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListOutstanding returns the unpaid orders of a customer, oldest first.
func (h *OrderHandler) ListOutstanding(c *gin.Context) {
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		h.BadRequest(c, "customer_id query parameter is required")
		return
	}

	orders, err := h.service.ListOutstanding(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// Start moves an order from pending to in progress.
func (h *OrderHandler) Start(c *gin.Context) {
	h.transition(c, h.service.StartProcessing)
}

// Complete marks the processing work as finished.
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// Deliver marks the order as delivered to the customer.
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.service.Deliver)
}

func (h *OrderHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
