package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/platebooks/backend/internal/application/partner"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/interfaces/http/dto"
	"github.com/platebooks/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier API endpoints.
type SupplierHandler struct {
	BaseHandler
	service *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// RegisterRoutes registers supplier routes on the given group.
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.GetByID)
		suppliers.PUT("/:id", h.Update)
	}
}

// Create registers a new supplier.
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, supplier)
}

// GetByID returns a single supplier.
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Update modifies supplier contact details.
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List returns a paginated supplier listing.
func (h *SupplierHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := partner.SupplierFilter{Filter: toSharedFilter(listReq)}
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if businessType := c.Query("business_type"); businessType != "" {
		filter.BusinessType = &businessType
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
