package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/platebooks/backend/internal/application/finance"
	"github.com/platebooks/backend/internal/interfaces/http/middleware"
)

// AllocationHandler handles payment allocation API endpoints: splitting
// incomes across orders, payments across expenses, and netting incomes
// against outsourcing expenses.
type AllocationHandler struct {
	BaseHandler
	service *financeapp.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(service *financeapp.AllocationService) *AllocationHandler {
	return &AllocationHandler{service: service}
}

// RegisterRoutes registers allocation routes on the given group.
func (h *AllocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/incomes/:id/allocations", h.AllocateIncome)
	rg.POST("/incomes/:id/expense-matches", h.MatchExpenses)
	rg.POST("/payments", h.AllocatePayment)
}

// AllocateIncome splits an income across one or more processing orders.
func (h *AllocationHandler) AllocateIncome(c *gin.Context) {
	incomeID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	var req financeapp.AllocateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	income, err := h.service.AllocateIncomeToOrders(c.Request.Context(), incomeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, income)
}

// AllocatePayment records one outgoing payment split across expenses.
func (h *AllocationHandler) AllocatePayment(c *gin.Context) {
	var req financeapp.AllocatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expenses, err := h.service.AllocatePaymentToExpenses(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expenses)
}

// MatchExpenses nets an income against outsourcing expense records.
func (h *AllocationHandler) MatchExpenses(c *gin.Context) {
	incomeID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	var req financeapp.MatchExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	income, err := h.service.MatchIncomeToExpenses(c.Request.Context(), incomeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, income)
}
