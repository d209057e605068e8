package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/platebooks/backend/internal/application/finance"
)

// ReconciliationHandler handles bank reconciliation API endpoints.
type ReconciliationHandler struct {
	BaseHandler
	service *financeapp.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(service *financeapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// RegisterRoutes registers reconciliation routes on the given group.
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transactions/:id/match-income", h.MatchIncome)
	rg.POST("/transactions/:id/match-expense", h.MatchExpense)
	rg.GET("/reconciliation", h.Reconcile)
}

type matchIncomeRequest struct {
	IncomeID uuid.UUID `json:"income_id" binding:"required"`
}

type matchExpenseRequest struct {
	ExpenseID uuid.UUID `json:"expense_id" binding:"required"`
}

// MatchIncome links a statement line to a book income record.
func (h *ReconciliationHandler) MatchIncome(c *gin.Context) {
	txnID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req matchIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "income_id is required")
		return
	}

	txn, err := h.service.MatchTransactionToIncome(c.Request.Context(), txnID, req.IncomeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, txn)
}

// MatchExpense links a statement line to a book expense record.
func (h *ReconciliationHandler) MatchExpense(c *gin.Context) {
	txnID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req matchExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "expense_id is required")
		return
	}

	txn, err := h.service.MatchTransactionToExpense(c.Request.Context(), txnID, req.ExpenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, txn)
}

// Reconcile compares book balances against statement activity for one
// or all account banks.
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	bankType, ok := parseBankTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid bank_type")
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), bankType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
