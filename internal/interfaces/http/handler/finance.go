package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/platebooks/backend/internal/application/finance"
	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/interfaces/http/dto"
	"github.com/platebooks/backend/internal/interfaces/http/middleware"
)

// FinanceHandler handles the income/expense ledger and bank account
// API endpoints.
type FinanceHandler struct {
	BaseHandler
	ledger  *financeapp.LedgerService
	accrual *financeapp.AccrualService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(ledger *financeapp.LedgerService, accrual *financeapp.AccrualService) *FinanceHandler {
	return &FinanceHandler{ledger: ledger, accrual: accrual}
}

// RegisterRoutes registers ledger routes on the given group.
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.RecordIncome)
		incomes.GET("", h.ListIncomes)
		incomes.GET("/:id", h.GetIncome)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.RecordExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateBankAccount)
		accounts.GET("", h.ListBankAccounts)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.RecordBankTransaction)
		transactions.GET("", h.ListBankTransactions)
	}
}

// RecordIncome books a received payment into the ledger.
func (h *FinanceHandler) RecordIncome(c *gin.Context) {
	var req financeapp.RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	income, err := h.accrual.RecordIncome(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, income)
}

// GetIncome returns a single income record.
func (h *FinanceHandler) GetIncome(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	income, err := h.ledger.GetIncome(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, income)
}

// ListIncomes returns a paginated, filtered income listing.
func (h *FinanceHandler) ListIncomes(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := finance.IncomeFilter{Filter: toSharedFilter(listReq)}

	bankType, ok := parseBankTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid bank_type")
		return
	}
	filter.BankType = bankType

	customerID, ok := parseUUIDQuery(c, "customer_id")
	if !ok {
		h.BadRequest(c, "Invalid customer_id format")
		return
	}
	filter.CustomerID = customerID

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

	filter.Unallocated = c.Query("unallocated") == "true"

	page, err := h.ledger.ListIncomes(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RecordExpense books a cost into the ledger.
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req financeapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expense, err := h.accrual.RecordExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetExpense returns a single expense record.
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.ledger.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// ListExpenses returns a paginated, filtered expense listing.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := finance.ExpenseFilter{Filter: toSharedFilter(listReq)}

	bankType, ok := parseBankTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid bank_type")
		return
	}
	filter.BankType = bankType

	if raw := c.Query("category"); raw != "" {
		category := finance.ExpenseCategory(raw)
		if !category.IsValid() {
			h.BadRequest(c, "Invalid expense category")
			return
		}
		filter.Category = &category
	}

	supplierID, ok := parseUUIDQuery(c, "supplier_id")
	if !ok {
		h.BadRequest(c, "Invalid supplier_id format")
		return
	}
	filter.SupplierID = supplierID

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

	page, err := h.ledger.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateBankAccount opens a book account for one of the tracked banks.
func (h *FinanceHandler) CreateBankAccount(c *gin.Context) {
	var req financeapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	account, err := h.ledger.CreateBankAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, account)
}

// ListBankAccounts returns all book accounts.
func (h *FinanceHandler) ListBankAccounts(c *gin.Context) {
	accounts, err := h.ledger.ListBankAccounts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, accounts)
}

// RecordBankTransaction books an imported statement line.
func (h *FinanceHandler) RecordBankTransaction(c *gin.Context) {
	var req financeapp.RecordBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	txn, err := h.ledger.RecordBankTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, txn)
}

// ListBankTransactions returns a paginated, filtered statement listing.
func (h *FinanceHandler) ListBankTransactions(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := finance.BankTransactionFilter{Filter: toSharedFilter(listReq)}

	bankType, ok := parseBankTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid bank_type")
		return
	}
	filter.BankType = bankType

	if raw := c.Query("direction"); raw != "" {
		direction := finance.TransactionDirection(raw)
		if !direction.IsValid() {
			h.BadRequest(c, "Invalid direction, expected CREDIT or DEBIT")
			return
		}
		filter.Direction = &direction
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

	filter.Unmatched = c.Query("unmatched") == "true"

	page, err := h.ledger.ListBankTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
