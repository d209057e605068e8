package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/platebooks/backend/internal/application/finance"
	reportapp "github.com/platebooks/backend/internal/application/report"
	"github.com/platebooks/backend/internal/domain/report"
)

// ReportHandler handles financial report API endpoints.
type ReportHandler struct {
	BaseHandler
	reports *reportapp.Service
	accrual *financeapp.AccrualService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *reportapp.Service, accrual *financeapp.AccrualService) *ReportHandler {
	return &ReportHandler{reports: reports, accrual: accrual}
}

// RegisterRoutes registers report routes on the given group.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/income-statement", h.IncomeStatement)
		reports.GET("/cash-flow", h.CashFlow)
		reports.GET("/receivables", h.Receivables)
		reports.GET("/payables", h.Payables)
		reports.GET("/bank-reconciliation", h.BankReconciliation)
		reports.GET("/customer-ranking", h.CustomerRanking)
		reports.GET("/business-analysis", h.BusinessAnalysis)
		reports.GET("/prepayments", h.Prepayments)
		reports.GET("/period-summary", h.PeriodSummary)
	}
}

// BalanceSheet returns the balance sheet as of a cut-off date.
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	asOf, ok := parseDateQueryDefault(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "Invalid as_of, expected YYYY-MM-DD")
		return
	}

	periodType, ok := parsePeriodTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid period_type")
		return
	}

	sheet, err := h.reports.GenerateBalanceSheet(c.Request.Context(), asOf, periodType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, sheet)
}

// IncomeStatement returns the profit and loss statement. The period is
// selected with year plus optional month or quarter, or an explicit
// start_date/end_date range.
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	if yearRaw := c.Query("year"); yearRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}

		if monthRaw := c.Query("month"); monthRaw != "" {
			month, err := strconv.Atoi(monthRaw)
			if err != nil || month < 1 || month > 12 {
				h.BadRequest(c, "Invalid month, expected 1-12")
				return
			}
			statement, err := h.reports.MonthlyIncomeStatement(c.Request.Context(), year, time.Month(month))
			if err != nil {
				h.HandleDomainError(c, err)
				return
			}
			h.Success(c, statement)
			return
		}

		if quarterRaw := c.Query("quarter"); quarterRaw != "" {
			quarter, err := strconv.Atoi(quarterRaw)
			if err != nil || quarter < 1 || quarter > 4 {
				h.BadRequest(c, "Invalid quarter, expected 1-4")
				return
			}
			statement, err := h.reports.QuarterlyIncomeStatement(c.Request.Context(), year, quarter)
			if err != nil {
				h.HandleDomainError(c, err)
				return
			}
			h.Success(c, statement)
			return
		}

		statement, err := h.reports.AnnualIncomeStatement(c.Request.Context(), year)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, statement)
		return
	}

	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	statement, err := h.reports.GenerateIncomeStatement(c.Request.Context(), start, end, report.PeriodCustom)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, statement)
}

// CashFlow returns the cash flow statement for a date range.
func (h *ReportHandler) CashFlow(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	periodType, ok := parsePeriodTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid period_type")
		return
	}

	statement, err := h.reports.GenerateCashFlowStatement(c.Request.Context(), start, end, periodType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, statement)
}

// Receivables returns outstanding customer balances with aging buckets.
func (h *ReportHandler) Receivables(c *gin.Context) {
	asOf, ok := parseDateQueryDefault(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "Invalid as_of, expected YYYY-MM-DD")
		return
	}

	result, err := h.reports.GenerateReceivableReport(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Payables returns outstanding supplier balances with aging buckets.
func (h *ReportHandler) Payables(c *gin.Context) {
	asOf, ok := parseDateQueryDefault(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "Invalid as_of, expected YYYY-MM-DD")
		return
	}

	result, err := h.reports.GeneratePayableReport(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// BankReconciliation returns the book-versus-statement comparison.
func (h *ReportHandler) BankReconciliation(c *gin.Context) {
	bankType, ok := parseBankTypeQuery(c)
	if !ok {
		h.BadRequest(c, "Invalid bank_type")
		return
	}

	result, err := h.reports.GenerateBankReconciliationReport(c.Request.Context(), bankType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// CustomerRanking returns customers ranked by revenue over a range.
func (h *ReportHandler) CustomerRanking(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.reports.GetCustomerRanking(c.Request.Context(), start, end, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// BusinessAnalysis returns revenue, cost, and margin breakdowns.
func (h *ReportHandler) BusinessAnalysis(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	result, err := h.reports.GetBusinessAnalysis(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Prepayments returns the advance receipt and prepayment analysis.
func (h *ReportHandler) Prepayments(c *gin.Context) {
	asOf, ok := parseDateQueryDefault(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "Invalid as_of, expected YYYY-MM-DD")
		return
	}

	result, err := h.accrual.GetPrepaymentAnalysis(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PeriodSummary returns accrual totals for a date range.
func (h *ReportHandler) PeriodSummary(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	result, err := h.accrual.GetPeriodSummary(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// parseRange reads the required start_date and end_date query
// parameters, writing a 400 response when they are missing or invalid.
func (h *ReportHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, ok := parseDateQuery(c, "start_date")
	if !ok || start == nil {
		h.BadRequest(c, "start_date is required, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok || end == nil {
		h.BadRequest(c, "end_date is required, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(*start) {
		h.BadRequest(c, "end_date must not be before start_date")
		return time.Time{}, time.Time{}, false
	}
	return *start, *end, true
}

func parsePeriodTypeQuery(c *gin.Context) (report.PeriodType, bool) {
	raw := c.Query("period_type")
	if raw == "" {
		return report.PeriodCustom, true
	}
	periodType := report.PeriodType(raw)
	if !periodType.IsValid() {
		return "", false
	}
	return periodType, true
}
