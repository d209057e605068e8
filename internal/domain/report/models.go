package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/finance"
)

// Reports are derived read models. Every figure on them is reproducible by
// re-summing the raw income, expense, order, and transaction records; none of
// them carry independently mutable state.

// BalanceCheck proves the accounting identity on a balance sheet. IsBalanced
// holds exactly when the difference is zero, by exact decimal comparison.
type BalanceCheck struct {
	Assets               decimal.Decimal `json:"assets"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilities_and_equity"`
	Difference           decimal.Decimal `json:"difference"`
	IsBalanced           bool            `json:"is_balanced"`
}

// NewBalanceCheck computes the identity check from the two sides
func NewBalanceCheck(assets, liabilitiesAndEquity decimal.Decimal) BalanceCheck {
	diff := assets.Sub(liabilitiesAndEquity)
	return BalanceCheck{
		Assets:               assets,
		LiabilitiesAndEquity: liabilitiesAndEquity,
		Difference:           diff,
		IsBalanced:           diff.IsZero(),
	}
}

// BalanceSheet is the position statement as of a date
type BalanceSheet struct {
	AsOfDate   time.Time  `json:"as_of_date"`
	PeriodType PeriodType `json:"period_type"`

	CashAndBank        decimal.Decimal `json:"cash_and_bank"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	TotalAssets        decimal.Decimal `json:"total_assets"`

	AccountsPayable  decimal.Decimal `json:"accounts_payable"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`

	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`

	BalanceCheck BalanceCheck `json:"balance_check"`
}

// IncomeStatement is the profit and loss statement for a period
type IncomeStatement struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	PeriodType PeriodType `json:"period_type"`

	OperatingRevenue decimal.Decimal                      `json:"operating_revenue"`
	RevenueByBank    map[finance.BankType]decimal.Decimal `json:"revenue_by_bank"`

	CostOfGoodsSold decimal.Decimal                             `json:"cost_of_goods_sold"`
	COGSByCategory  map[finance.ExpenseCategory]decimal.Decimal `json:"cogs_by_category"`
	GrossProfit     decimal.Decimal                             `json:"gross_profit"`
	GrossMargin     decimal.Decimal                             `json:"gross_margin"`

	OperatingExpenses decimal.Decimal                             `json:"operating_expenses"`
	OpexByCategory    map[finance.ExpenseCategory]decimal.Decimal `json:"opex_by_category"`

	NetProfit decimal.Decimal `json:"net_profit"`
	NetMargin decimal.Decimal `json:"net_margin"`
}

// AccountCashFlow is the cash movement on one account for a period. The
// ending balance always equals beginning balance plus net flow.
type AccountCashFlow struct {
	BankType         finance.BankType `json:"bank_type"`
	BeginningBalance decimal.Decimal  `json:"beginning_balance"`
	Inflow           decimal.Decimal  `json:"inflow"`
	Outflow          decimal.Decimal  `json:"outflow"`
	NetCashFlow      decimal.Decimal  `json:"net_cash_flow"`
	EndingBalance    decimal.Decimal  `json:"ending_balance"`
}

// CashFlowStatement is derived from bank statement lines, not book records
type CashFlowStatement struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	PeriodType PeriodType `json:"period_type"`

	Accounts     []AccountCashFlow `json:"accounts"`
	TotalInflow  decimal.Decimal   `json:"total_inflow"`
	TotalOutflow decimal.Decimal   `json:"total_outflow"`
	NetCashFlow  decimal.Decimal   `json:"net_cash_flow"`
}

// ReceivableItem is one order with money still owed
type ReceivableItem struct {
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	AgeDays      int             `json:"age_days"`
}

// ReceivableReport lists what customers still owe, optionally aged
type ReceivableReport struct {
	AsOfDate        time.Time        `json:"as_of_date"`
	TotalReceivable decimal.Decimal  `json:"total_receivable"`
	Items           []ReceivableItem `json:"items"`
	Aging           []AgingBucket    `json:"aging,omitempty"`
}

// SupplierStatement sums one supplier's business for the payable report
type SupplierStatement struct {
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	TotalBusiness decimal.Decimal `json:"total_business"`
	Paid          decimal.Decimal `json:"paid"`
	Payable       decimal.Decimal `json:"payable"`
}

// PayableItem is one expense not yet fully paid
type PayableItem struct {
	ExpenseID   uuid.UUID                `json:"expense_id"`
	Category    finance.ExpenseCategory  `json:"category"`
	SupplierID  *uuid.UUID               `json:"supplier_id,omitempty"`
	Description string                   `json:"description"`
	Outstanding decimal.Decimal          `json:"outstanding"`
	AgeDays     int                      `json:"age_days"`
}

// PayableReport lists what the shop still owes
type PayableReport struct {
	AsOfDate     time.Time           `json:"as_of_date"`
	TotalPayable decimal.Decimal     `json:"total_payable"`
	Items        []PayableItem       `json:"items"`
	Aging        []AgingBucket       `json:"aging,omitempty"`
	Suppliers    []SupplierStatement `json:"suppliers,omitempty"`
}

// ReconciliationStatus is either balanced or needs review, never hand-set
type ReconciliationStatus string

const (
	StatusBalanced    ReconciliationStatus = "BALANCED"
	StatusNeedsReview ReconciliationStatus = "NEEDS_REVIEW"
)

// ReconciliationStatusOf derives the status purely from the difference and
// the unmatched count
func ReconciliationStatusOf(difference decimal.Decimal, unmatchedCount int64) ReconciliationStatus {
	if difference.IsZero() && unmatchedCount == 0 {
		return StatusBalanced
	}
	return StatusNeedsReview
}

// AccountReconciliation compares one account's book balance against the
// balance derived from its statement lines
type AccountReconciliation struct {
	BankType          finance.BankType     `json:"bank_type"`
	AccountName       string               `json:"account_name"`
	BookBalance       decimal.Decimal      `json:"book_balance"`
	DerivedBalance    decimal.Decimal      `json:"derived_balance"`
	Difference        decimal.Decimal      `json:"difference"`
	TotalTransactions int64                `json:"total_transactions"`
	MatchedCount      int64                `json:"matched_count"`
	UnmatchedCount    int64                `json:"unmatched_count"`
	MatchRate         decimal.Decimal      `json:"match_rate"`
	Status            ReconciliationStatus `json:"status"`
}

// BankReconciliationReport covers one or all accounts
type BankReconciliationReport struct {
	AsOfDate         time.Time               `json:"as_of_date"`
	Accounts         []AccountReconciliation `json:"accounts"`
	TotalBookBalance decimal.Decimal         `json:"total_book_balance"`
	Status           ReconciliationStatus    `json:"status"`
}

// AdvanceSummary counts and totals one side of the prepayment analysis
type AdvanceSummary struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PrepaymentAnalysis nets advance receipts against advance payments
type PrepaymentAnalysis struct {
	AsOfDate        time.Time       `json:"as_of_date"`
	AdvanceReceipts AdvanceSummary  `json:"advance_receipts"`
	AdvancePayments AdvanceSummary  `json:"advance_payments"`
	NetAdvance      decimal.Decimal `json:"net_advance"`
}

// PeriodTotals pairs a sum with a record count
type PeriodTotals struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// AccrualPeriodSummary totals income and expense by occurrence date
type AccrualPeriodSummary struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Income       PeriodTotals    `json:"income"`
	Expense      PeriodTotals    `json:"expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

// CustomerRanking is one customer's contribution for a period
type CustomerRanking struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	OrderCount   int64           `json:"order_count"`
	Share        decimal.Decimal `json:"share"`
}

// CustomerRankingReport orders customers by revenue for a period
type CustomerRankingReport struct {
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	Rankings     []CustomerRanking `json:"rankings"`
}

// BusinessAnalysisReport is the comprehensive period overview. Its total
// revenue always agrees with the customer ranking report for the same range.
type BusinessAnalysisReport struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`

	OrderCount     int64           `json:"order_count"`
	CompletedCount int64           `json:"completed_count"`
	TopCustomers   []CustomerRanking `json:"top_customers"`
}
