package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/finance"
)

// RecordIncomeRequest represents a request to record income. When
// PaymentDate is set and precedes IncomeDate the record becomes an advance
// receipt.
type RecordIncomeRequest struct {
	IncomeDate  time.Time       `json:"income_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	BankType    string          `json:"bank_type" binding:"required"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	Description string          `json:"description" binding:"max=255"`
	PaymentDate *time.Time      `json:"payment_date"`
	HasInvoice  bool            `json:"has_invoice"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// RecordExpenseRequest represents a request to record an expense
type RecordExpenseRequest struct {
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	BankType    string          `json:"bank_type" binding:"required"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	Description string          `json:"description" binding:"max=255"`
	PaymentDate *time.Time      `json:"payment_date"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// CreateBankAccountRequest represents a request to open a book account
type CreateBankAccountRequest struct {
	BankType       string          `json:"bank_type" binding:"required"`
	AccountName    string          `json:"account_name" binding:"required,min=1,max=128"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// RecordBankTransactionRequest represents one imported statement line
type RecordBankTransactionRequest struct {
	BankType        string          `json:"bank_type" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	IsIncome        bool            `json:"is_income"`
	Counterparty    string          `json:"counterparty" binding:"max=128"`
	Description     string          `json:"description" binding:"max=255"`
	Notes           string          `json:"notes" binding:"max=500"`
}

// AllocationItem assigns an amount to an order
type AllocationItem struct {
	OrderID uuid.UUID       `json:"order_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// AllocateIncomeRequest splits an income across processing orders
type AllocateIncomeRequest struct {
	Allocations []AllocationItem `json:"allocations" binding:"required,min=1,dive"`
}

// ExpenseAllocationItem assigns an amount to an expense
type ExpenseAllocationItem struct {
	ExpenseID uuid.UUID       `json:"expense_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// AllocatePaymentRequest splits one outgoing payment across expenses
type AllocatePaymentRequest struct {
	PaymentDate   time.Time               `json:"payment_date" binding:"required"`
	PaymentAmount decimal.Decimal         `json:"payment_amount" binding:"required"`
	BankType      string                  `json:"bank_type" binding:"required"`
	Allocations   []ExpenseAllocationItem `json:"allocations" binding:"required,min=1,dive"`
}

// MatchExpensesRequest nets an income against expense records
type MatchExpensesRequest struct {
	Matches []ExpenseAllocationItem `json:"matches" binding:"required,min=1,dive"`
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID           uuid.UUID                 `json:"id"`
	IncomeDate   time.Time                 `json:"income_date"`
	Amount       decimal.Decimal           `json:"amount"`
	BankType     finance.BankType          `json:"bank_type"`
	CustomerID   *uuid.UUID                `json:"customer_id,omitempty"`
	CustomerName string                    `json:"customer_name"`
	Description  string                    `json:"description"`
	HasInvoice   bool                      `json:"has_invoice"`
	PaymentDate  *time.Time                `json:"payment_date,omitempty"`
	IsAdvance    bool                      `json:"is_advance"`
	LeadDays     int                       `json:"lead_days"`
	Allocations  finance.OrderAllocations  `json:"allocations"`
	Matched      finance.ExpenseMatches    `json:"matched_expenses"`
	Unallocated  decimal.Decimal           `json:"unallocated"`
	Notes        string                    `json:"notes"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// ToIncomeResponse maps an income aggregate to its response
func ToIncomeResponse(i *finance.Income) IncomeResponse {
	return IncomeResponse{
		ID:           i.ID,
		IncomeDate:   i.IncomeDate,
		Amount:       i.Amount,
		BankType:     i.BankType,
		CustomerID:   i.CustomerID,
		CustomerName: i.CustomerName,
		Description:  i.Description,
		HasInvoice:   i.HasInvoice,
		PaymentDate:  i.PaymentDate,
		IsAdvance:    i.IsAdvance,
		LeadDays:     i.LeadDays,
		Allocations:  i.Allocations,
		Matched:      i.MatchedExpenses,
		Unallocated:  i.UnallocatedAmount(),
		Notes:        i.Notes,
		CreatedAt:    i.CreatedAt,
	}
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID          uuid.UUID               `json:"id"`
	ExpenseDate time.Time               `json:"expense_date"`
	Amount      decimal.Decimal         `json:"amount"`
	Category    finance.ExpenseCategory `json:"category"`
	BankType    finance.BankType        `json:"bank_type"`
	SupplierID  *uuid.UUID              `json:"supplier_id,omitempty"`
	Description string                  `json:"description"`
	PaymentDate *time.Time              `json:"payment_date,omitempty"`
	IsAdvance   bool                    `json:"is_advance"`
	LeadDays    int                     `json:"lead_days"`
	Payments    finance.PaymentRecords  `json:"payments"`
	Paid        decimal.Decimal         `json:"paid"`
	Outstanding decimal.Decimal         `json:"outstanding"`
	Notes       string                  `json:"notes"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ToExpenseResponse maps an expense aggregate to its response
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		ExpenseDate: e.ExpenseDate,
		Amount:      e.Amount,
		Category:    e.Category,
		BankType:    e.BankType,
		SupplierID:  e.SupplierID,
		Description: e.Description,
		PaymentDate: e.PaymentDate,
		IsAdvance:   e.IsAdvance,
		LeadDays:    e.LeadDays,
		Payments:    e.Payments,
		Paid:        e.PaidAmount(),
		Outstanding: e.OutstandingAmount(),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// BankAccountResponse represents a book account in API responses
type BankAccountResponse struct {
	ID             uuid.UUID        `json:"id"`
	BankType       finance.BankType `json:"bank_type"`
	AccountName    string           `json:"account_name"`
	Balance        decimal.Decimal  `json:"balance"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
}

// ToBankAccountResponse maps a bank account aggregate to its response
func ToBankAccountResponse(a *finance.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:             a.ID,
		BankType:       a.BankType,
		AccountName:    a.AccountName,
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
	}
}

// BankTransactionResponse represents a statement line in API responses
type BankTransactionResponse struct {
	ID               uuid.UUID                    `json:"id"`
	BankType         finance.BankType             `json:"bank_type"`
	TransactionDate  time.Time                    `json:"transaction_date"`
	Amount           decimal.Decimal              `json:"amount"`
	Direction        finance.TransactionDirection `json:"direction"`
	Counterparty     string                       `json:"counterparty"`
	Description      string                       `json:"description"`
	Matched          bool                         `json:"matched"`
	MatchedIncomeID  *uuid.UUID                   `json:"matched_income_id,omitempty"`
	MatchedExpenseID *uuid.UUID                   `json:"matched_expense_id,omitempty"`
}

// ToBankTransactionResponse maps a statement line to its response
func ToBankTransactionResponse(t *finance.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:               t.ID,
		BankType:         t.BankType,
		TransactionDate:  t.TransactionDate,
		Amount:           t.Amount,
		Direction:        t.Direction,
		Counterparty:     t.Counterparty,
		Description:      t.Description,
		Matched:          t.IsMatched(),
		MatchedIncomeID:  t.MatchedIncomeID,
		MatchedExpenseID: t.MatchedExpenseID,
	}
}
