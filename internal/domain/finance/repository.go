package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/shared"
)

// IncomeFilter narrows income queries
type IncomeFilter struct {
	shared.Filter
	BankType   *BankType
	CustomerID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	// Unallocated keeps only records with allocation total below the amount
	Unallocated bool
}

// IncomeRepository persists income records
type IncomeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Income, error)
	FindAll(ctx context.Context, filter IncomeFilter) ([]*Income, error)
	Save(ctx context.Context, income *Income) error
	SaveWithLock(ctx context.Context, income *Income) error
	Count(ctx context.Context, filter IncomeFilter) (int64, error)
	// SumByDateRange totals income whose occurrence date falls within
	// [from, to], optionally for one bank.
	SumByDateRange(ctx context.Context, from, to time.Time, bankType *BankType) (decimal.Decimal, error)
	// SumByBank breaks the range total down per bank type
	SumByBank(ctx context.Context, from, to time.Time) (map[BankType]decimal.Decimal, error)
	// SumByCustomer breaks the range total down per linked customer
	SumByCustomer(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
	// FindAdvances returns advance receipts dated up to asOf
	FindAdvances(ctx context.Context, asOf time.Time) ([]*Income, error)
}

// ExpenseFilter narrows expense queries
type ExpenseFilter struct {
	shared.Filter
	BankType   *BankType
	Category   *ExpenseCategory
	SupplierID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	// Outstanding keeps only records not yet fully paid
	Outstanding bool
}

// ExpenseRepository persists expense records
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]*Expense, error)
	FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Expense, error)
	Save(ctx context.Context, expense *Expense) error
	SaveWithLock(ctx context.Context, expense *Expense) error
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	SumByDateRange(ctx context.Context, from, to time.Time, bankType *BankType) (decimal.Decimal, error)
	// SumByCategory totals expenses per category for the date range
	SumByCategory(ctx context.Context, from, to time.Time) (map[ExpenseCategory]decimal.Decimal, error)
	// SumOutstanding totals unpaid balances across all expenses as of asOf
	SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error)
	FindAdvances(ctx context.Context, asOf time.Time) ([]*Expense, error)
}

// BankAccountRepository persists the two book accounts
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindByBankType(ctx context.Context, bankType BankType) (*BankAccount, error)
	FindAll(ctx context.Context) ([]*BankAccount, error)
	Save(ctx context.Context, account *BankAccount) error
	SaveWithLock(ctx context.Context, account *BankAccount) error
}

// BankTransactionFilter narrows statement line queries
type BankTransactionFilter struct {
	shared.Filter
	BankType  *BankType
	Direction *TransactionDirection
	FromDate  *time.Time
	ToDate    *time.Time
	// Unmatched keeps only lines not yet matched to a book record
	Unmatched bool
}

// BankTransactionRepository persists imported statement lines
type BankTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankTransaction, error)
	FindAll(ctx context.Context, filter BankTransactionFilter) ([]*BankTransaction, error)
	FindUnmatched(ctx context.Context, bankType BankType) ([]*BankTransaction, error)
	Save(ctx context.Context, txn *BankTransaction) error
	SaveWithLock(ctx context.Context, txn *BankTransaction) error
	Count(ctx context.Context, filter BankTransactionFilter) (int64, error)
	// SumSigned nets credits against debits for the account over [from, to]
	SumSigned(ctx context.Context, bankType BankType, from, to time.Time) (decimal.Decimal, error)
	// SumByDirection totals lines of one direction over [from, to]
	SumByDirection(ctx context.Context, bankType BankType, direction TransactionDirection, from, to time.Time) (decimal.Decimal, error)
	CountUnmatched(ctx context.Context, bankType BankType) (int64, error)
}
