package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/shared"
)

// TransactionDirection tells whether a statement line moved money in or out
type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "CREDIT" // money in
	DirectionDebit  TransactionDirection = "DEBIT"  // money out
)

// IsValid checks if the direction is valid
func (d TransactionDirection) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// BankTransaction is a single line from a bank statement. Reconciliation
// matches each line against exactly one income or expense record; a line is
// matched at most once.
type BankTransaction struct {
	shared.BaseAggregateRoot
	BankType        BankType             `gorm:"type:varchar(16);not null;index" json:"bank_type"`
	TransactionDate time.Time            `gorm:"not null;index" json:"transaction_date"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"amount"`
	Direction       TransactionDirection `gorm:"type:varchar(8);not null" json:"direction"`
	Counterparty    string               `gorm:"type:varchar(128)" json:"counterparty"`
	Description     string               `gorm:"type:varchar(255)" json:"description"`
	Notes           string               `gorm:"type:text" json:"notes"`

	MatchedIncomeID  *uuid.UUID `gorm:"type:uuid;index" json:"matched_income_id,omitempty"`
	MatchedExpenseID *uuid.UUID `gorm:"type:uuid;index" json:"matched_expense_id,omitempty"`
}

// NewBankTransaction creates a statement line for one of the reconcilable
// accounts
func NewBankTransaction(bankType BankType, transactionDate time.Time, amount decimal.Decimal, direction TransactionDirection, counterparty, description string) (*BankTransaction, error) {
	if !bankType.IsAccountType() {
		return nil, shared.NewDomainError("INVALID_BANK_TYPE",
			fmt.Sprintf("bank type %s does not back a reconcilable account", bankType))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "transaction amount must be positive")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", fmt.Sprintf("unknown transaction direction: %s", direction))
	}
	return &BankTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BankType:          bankType,
		TransactionDate:   transactionDate,
		Amount:            amount,
		Direction:         direction,
		Counterparty:      counterparty,
		Description:       description,
	}, nil
}

// IsMatched reports whether the line has been matched to a book record
func (t *BankTransaction) IsMatched() bool {
	return t.MatchedIncomeID != nil || t.MatchedExpenseID != nil
}

// SignedAmount returns the amount with debits negative, for running balances
func (t *BankTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// MatchToIncome marks the line as matched to an income record. A line that
// is already matched stays untouched and the call fails.
func (t *BankTransaction) MatchToIncome(incomeID uuid.UUID) error {
	if t.IsMatched() {
		return shared.NewDomainError("ALREADY_MATCHED", "bank transaction is already matched")
	}
	if t.Direction != DirectionCredit {
		return shared.NewDomainError("DIRECTION_MISMATCH", "only credit transactions can match income")
	}
	t.MatchedIncomeID = &incomeID
	t.UpdatedAt = time.Now()
	return nil
}

// MatchToExpense marks the line as matched to an expense record
func (t *BankTransaction) MatchToExpense(expenseID uuid.UUID) error {
	if t.IsMatched() {
		return shared.NewDomainError("ALREADY_MATCHED", "bank transaction is already matched")
	}
	if t.Direction != DirectionDebit {
		return shared.NewDomainError("DIRECTION_MISMATCH", "only debit transactions can match expenses")
	}
	t.MatchedExpenseID = &expenseID
	t.UpdatedAt = time.Now()
	return nil
}

// Unmatch clears the match so the line can be re-reconciled
func (t *BankTransaction) Unmatch() {
	t.MatchedIncomeID = nil
	t.MatchedExpenseID = nil
	t.UpdatedAt = time.Now()
}
