package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/shared"
)

// BankAccount is the running book balance for one of the two reconcilable
// bank accounts. The balance is allowed to go negative: the book is a record
// of what happened, not a gatekeeper, and a temporary overdraft in the books
// usually means an entry is missing rather than that money is.
type BankAccount struct {
	shared.BaseAggregateRoot
	BankType    BankType        `gorm:"type:varchar(16);not null;uniqueIndex" json:"bank_type"`
	AccountName string          `gorm:"type:varchar(128);not null" json:"account_name"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	// OpeningBalance is what the account held before any recorded
	// transaction. Reconciliation derives the expected balance as
	// opening balance plus the signed sum of statement lines.
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"opening_balance"`
}

// NewBankAccount creates an account with an opening balance. Only the two
// real bank accounts are tracked; WeChat receipts hit the books as income
// but have no reconcilable statement.
func NewBankAccount(bankType BankType, accountName string, openingBalance decimal.Decimal) (*BankAccount, error) {
	if !bankType.IsAccountType() {
		return nil, shared.NewDomainError("INVALID_BANK_TYPE",
			fmt.Sprintf("bank type %s does not back a reconcilable account", bankType))
	}
	if accountName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "account name is required")
	}
	return &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BankType:          bankType,
		AccountName:       accountName,
		Balance:           openingBalance,
		OpeningBalance:    openingBalance,
	}, nil
}

// Credit adds money to the account
func (a *BankAccount) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "credit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now()
	return nil
}

// Debit removes money from the account. Overdrafts are permitted.
func (a *BankAccount) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "debit amount must be positive")
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now()
	return nil
}
