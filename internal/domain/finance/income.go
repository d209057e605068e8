package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/shared"
)

// Income is a money-in record on one of the business bank accounts. It is an
// aggregate root: order allocations and expense matches only change through
// its methods so the invariants (never allocate past the received amount,
// merge repeat allocations to the same order) hold everywhere.
type Income struct {
	shared.BaseAggregateRoot
	IncomeDate   time.Time       `gorm:"not null;index" json:"income_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	BankType     BankType        `gorm:"type:varchar(16);not null;index" json:"bank_type"`
	CustomerID   *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string          `gorm:"type:varchar(128)" json:"customer_name"`
	Description  string          `gorm:"type:varchar(255)" json:"description"`
	HasInvoice   bool            `gorm:"not null;default:false" json:"has_invoice"`

	// PaymentDate is the actual cash movement date, set only for advance
	// receipts. IncomeDate always stays the occurrence date, the day the
	// revenue was earned.
	PaymentDate *time.Time `gorm:"index" json:"payment_date,omitempty"`
	IsAdvance   bool       `gorm:"not null;default:false" json:"is_advance"`
	LeadDays    int        `gorm:"not null;default:0" json:"lead_days"`

	Allocations     OrderAllocations `gorm:"type:jsonb;serializer:json" json:"allocations"`
	MatchedExpenses ExpenseMatches   `gorm:"type:jsonb;serializer:json" json:"matched_expenses"`

	Notes string `gorm:"type:text" json:"notes"`
}

// NewIncome creates an income record dated incomeDate, the day the revenue
// was earned.
func NewIncome(incomeDate time.Time, amount decimal.Decimal, bankType BankType, description string) (*Income, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "income amount must be positive")
	}
	if !bankType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BANK_TYPE", fmt.Sprintf("unknown bank type: %s", bankType))
	}
	return &Income{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IncomeDate:        incomeDate,
		Amount:            amount,
		BankType:          bankType,
		Description:       description,
		Allocations:     OrderAllocations{},
		MatchedExpenses: ExpenseMatches{},
	}, nil
}

// NewAdvanceIncome creates an income record whose cash arrived before the
// revenue was earned. The ledger date stays the occurrence date and the
// record carries a 预收款 marker in its notes.
func NewAdvanceIncome(occurrenceDate, paymentDate time.Time, amount decimal.Decimal, bankType BankType, description string) (*Income, error) {
	inc, err := NewIncome(occurrenceDate, amount, bankType, description)
	if err != nil {
		return nil, err
	}
	if !truncateToDay(paymentDate).Before(truncateToDay(occurrenceDate)) {
		return nil, shared.NewDomainError("NOT_AN_ADVANCE", "advance income must be received before its occurrence date")
	}
	ann := NewAdvanceAnnotation(paymentDate, LeadDaysBetween(paymentDate, occurrenceDate))
	inc.PaymentDate = &ann.PaymentDate
	inc.IsAdvance = true
	inc.LeadDays = ann.LeadDays
	inc.appendNote(ann.IncomeNote())
	return inc, nil
}

// SetCustomer links the income to a customer
func (i *Income) SetCustomer(customerID uuid.UUID, customerName string) {
	i.CustomerID = &customerID
	i.CustomerName = customerName
	i.UpdatedAt = time.Now()
}

// MarkInvoiced records that an invoice was issued for this income
func (i *Income) MarkInvoiced() {
	i.HasInvoice = true
	i.UpdatedAt = time.Now()
}

// Allocate assigns part of this income to a processing order. A repeat
// allocation to the same order adds to the existing entry. The total across
// all orders can never exceed the income amount.
func (i *Income) Allocate(orderID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "allocation amount must be positive")
	}
	if i.Allocations.TotalAllocated().Add(amount).GreaterThan(i.Amount) {
		return shared.NewDomainError("ALLOCATION_EXCEEDS_INCOME",
			fmt.Sprintf("allocation total %s would exceed income amount %s",
				i.Allocations.TotalAllocated().Add(amount).StringFixed(2), i.Amount.StringFixed(2)))
	}
	i.Allocations = i.Allocations.merge(orderID, amount)
	i.UpdatedAt = time.Now()
	return nil
}

// AmountForOrder returns how much of this income is allocated to an order
func (i *Income) AmountForOrder(orderID uuid.UUID) decimal.Decimal {
	return i.Allocations.AmountFor(orderID)
}

// UnallocatedAmount returns how much of the income is not yet tied to orders
func (i *Income) UnallocatedAmount() decimal.Decimal {
	return i.Amount.Sub(i.Allocations.TotalAllocated())
}

// IsFullyAllocated reports whether every yuan of the income is on an order
func (i *Income) IsFullyAllocated() bool {
	return i.UnallocatedAmount().IsZero()
}

// MatchExpenses nets this income against the given expense records and
// appends the 匹配到N笔支出 marker to the notes. The matched total, across
// all calls, can never exceed the income amount. Validation runs before any
// mutation so a failed call leaves the record untouched.
func (i *Income) MatchExpenses(matches []ExpenseMatch) error {
	if len(matches) == 0 {
		return shared.NewDomainError("NO_EXPENSES", "at least one expense is required for matching")
	}
	batchTotal := decimal.Zero
	for _, match := range matches {
		if match.Amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "match amount must be positive")
		}
		if i.MatchedExpenses.Contains(match.ExpenseID) {
			return shared.NewDomainError("ALREADY_MATCHED",
				fmt.Sprintf("expense %s is already matched to this income", match.ExpenseID))
		}
		batchTotal = batchTotal.Add(match.Amount)
	}
	if i.MatchedExpenses.TotalMatched().Add(batchTotal).GreaterThan(i.Amount) {
		return shared.NewDomainError("MATCH_EXCEEDS_INCOME",
			fmt.Sprintf("matched total %s would exceed income amount %s",
				i.MatchedExpenses.TotalMatched().Add(batchTotal).StringFixed(2), i.Amount.StringFixed(2)))
	}
	i.MatchedExpenses = append(i.MatchedExpenses, matches...)
	i.appendNote(fmt.Sprintf("匹配到%d笔支出", len(matches)))
	i.UpdatedAt = time.Now()
	return nil
}

// SetNotes replaces the free-form notes
func (i *Income) SetNotes(notes string) {
	i.Notes = notes
	i.UpdatedAt = time.Now()
}

func (i *Income) appendNote(note string) {
	if note == "" {
		return
	}
	if i.Notes == "" {
		i.Notes = note
		return
	}
	i.Notes = strings.Join([]string{i.Notes, note}, "；")
}
