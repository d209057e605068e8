package finance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/shared"
)

// PaymentRecord is one payment made toward an expense
type PaymentRecord struct {
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	BankType    BankType        `json:"bank_type"`
}

// PaymentRecords is the payment history stored as a JSONB column
type PaymentRecords []PaymentRecord

// TotalPaid sums the payments
func (p PaymentRecords) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range p {
		total = total.Add(rec.Amount)
	}
	return total
}

// Value implements driver.Valuer
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentRecords", value)
	}
	if len(data) == 0 {
		*p = PaymentRecords{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// Expense is a money-out record. Large purchases are often settled in several
// installments, so the payment history lives on the record and the
// outstanding amount is derived from it.
type Expense struct {
	shared.BaseAggregateRoot
	ExpenseDate time.Time       `gorm:"not null;index" json:"expense_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"type:varchar(32);not null;index" json:"category"`
	BankType    BankType        `gorm:"type:varchar(16);not null;index" json:"bank_type"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Description string          `gorm:"type:varchar(255)" json:"description"`

	// PaymentDate is the actual cash movement date, set only for advance
	// payments. ExpenseDate always stays the occurrence date.
	PaymentDate *time.Time `gorm:"index" json:"payment_date,omitempty"`
	IsAdvance   bool       `gorm:"not null;default:false" json:"is_advance"`
	LeadDays    int        `gorm:"not null;default:0" json:"lead_days"`

	Payments PaymentRecords `gorm:"type:jsonb;serializer:json" json:"payments"`

	Notes string `gorm:"type:text" json:"notes"`
}

// NewExpense creates an expense record dated expenseDate, the day the cost
// was incurred. The expense starts unpaid.
func NewExpense(expenseDate time.Time, amount decimal.Decimal, category ExpenseCategory, bankType BankType, description string) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "expense amount must be positive")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("unknown expense category: %s", category))
	}
	if !bankType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BANK_TYPE", fmt.Sprintf("unknown bank type: %s", bankType))
	}
	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExpenseDate:       expenseDate,
		Amount:            amount,
		Category:          category,
		BankType:          bankType,
		Description:       description,
		Payments:          PaymentRecords{},
	}, nil
}

// NewAdvanceExpense creates an expense whose cash left before the cost was
// incurred. The ledger date stays the occurrence date and the record carries
// a 预付款 marker in its notes.
func NewAdvanceExpense(occurrenceDate, paymentDate time.Time, amount decimal.Decimal, category ExpenseCategory, bankType BankType, description string) (*Expense, error) {
	exp, err := NewExpense(occurrenceDate, amount, category, bankType, description)
	if err != nil {
		return nil, err
	}
	if !truncateToDay(paymentDate).Before(truncateToDay(occurrenceDate)) {
		return nil, shared.NewDomainError("NOT_AN_ADVANCE", "advance expense must be paid before its occurrence date")
	}
	ann := NewAdvanceAnnotation(paymentDate, LeadDaysBetween(paymentDate, occurrenceDate))
	exp.PaymentDate = &ann.PaymentDate
	exp.IsAdvance = true
	exp.LeadDays = ann.LeadDays
	exp.appendNote(ann.ExpenseNote())
	return exp, nil
}

// SetSupplier links the expense to a supplier
func (e *Expense) SetSupplier(supplierID uuid.UUID) {
	e.SupplierID = &supplierID
	e.UpdatedAt = time.Now()
}

// ApplyPayment records a payment toward this expense. A payment that would
// push the total paid past the expense amount is rejected and nothing
// changes.
func (e *Expense) ApplyPayment(paymentDate time.Time, amount decimal.Decimal, bankType BankType) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "payment amount must be positive")
	}
	if !bankType.IsValid() {
		return shared.NewDomainError("INVALID_BANK_TYPE", fmt.Sprintf("unknown bank type: %s", bankType))
	}
	if e.Payments.TotalPaid().Add(amount).GreaterThan(e.Amount) {
		return shared.NewDomainError("EXCEEDS_EXPENSE_AMOUNT",
			fmt.Sprintf("payment total %s would exceed expense amount %s",
				e.Payments.TotalPaid().Add(amount).StringFixed(2), e.Amount.StringFixed(2)))
	}
	e.Payments = append(e.Payments, PaymentRecord{
		PaymentDate: paymentDate,
		Amount:      amount,
		BankType:    bankType,
	})
	e.UpdatedAt = time.Now()
	return nil
}

// PaidAmount returns the total paid so far
func (e *Expense) PaidAmount() decimal.Decimal {
	return e.Payments.TotalPaid()
}

// OutstandingAmount returns what is still owed to the supplier
func (e *Expense) OutstandingAmount() decimal.Decimal {
	return e.Amount.Sub(e.Payments.TotalPaid())
}

// IsFullyPaid reports whether nothing is owed
func (e *Expense) IsFullyPaid() bool {
	return e.OutstandingAmount().IsZero()
}

// AgeDays returns how many days the expense has been outstanding as of asOf
func (e *Expense) AgeDays(asOf time.Time) int {
	days := int(truncateToDay(asOf).Sub(truncateToDay(e.ExpenseDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// SetNotes replaces the free-form notes
func (e *Expense) SetNotes(notes string) {
	e.Notes = notes
	e.UpdatedAt = time.Now()
}

func (e *Expense) appendNote(note string) {
	if note == "" {
		return
	}
	if e.Notes == "" {
		e.Notes = note
		return
	}
	e.Notes = strings.Join([]string{e.Notes, note}, "；")
}
