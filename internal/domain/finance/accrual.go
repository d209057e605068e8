package finance

import (
	"fmt"
	"time"
)

// AccrualAnnotation captures accrual-basis timing information on an income or
// expense record in structured form. Earlier iterations of the books encoded
// this in free-text notes; keeping it structured lets the accrual reports
// aggregate without string parsing, while Note() still renders the familiar
// wording for display.
type AccrualAnnotation struct {
	// IsAdvance marks money received before the obligation existed (预收款)
	// or paid before the expense accrued (预付款).
	IsAdvance bool `json:"is_advance"`
	// LeadDays is how many days ahead of the accrual date the cash moved.
	// Zero when IsAdvance is false.
	LeadDays int `json:"lead_days"`
	// PaymentDate is the actual cash movement date
	PaymentDate time.Time `json:"payment_date"`
}

// NewAdvanceAnnotation builds an annotation for cash that moved leadDays
// before the accrual date
func NewAdvanceAnnotation(paymentDate time.Time, leadDays int) AccrualAnnotation {
	return AccrualAnnotation{
		IsAdvance:   true,
		LeadDays:    leadDays,
		PaymentDate: paymentDate,
	}
}

// IncomeNote renders the display note for an advance receipt
func (a AccrualAnnotation) IncomeNote() string {
	if !a.IsAdvance {
		return ""
	}
	return fmt.Sprintf("预收款，提前%d天", a.LeadDays)
}

// ExpenseNote renders the display note for an advance payment
func (a AccrualAnnotation) ExpenseNote() string {
	if !a.IsAdvance {
		return ""
	}
	return fmt.Sprintf("预付款，提前%d天", a.LeadDays)
}

// LeadDaysBetween computes the whole days between payment and accrual dates.
// Returns 0 when payment is not strictly before accrual.
func LeadDaysBetween(paymentDate, accrualDate time.Time) int {
	p := truncateToDay(paymentDate)
	a := truncateToDay(accrualDate)
	if !p.Before(a) {
		return 0
	}
	return int(a.Sub(p).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
