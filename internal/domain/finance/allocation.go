package finance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderAllocation ties a slice of an income record to a processing order
type OrderAllocation struct {
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// OrderAllocations is the allocation list stored as a JSONB column on the
// income record. Allocations to the same order are merged additively, so the
// list holds at most one entry per order.
type OrderAllocations []OrderAllocation

// TotalAllocated sums the allocated amounts
func (a OrderAllocations) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, alloc := range a {
		total = total.Add(alloc.Amount)
	}
	return total
}

// AmountFor returns the amount allocated to the given order, zero if none
func (a OrderAllocations) AmountFor(orderID uuid.UUID) decimal.Decimal {
	for _, alloc := range a {
		if alloc.OrderID == orderID {
			return alloc.Amount
		}
	}
	return decimal.Zero
}

// OrderIDs returns the distinct order ids in allocation order
func (a OrderAllocations) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a))
	for _, alloc := range a {
		ids = append(ids, alloc.OrderID)
	}
	return ids
}

// merge folds a new allocation in, adding to an existing entry for the same
// order instead of appending a duplicate.
func (a OrderAllocations) merge(orderID uuid.UUID, amount decimal.Decimal) OrderAllocations {
	for i, alloc := range a {
		if alloc.OrderID == orderID {
			a[i].Amount = alloc.Amount.Add(amount)
			return a
		}
	}
	return append(a, OrderAllocation{OrderID: orderID, Amount: amount})
}

// Value implements driver.Valuer
func (a OrderAllocations) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (a *OrderAllocations) Scan(value interface{}) error {
	if value == nil {
		*a = OrderAllocations{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderAllocations", value)
	}
	if len(data) == 0 {
		*a = OrderAllocations{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// ExpenseMatch nets part of an income against an expense record. The link is
// informational, it does not move money, it only documents which costs a
// given receipt is considered to cover.
type ExpenseMatch struct {
	ExpenseID uuid.UUID       `json:"expense_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ExpenseMatches is the match list stored as a JSONB column on the income
type ExpenseMatches []ExpenseMatch

// TotalMatched sums the matched amounts
func (m ExpenseMatches) TotalMatched() decimal.Decimal {
	total := decimal.Zero
	for _, match := range m {
		total = total.Add(match.Amount)
	}
	return total
}

// Contains reports whether the expense is already matched
func (m ExpenseMatches) Contains(expenseID uuid.UUID) bool {
	for _, match := range m {
		if match.ExpenseID == expenseID {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (m ExpenseMatches) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *ExpenseMatches) Scan(value interface{}) error {
	if value == nil {
		*m = ExpenseMatches{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ExpenseMatches", value)
	}
	if len(data) == 0 {
		*m = ExpenseMatches{}
		return nil
	}
	return json.Unmarshal(data, m)
}
