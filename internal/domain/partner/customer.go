package partner

import (
	"time"

	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Customer represents a processing customer of the shop.
// Identity is immutable after creation; contact fields are mutable.
type Customer struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	ContactPerson string          `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string          `gorm:"type:varchar(50)" json:"phone"`
	Address       string          `gorm:"type:text" json:"address"`
	CreditLimit   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"credit_limit"` // zero means unlimited
	Notes         string          `gorm:"type:text" json:"notes"`
}

// NewCustomer creates a new customer
func NewCustomer(name, contactPerson, phone, address string, creditLimit valueobject.Money) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPerson:     contactPerson,
		Phone:             phone,
		Address:           address,
		CreditLimit:       creditLimit.Amount(),
	}, nil
}

// UpdateContact updates the mutable contact fields
func (c *Customer) UpdateContact(contactPerson, phone, address string) {
	c.ContactPerson = contactPerson
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
}

// SetCreditLimit updates the credit limit
func (c *Customer) SetCreditLimit(limit valueobject.Money) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit.Amount()
	c.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-text notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// HasCreditLimit returns true if a credit limit is enforced
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.GreaterThan(decimal.Zero)
}

// WithinCreditLimit reports whether the given outstanding exposure fits the
// customer's credit limit. Customers without a limit always pass.
func (c *Customer) WithinCreditLimit(outstanding decimal.Decimal) bool {
	if !c.HasCreditLimit() {
		return true
	}
	return outstanding.LessThanOrEqual(c.CreditLimit)
}
