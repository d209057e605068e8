package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=128"`
	ContactPerson string           `json:"contact_person" binding:"max=64"`
	Phone         string           `json:"phone" binding:"max=32"`
	Address       string           `json:"address" binding:"max=255"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	Notes         string           `json:"notes" binding:"max=500"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	ContactPerson *string          `json:"contact_person" binding:"omitempty,max=64"`
	Phone         *string          `json:"phone" binding:"omitempty,max=32"`
	Address       *string          `json:"address" binding:"omitempty,max=255"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	Notes         *string          `json:"notes" binding:"omitempty,max=500"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ContactPerson string          `json:"contact_person"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToCustomerResponse maps a customer aggregate to its response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Address:       c.Address,
		CreditLimit:   c.CreditLimit,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=128"`
	ContactPerson string `json:"contact_person" binding:"max=64"`
	Phone         string `json:"phone" binding:"max=32"`
	Address       string `json:"address" binding:"max=255"`
	BusinessType  string `json:"business_type" binding:"max=64"`
	Notes         string `json:"notes" binding:"max=500"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=64"`
	Phone         *string `json:"phone" binding:"omitempty,max=32"`
	Address       *string `json:"address" binding:"omitempty,max=255"`
	BusinessType  *string `json:"business_type" binding:"omitempty,max=64"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	BusinessType  string    `json:"business_type"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse maps a supplier aggregate to its response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Address:       s.Address,
		BusinessType:  s.BusinessType,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
