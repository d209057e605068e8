package partner

import (
	"time"

	"github.com/platebooks/backend/internal/domain/shared"
)

// Supplier represents a material or outsourcing supplier.
// BusinessType is free text describing what the supplier provides,
// e.g. 化工原料, 外协加工, 挂具制作.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string `gorm:"type:varchar(50)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	BusinessType  string `gorm:"type:varchar(100);index" json:"business_type"`
	Notes         string `gorm:"type:text" json:"notes"`
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactPerson, phone, address, businessType string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPerson:     contactPerson,
		Phone:             phone,
		Address:           address,
		BusinessType:      businessType,
	}, nil
}

// UpdateContact updates the mutable contact fields
func (s *Supplier) UpdateContact(contactPerson, phone, address string) {
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
}

// SetBusinessType updates the business type description
func (s *Supplier) SetBusinessType(businessType string) {
	s.BusinessType = businessType
	s.UpdatedAt = time.Now()
}

// SetNotes sets the free-text notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}
