package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "supplier with this name already exists")
	}

	supplier, err := partner.NewSupplier(req.Name, req.ContactPerson, req.Phone, req.Address, req.BusinessType)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update applies the provided fields to an existing supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contactPerson := supplier.ContactPerson
	phone := supplier.Phone
	address := supplier.Address
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	supplier.UpdateContact(contactPerson, phone, address)

	if req.BusinessType != nil {
		supplier.SetBusinessType(*req.BusinessType)
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Get returns one supplier by id
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns suppliers matching the filter with pagination
func (s *SupplierService) List(ctx context.Context, filter partner.SupplierFilter) (*shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, ToSupplierResponse(&suppliers[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
