package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "customer with this name already exists")
	}

	limit := decimal.Zero
	if req.CreditLimit != nil {
		limit = *req.CreditLimit
	}
	customer, err := partner.NewCustomer(req.Name, req.ContactPerson, req.Phone, req.Address, valueobject.NewMoneyCNY(limit))
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update applies the provided fields to an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contactPerson := customer.ContactPerson
	phone := customer.Phone
	address := customer.Address
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	customer.UpdateContact(contactPerson, phone, address)

	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(valueobject.NewMoneyCNY(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Get returns one customer by id
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns customers matching the filter with pagination
func (s *CustomerService) List(ctx context.Context, filter partner.CustomerFilter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, ToCustomerResponse(&customers[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
