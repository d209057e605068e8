package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
)

// Service handles processing order operations
type Service struct {
	orderRepo    order.Repository
	customerRepo partner.CustomerRepository
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, customerRepo partner.CustomerRepository) *Service {
	return &Service{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// Create creates a processing order for a customer. The order total is fixed
// at quantity times unit price on creation. When the customer carries a
// credit limit, the new order must fit within it.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewProcessingOrder(
		orderNumber,
		customer.ID,
		customer.Name,
		req.ItemDescription,
		req.Quantity,
		order.PricingUnit(req.PricingUnit),
		valueobject.NewMoneyCNY(req.UnitPrice),
		req.OrderDate,
	)
	if err != nil {
		return nil, err
	}

	if customer.HasCreditLimit() {
		outstanding, err := s.orderRepo.SumOutstandingByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		if !customer.WithinCreditLimit(outstanding.Add(o.TotalAmount)) {
			return nil, shared.NewDomainError("CREDIT_LIMIT_EXCEEDED",
				fmt.Sprintf("order %s would push customer %s past credit limit %s",
					orderNumber, customer.Name, customer.CreditLimit.StringFixed(2)))
		}
	}

	if len(req.InHouseSteps) > 0 || len(req.OutsourcedSteps) > 0 {
		o.SetProcessSteps(req.InHouseSteps, req.OutsourcedSteps)
	}
	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Get returns one order by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByNumber returns one order by its order number
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns orders matching the filter with pagination
func (s *Service) List(ctx context.Context, filter order.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOutstanding returns a customer's orders that still have money owed
func (s *Service) ListOutstanding(ctx context.Context, customerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	return items, nil
}

// StartProcessing moves a pending order into processing
func (s *Service) StartProcessing(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.ProcessingOrder) error {
		return o.StartProcessing()
	})
}

// Complete marks an in-progress order as finished
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.ProcessingOrder) error {
		return o.Complete(time.Now())
	})
}

// Deliver marks a completed order as delivered to the customer
func (s *Service) Deliver(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.ProcessingOrder) error {
		return o.Deliver(time.Now())
	})
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, apply func(*order.ProcessingOrder) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}
