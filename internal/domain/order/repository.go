package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter defines filtering options for processing order queries
type Filter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *Status
	FromDate   *time.Time // order date range start
	ToDate     *time.Time // order date range end
	// Outstanding limits results to orders with received_amount < total_amount
	Outstanding bool
}

// Repository defines the interface for processing order persistence
type Repository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProcessingOrder, error)

	// FindByOrderNumber finds an order by its human-readable number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*ProcessingOrder, error)

	// FindAll finds orders with filtering
	FindAll(ctx context.Context, filter Filter) ([]ProcessingOrder, error)

	// FindByIDs finds the orders for the given set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProcessingOrder, error)

	// FindOutstandingByCustomer finds orders of a customer that are not fully received
	FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]ProcessingOrder, error)

	// Save creates or updates an order
	Save(ctx context.Context, o *ProcessingOrder) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, o *ProcessingOrder) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// SumOutstanding sums total_amount - received_amount over orders dated up to asOf
	SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error)

	// SumOutstandingByCustomer sums the customer's unpaid order amounts
	SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// GenerateOrderNumber generates the next unique order number (PO-YYYY-NNNNN)
	GenerateOrderNumber(ctx context.Context) (string, error)
}
