package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/shared"
)

// CustomerFilter defines filtering options for customer queries
type CustomerFilter struct {
	shared.Filter
	Name *string // exact name match
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByName finds a customer by exact name
	FindByName(ctx context.Context, name string) (*Customer, error)

	// FindAll finds all customers with filtering
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// ExistsByName checks whether a customer with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// SupplierFilter defines filtering options for supplier queries
type SupplierFilter struct {
	shared.Filter
	Name         *string
	BusinessType *string
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByName finds a supplier by exact name
	FindByName(ctx context.Context, name string) (*Supplier, error)

	// FindAll finds all suppliers with filtering
	FindAll(ctx context.Context, filter SupplierFilter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Count counts suppliers matching the filter
	Count(ctx context.Context, filter SupplierFilter) (int64, error)

	// ExistsByName checks whether a supplier with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
