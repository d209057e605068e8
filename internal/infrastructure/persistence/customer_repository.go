package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := conn(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByName finds a customer by exact name
func (r *GormCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	var customer partner.Customer
	if err := conn(ctx, r.db).First(&customer, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter partner.CustomerFilter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(conn(ctx, r.db).Model(&partner.Customer{}), filter)
	query = applyOrdering(query, filter.Filter, CustomerSortFields)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return conn(ctx, r.db).Save(customer).Error
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter partner.CustomerFilter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&partner.Customer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether a customer with the name exists
func (r *GormCustomerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&partner.Customer{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter partner.CustomerFilter) *gorm.DB {
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return query
}
