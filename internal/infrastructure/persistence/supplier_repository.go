package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByName finds a supplier by exact name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := conn(ctx, r.db).First(&supplier, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter partner.SupplierFilter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := r.applyFilter(conn(ctx, r.db).Model(&partner.Supplier{}), filter)
	query = applyOrdering(query, filter.Filter, SupplierSortFields)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return conn(ctx, r.db).Save(supplier).Error
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter partner.SupplierFilter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&partner.Supplier{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether a supplier with the name exists
func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&partner.Supplier{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter partner.SupplierFilter) *gorm.DB {
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.BusinessType != nil {
		query = query.Where("business_type = ?", *filter.BusinessType)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return query
}
