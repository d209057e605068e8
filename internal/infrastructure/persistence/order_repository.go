package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ProcessingOrder, error) {
	var o order.ProcessingOrder
	if err := conn(ctx, r.db).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its human-readable number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.ProcessingOrder, error) {
	var o order.ProcessingOrder
	if err := conn(ctx, r.db).First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.ProcessingOrder, error) {
	var orders []order.ProcessingOrder
	query := r.applyFilter(conn(ctx, r.db).Model(&order.ProcessingOrder{}), filter)
	query = applyOrdering(query, filter.Filter, OrderSortFields)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIDs finds the orders for the given set of IDs
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.ProcessingOrder, error) {
	if len(ids) == 0 {
		return []order.ProcessingOrder{}, nil
	}
	var orders []order.ProcessingOrder
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOutstandingByCustomer finds orders of a customer that are not fully received
func (r *GormOrderRepository) FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]order.ProcessingOrder, error) {
	var orders []order.ProcessingOrder
	err := conn(ctx, r.db).
		Where("customer_id = ? AND received_amount < total_amount", customerID).
		Order("order_date asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.ProcessingOrder) error {
	return conn(ctx, r.db).Save(o).Error
}

// SaveWithLock saves an order with optimistic locking, matching against the
// version the order was loaded at and writing version+1.
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.ProcessingOrder) error {
	loaded := o.Version
	o.Version = loaded + 1
	result := conn(ctx, r.db).
		Model(&order.ProcessingOrder{}).
		Where("id = ? AND version = ?", o.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(o)

	if result.Error != nil {
		o.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		o.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&order.ProcessingOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOutstanding sums total_amount - received_amount over orders dated up to asOf
func (r *GormOrderRepository) SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&order.ProcessingOrder{}).
		Select("COALESCE(SUM(total_amount - received_amount), 0) AS total").
		Where("order_date <= ? AND received_amount < total_amount", asOf).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumOutstandingByCustomer sums the customer's unpaid order amounts
func (r *GormOrderRepository) SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&order.ProcessingOrder{}).
		Select("COALESCE(SUM(total_amount - received_amount), 0) AS total").
		Where("customer_id = ? AND received_amount < total_amount", customerID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// GenerateOrderNumber generates the next order number in the PO-YYYY-NNNNN
// sequence. Numbering restarts each calendar year.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().Year())

	var row struct {
		Last string
	}
	err := conn(ctx, r.db).Model(&order.ProcessingOrder{}).
		Select("COALESCE(MAX(order_number), '') AS last").
		Where("order_number LIKE ?", prefix+"%").
		Scan(&row).Error
	if err != nil {
		return "", err
	}

	next := 1
	if row.Last != "" {
		seq, err := strconv.Atoi(strings.TrimPrefix(row.Last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed order number %q: %w", row.Last, err)
		}
		next = seq + 1
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.Filter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("order_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("order_date <= ?", *filter.ToDate)
	}
	if filter.Outstanding {
		query = query.Where("received_amount < total_amount")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR customer_name LIKE ? OR item_description LIKE ?", like, like, like)
	}
	return query
}
