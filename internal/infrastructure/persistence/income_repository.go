package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormIncomeRepository implements finance.IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByID finds an income record by its ID
func (r *GormIncomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Income, error) {
	var income finance.Income
	if err := conn(ctx, r.db).First(&income, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &income, nil
}

// FindAll finds income records matching the filter. The Unallocated cut runs
// in memory because allocation totals live in the JSON column, so for that
// filter the page is carved out after the cut, not in SQL.
func (r *GormIncomeRepository) FindAll(ctx context.Context, filter finance.IncomeFilter) ([]*finance.Income, error) {
	var incomes []*finance.Income
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.Income{}), filter)
	query = applyOrdering(query, filter.Filter, IncomeSortFields)
	if !filter.Unallocated {
		query = applyPagination(query, filter.Filter)
		if err := query.Find(&incomes).Error; err != nil {
			return nil, err
		}
		return incomes, nil
	}

	if err := query.Find(&incomes).Error; err != nil {
		return nil, err
	}
	unallocated := make([]*finance.Income, 0, len(incomes))
	for _, income := range incomes {
		if income.UnallocatedAmount().IsPositive() {
			unallocated = append(unallocated, income)
		}
	}
	return paginateSlice(unallocated, filter.Filter), nil
}

// Save creates or updates an income record
func (r *GormIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	return conn(ctx, r.db).Save(income).Error
}

// SaveWithLock saves an income record with optimistic locking, matching
// against the version the record was loaded at and writing version+1.
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormIncomeRepository) SaveWithLock(ctx context.Context, income *finance.Income) error {
	loaded := income.Version
	income.Version = loaded + 1
	result := conn(ctx, r.db).
		Model(&finance.Income{}).
		Where("id = ? AND version = ?", income.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(income)

	if result.Error != nil {
		income.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		income.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts income records matching the filter
func (r *GormIncomeRepository) Count(ctx context.Context, filter finance.IncomeFilter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.Income{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByDateRange totals income whose occurrence date falls within [from, to],
// optionally for one bank
func (r *GormIncomeRepository) SumByDateRange(ctx context.Context, from, to time.Time, bankType *finance.BankType) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := conn(ctx, r.db).Model(&finance.Income{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("income_date >= ? AND income_date <= ?", from, to)
	if bankType != nil {
		query = query.Where("bank_type = ?", *bankType)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByBank breaks the range total down per bank type
func (r *GormIncomeRepository) SumByBank(ctx context.Context, from, to time.Time) (map[finance.BankType]decimal.Decimal, error) {
	var rows []struct {
		BankType finance.BankType
		Total    decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&finance.Income{}).
		Select("bank_type, SUM(amount) AS total").
		Where("income_date >= ? AND income_date <= ?", from, to).
		Group("bank_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[finance.BankType]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.BankType] = row.Total
	}
	return totals, nil
}

// SumByCustomer breaks the range total down per linked customer. Records with
// no customer link are left out.
func (r *GormIncomeRepository) SumByCustomer(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		CustomerID uuid.UUID
		Total      decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&finance.Income{}).
		Select("customer_id, SUM(amount) AS total").
		Where("income_date >= ? AND income_date <= ? AND customer_id IS NOT NULL", from, to).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.CustomerID] = row.Total
	}
	return totals, nil
}

// FindAdvances returns advance receipts whose cash arrived by asOf
func (r *GormIncomeRepository) FindAdvances(ctx context.Context, asOf time.Time) ([]*finance.Income, error) {
	var incomes []*finance.Income
	err := conn(ctx, r.db).
		Where("is_advance = ? AND payment_date <= ?", true, asOf).
		Order("payment_date asc").
		Find(&incomes).Error
	if err != nil {
		return nil, err
	}
	return incomes, nil
}

func (r *GormIncomeRepository) applyFilter(query *gorm.DB, filter finance.IncomeFilter) *gorm.DB {
	if filter.BankType != nil {
		query = query.Where("bank_type = ?", *filter.BankType)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.FromDate != nil {
		query = query.Where("income_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("income_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("customer_name LIKE ? OR description LIKE ?", like, like)
	}
	return query
}
