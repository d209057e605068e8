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

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := conn(ctx, r.db).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindByIDs finds the expenses for the given set of IDs
func (r *GormExpenseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*finance.Expense, error) {
	if len(ids) == 0 {
		return []*finance.Expense{}, nil
	}
	var expenses []*finance.Expense
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindAll finds expense records matching the filter. The Outstanding cut runs
// in memory because payment totals live in the JSON column, so for that
// filter the page is carved out after the cut, not in SQL.
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]*finance.Expense, error) {
	var expenses []*finance.Expense
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.Expense{}), filter)
	query = applyOrdering(query, filter.Filter, ExpenseSortFields)
	if !filter.Outstanding {
		query = applyPagination(query, filter.Filter)
		if err := query.Find(&expenses).Error; err != nil {
			return nil, err
		}
		return expenses, nil
	}

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	outstanding := make([]*finance.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if !expense.IsFullyPaid() {
			outstanding = append(outstanding, expense)
		}
	}
	return paginateSlice(outstanding, filter.Filter), nil
}

// FindOutstandingBySupplier finds expenses of a supplier that are not fully paid
func (r *GormExpenseRepository) FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*finance.Expense, error) {
	var expenses []*finance.Expense
	err := conn(ctx, r.db).
		Where("supplier_id = ?", supplierID).
		Order("expense_date asc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	outstanding := make([]*finance.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if !expense.IsFullyPaid() {
			outstanding = append(outstanding, expense)
		}
	}
	return outstanding, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return conn(ctx, r.db).Save(expense).Error
}

// SaveWithLock saves an expense record with optimistic locking, matching
// against the version the record was loaded at and writing version+1.
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, expense *finance.Expense) error {
	loaded := expense.Version
	expense.Version = loaded + 1
	result := conn(ctx, r.db).
		Model(&finance.Expense{}).
		Where("id = ? AND version = ?", expense.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(expense)

	if result.Error != nil {
		expense.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		expense.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts expense records matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.Expense{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByDateRange totals expenses whose occurrence date falls within [from, to],
// optionally for one bank
func (r *GormExpenseRepository) SumByDateRange(ctx context.Context, from, to time.Time, bankType *finance.BankType) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := conn(ctx, r.db).Model(&finance.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date <= ?", from, to)
	if bankType != nil {
		query = query.Where("bank_type = ?", *bankType)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByCategory totals expenses per category for the date range
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, from, to time.Time) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	var rows []struct {
		Category finance.ExpenseCategory
		Total    decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&finance.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("expense_date >= ? AND expense_date <= ?", from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[finance.ExpenseCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

// SumOutstanding totals unpaid balances across all expenses as of asOf
func (r *GormExpenseRepository) SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	var expenses []*finance.Expense
	err := conn(ctx, r.db).
		Where("expense_date <= ?", asOf).
		Find(&expenses).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.OutstandingAmount())
	}
	return total, nil
}

// FindAdvances returns advance payments whose cash moved by asOf
func (r *GormExpenseRepository) FindAdvances(ctx context.Context, asOf time.Time) ([]*finance.Expense, error) {
	var expenses []*finance.Expense
	err := conn(ctx, r.db).
		Where("is_advance = ? AND payment_date <= ?", true, asOf).
		Order("payment_date asc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.BankType != nil {
		query = query.Where("bank_type = ?", *filter.BankType)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.FromDate != nil {
		query = query.Where("expense_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("expense_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}
	return query
}
