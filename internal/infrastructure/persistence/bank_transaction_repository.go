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

// GormBankTransactionRepository implements finance.BankTransactionRepository using GORM
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// FindByID finds a statement line by its ID
func (r *GormBankTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankTransaction, error) {
	var txn finance.BankTransaction
	if err := conn(ctx, r.db).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindAll finds statement lines matching the filter
func (r *GormBankTransactionRepository) FindAll(ctx context.Context, filter finance.BankTransactionFilter) ([]*finance.BankTransaction, error) {
	var txns []*finance.BankTransaction
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.BankTransaction{}), filter)
	query = applyOrdering(query, filter.Filter, BankTransactionSortFields)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindUnmatched finds statement lines of an account not yet matched to a book record
func (r *GormBankTransactionRepository) FindUnmatched(ctx context.Context, bankType finance.BankType) ([]*finance.BankTransaction, error) {
	var txns []*finance.BankTransaction
	err := conn(ctx, r.db).
		Where("bank_type = ? AND matched_income_id IS NULL AND matched_expense_id IS NULL", bankType).
		Order("transaction_date asc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// Save creates or updates a statement line
func (r *GormBankTransactionRepository) Save(ctx context.Context, txn *finance.BankTransaction) error {
	return conn(ctx, r.db).Save(txn).Error
}

// SaveWithLock saves a statement line with optimistic locking, matching
// against the version the line was loaded at and writing version+1.
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormBankTransactionRepository) SaveWithLock(ctx context.Context, txn *finance.BankTransaction) error {
	loaded := txn.Version
	txn.Version = loaded + 1
	result := conn(ctx, r.db).
		Model(&finance.BankTransaction{}).
		Where("id = ? AND version = ?", txn.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(txn)

	if result.Error != nil {
		txn.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		txn.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts statement lines matching the filter
func (r *GormBankTransactionRepository) Count(ctx context.Context, filter finance.BankTransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.BankTransaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumSigned nets credits against debits for the account over [from, to]
func (r *GormBankTransactionRepository) SumSigned(ctx context.Context, bankType finance.BankType, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&finance.BankTransaction{}).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0) AS total", finance.DirectionCredit).
		Where("bank_type = ? AND transaction_date >= ? AND transaction_date <= ?", bankType, from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByDirection totals lines of one direction over [from, to]
func (r *GormBankTransactionRepository) SumByDirection(ctx context.Context, bankType finance.BankType, direction finance.TransactionDirection, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&finance.BankTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("bank_type = ? AND direction = ? AND transaction_date >= ? AND transaction_date <= ?",
			bankType, direction, from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// CountUnmatched counts unmatched statement lines of an account
func (r *GormBankTransactionRepository) CountUnmatched(ctx context.Context, bankType finance.BankType) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&finance.BankTransaction{}).
		Where("bank_type = ? AND matched_income_id IS NULL AND matched_expense_id IS NULL", bankType).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBankTransactionRepository) applyFilter(query *gorm.DB, filter finance.BankTransactionFilter) *gorm.DB {
	if filter.BankType != nil {
		query = query.Where("bank_type = ?", *filter.BankType)
	}
	if filter.Direction != nil {
		query = query.Where("direction = ?", *filter.Direction)
	}
	if filter.FromDate != nil {
		query = query.Where("transaction_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_date <= ?", *filter.ToDate)
	}
	if filter.Unmatched {
		query = query.Where("matched_income_id IS NULL AND matched_expense_id IS NULL")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("counterparty LIKE ? OR description LIKE ?", like, like)
	}
	return query
}
