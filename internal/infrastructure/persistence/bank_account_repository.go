package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements finance.BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var account finance.BankAccount
	if err := conn(ctx, r.db).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByBankType finds the account backing a bank type
func (r *GormBankAccountRepository) FindByBankType(ctx context.Context, bankType finance.BankType) (*finance.BankAccount, error) {
	var account finance.BankAccount
	if err := conn(ctx, r.db).First(&account, "bank_type = ?", bankType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll returns every book account ordered by bank type
func (r *GormBankAccountRepository) FindAll(ctx context.Context) ([]*finance.BankAccount, error) {
	var accounts []*finance.BankAccount
	if err := conn(ctx, r.db).Order("bank_type asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	return conn(ctx, r.db).Save(account).Error
}

// SaveWithLock saves a bank account with optimistic locking, matching
// against the version the account was loaded at and writing version+1.
// Balance updates race between concurrent bookings, so callers retry on
// shared.ErrConcurrencyConflict.
func (r *GormBankAccountRepository) SaveWithLock(ctx context.Context, account *finance.BankAccount) error {
	loaded := account.Version
	account.Version = loaded + 1
	result := conn(ctx, r.db).
		Model(&finance.BankAccount{}).
		Where("id = ? AND version = ?", account.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(account)

	if result.Error != nil {
		account.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		account.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}
