package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/partner"
)

// MockIncomeRepository is a mock implementation of finance.IncomeRepository
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Income, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) FindAll(ctx context.Context, filter finance.IncomeFilter) ([]*finance.Income, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) SaveWithLock(ctx context.Context, income *finance.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) Count(ctx context.Context, filter finance.IncomeFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIncomeRepository) SumByDateRange(ctx context.Context, from, to time.Time, bankType *finance.BankType) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, bankType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockIncomeRepository) SumByBank(ctx context.Context, from, to time.Time) (map[finance.BankType]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[finance.BankType]decimal.Decimal), args.Error(1)
}

func (m *MockIncomeRepository) SumByCustomer(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

func (m *MockIncomeRepository) FindAdvances(ctx context.Context, asOf time.Time) ([]*finance.Income, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*finance.Income), args.Error(1)
}

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*finance.Expense, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]*finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*finance.Expense, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumByDateRange(ctx context.Context, from, to time.Time, bankType *finance.BankType) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, bankType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumByCategory(ctx context.Context, from, to time.Time) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[finance.ExpenseCategory]decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) FindAdvances(ctx context.Context, asOf time.Time) ([]*finance.Expense, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*finance.Expense), args.Error(1)
}

// MockBankAccountRepository is a mock implementation of finance.BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByBankType(ctx context.Context, bankType finance.BankType) (*finance.BankAccount, error) {
	args := m.Called(ctx, bankType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context) ([]*finance.BankAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveWithLock(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockBankTransactionRepository is a mock implementation of finance.BankTransactionRepository
type MockBankTransactionRepository struct {
	mock.Mock
}

func (m *MockBankTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindAll(ctx context.Context, filter finance.BankTransactionFilter) ([]*finance.BankTransaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*finance.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindUnmatched(ctx context.Context, bankType finance.BankType) ([]*finance.BankTransaction, error) {
	args := m.Called(ctx, bankType)
	return args.Get(0).([]*finance.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) Save(ctx context.Context, txn *finance.BankTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) SaveWithLock(ctx context.Context, txn *finance.BankTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) Count(ctx context.Context, filter finance.BankTransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankTransactionRepository) SumSigned(ctx context.Context, bankType finance.BankType, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, bankType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankTransactionRepository) SumByDirection(ctx context.Context, bankType finance.BankType, direction finance.TransactionDirection, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, bankType, direction, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankTransactionRepository) CountUnmatched(ctx context.Context, bankType finance.BankType) (int64, error) {
	args := m.Called(ctx, bankType)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ProcessingOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ProcessingOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.ProcessingOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ProcessingOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.ProcessingOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.ProcessingOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]order.ProcessingOrder, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]order.ProcessingOrder), args.Error(1)
}

func (m *MockOrderRepository) FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]order.ProcessingOrder, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]order.ProcessingOrder), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.ProcessingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.ProcessingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumOutstanding(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter partner.CustomerFilter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter partner.CustomerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter partner.SupplierFilter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter partner.SupplierFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
