package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
)

func newLedgerService(incomeRepo *MockIncomeRepository, expenseRepo *MockExpenseRepository, accountRepo *MockBankAccountRepository, txnRepo *MockBankTransactionRepository) *LedgerService {
	return NewLedgerService(incomeRepo, expenseRepo, accountRepo, txnRepo, shared.NopTransactor{}, zap.NewNop())
}

func TestLedgerService_CreateBankAccount(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		accountRepo := new(MockBankAccountRepository)
		svc := newLedgerService(new(MockIncomeRepository), new(MockExpenseRepository), accountRepo, new(MockBankTransactionRepository))

		accountRepo.On("FindByBankType", mock.Anything, finance.BankTypeGBank).Return(nil, shared.ErrNotFound)
		accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.BankAccount")).Return(nil)

		resp, err := svc.CreateBankAccount(context.Background(), CreateBankAccountRequest{
			BankType:       "GBANK",
			AccountName:    "工商银行对公账户",
			OpeningBalance: decimal.RequireFromString("50000.00"),
		})
		require.NoError(t, err)
		assert.True(t, resp.Balance.Equal(decimal.RequireFromString("50000.00")))
		assert.True(t, resp.OpeningBalance.Equal(resp.Balance))
	})

	t.Run("rejects a duplicate account for the same bank", func(t *testing.T) {
		accountRepo := new(MockBankAccountRepository)
		svc := newLedgerService(new(MockIncomeRepository), new(MockExpenseRepository), accountRepo, new(MockBankTransactionRepository))

		existing, err := finance.NewBankAccount(finance.BankTypeGBank, "工商银行对公账户", decimal.Zero)
		require.NoError(t, err)
		accountRepo.On("FindByBankType", mock.Anything, finance.BankTypeGBank).Return(existing, nil)

		_, err = svc.CreateBankAccount(context.Background(), CreateBankAccountRequest{
			BankType:    "GBANK",
			AccountName: "工商银行对公账户",
		})
		require.Error(t, err)
		accountRepo.AssertNotCalled(t, "Save")
	})
}

func TestLedgerService_RecordBankTransaction(t *testing.T) {
	t.Run("income line credits the account atomically", func(t *testing.T) {
		accountRepo := new(MockBankAccountRepository)
		txnRepo := new(MockBankTransactionRepository)
		svc := newLedgerService(new(MockIncomeRepository), new(MockExpenseRepository), accountRepo, txnRepo)

		account, err := finance.NewBankAccount(finance.BankTypeGBank, "工商银行对公账户", decimal.RequireFromString("50000.00"))
		require.NoError(t, err)
		accountRepo.On("FindByBankType", mock.Anything, finance.BankTypeGBank).Return(account, nil)
		accountRepo.On("SaveWithLock", mock.Anything, account).Return(nil)
		txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.BankTransaction")).Return(nil)

		resp, err := svc.RecordBankTransaction(context.Background(), RecordBankTransactionRequest{
			BankType:        "GBANK",
			TransactionDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.Local),
			Amount:          decimal.RequireFromString("10000.00"),
			IsIncome:        true,
			Counterparty:    "宏达五金厂",
		})
		require.NoError(t, err)

		assert.Equal(t, finance.DirectionCredit, resp.Direction)
		assert.False(t, resp.Matched)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("60000.00")))
	})

	t.Run("outgoing line debits and may overdraw", func(t *testing.T) {
		accountRepo := new(MockBankAccountRepository)
		txnRepo := new(MockBankTransactionRepository)
		svc := newLedgerService(new(MockIncomeRepository), new(MockExpenseRepository), accountRepo, txnRepo)

		account, err := finance.NewBankAccount(finance.BankTypeNBank, "农业银行对公账户", decimal.RequireFromString("1000.00"))
		require.NoError(t, err)
		accountRepo.On("FindByBankType", mock.Anything, finance.BankTypeNBank).Return(account, nil)
		accountRepo.On("SaveWithLock", mock.Anything, account).Return(nil)
		txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.BankTransaction")).Return(nil)

		_, err = svc.RecordBankTransaction(context.Background(), RecordBankTransactionRequest{
			BankType:        "NBANK",
			TransactionDate: time.Now(),
			Amount:          decimal.RequireFromString("3000.00"),
			IsIncome:        false,
			Counterparty:    "供应商",
		})
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("-2000.00")))
	})

	t.Run("wechat has no account to move", func(t *testing.T) {
		accountRepo := new(MockBankAccountRepository)
		svc := newLedgerService(new(MockIncomeRepository), new(MockExpenseRepository), accountRepo, new(MockBankTransactionRepository))

		_, err := svc.RecordBankTransaction(context.Background(), RecordBankTransactionRequest{
			BankType:        "WECHAT",
			TransactionDate: time.Now(),
			Amount:          decimal.RequireFromString("100.00"),
			IsIncome:        true,
		})
		require.Error(t, err)
		accountRepo.AssertNotCalled(t, "SaveWithLock")
	})
}
