package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebooks/backend/internal/domain/shared"
)

func TestNewBankAccount(t *testing.T) {
	acc, err := NewBankAccount(BankTypeGBank, "工商银行对公账户", decimal.RequireFromString("10000.00"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("10000.00")))

	// WeChat has no reconcilable statement and gets no account
	_, err = NewBankAccount(BankTypeWeChat, "微信", decimal.Zero)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_BANK_TYPE", domainErr.Code)

	_, err = NewBankAccount(BankTypeNBank, "", decimal.Zero)
	require.Error(t, err)
}

func TestBankAccount_CreditDebit(t *testing.T) {
	acc, err := NewBankAccount(BankTypeNBank, "农业银行对公账户", decimal.RequireFromString("1000.00"))
	require.NoError(t, err)

	require.NoError(t, acc.Credit(decimal.RequireFromString("500.00")))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1500.00")))

	// the book balance may go negative, missing entries are found during
	// reconciliation rather than blocked here
	require.NoError(t, acc.Debit(decimal.RequireFromString("2000.00")))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("-500.00")))

	require.Error(t, acc.Credit(decimal.Zero))
	require.Error(t, acc.Debit(decimal.RequireFromString("-10")))
	assert.Equal(t, 1, acc.Version)
}

func createTestTransaction(t *testing.T, direction TransactionDirection, amount string) *BankTransaction {
	t.Helper()
	txn, err := NewBankTransaction(
		BankTypeGBank,
		time.Date(2025, 3, 20, 0, 0, 0, 0, time.Local),
		decimal.RequireFromString(amount),
		direction,
		"宏达五金厂",
		"对公转账",
	)
	require.NoError(t, err)
	return txn
}

func TestNewBankTransaction(t *testing.T) {
	txn := createTestTransaction(t, DirectionCredit, "3000.00")
	assert.False(t, txn.IsMatched())
	assert.True(t, txn.SignedAmount().Equal(decimal.RequireFromString("3000.00")))

	debit := createTestTransaction(t, DirectionDebit, "800.00")
	assert.True(t, debit.SignedAmount().Equal(decimal.RequireFromString("-800.00")))

	_, err := NewBankTransaction(BankTypeWeChat, time.Now(), decimal.NewFromInt(1), DirectionCredit, "", "")
	require.Error(t, err)
	_, err = NewBankTransaction(BankTypeGBank, time.Now(), decimal.Zero, DirectionCredit, "", "")
	require.Error(t, err)
	_, err = NewBankTransaction(BankTypeGBank, time.Now(), decimal.NewFromInt(1), TransactionDirection("TRANSFER"), "", "")
	require.Error(t, err)
}

func TestBankTransaction_Match(t *testing.T) {
	t.Run("credit matches income once", func(t *testing.T) {
		txn := createTestTransaction(t, DirectionCredit, "3000.00")
		incomeID := uuid.New()

		require.NoError(t, txn.MatchToIncome(incomeID))
		assert.True(t, txn.IsMatched())
		require.NotNil(t, txn.MatchedIncomeID)
		assert.Equal(t, incomeID, *txn.MatchedIncomeID)

		err := txn.MatchToIncome(uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_MATCHED", domainErr.Code)
		assert.Equal(t, incomeID, *txn.MatchedIncomeID)
	})

	t.Run("debit matches expense, direction is enforced", func(t *testing.T) {
		txn := createTestTransaction(t, DirectionDebit, "800.00")

		err := txn.MatchToIncome(uuid.New())
		require.Error(t, err)

		require.NoError(t, txn.MatchToExpense(uuid.New()))
		assert.True(t, txn.IsMatched())

		err = txn.MatchToExpense(uuid.New())
		require.Error(t, err)
	})

	t.Run("unmatch clears both sides", func(t *testing.T) {
		txn := createTestTransaction(t, DirectionCredit, "3000.00")
		require.NoError(t, txn.MatchToIncome(uuid.New()))

		txn.Unmatch()
		assert.False(t, txn.IsMatched())
		require.NoError(t, txn.MatchToIncome(uuid.New()))
	})
}
