package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAccount(t *testing.T, bankType finance.BankType, opening string) *finance.BankAccount {
	t.Helper()
	account, err := finance.NewBankAccount(bankType, bankType.Label()+"对公账户", d(opening))
	require.NoError(t, err)
	return account
}

func mustTxn(t *testing.T, bankType finance.BankType, day time.Time, amount string, direction finance.TransactionDirection) *finance.BankTransaction {
	t.Helper()
	txn, err := finance.NewBankTransaction(bankType, day, d(amount), direction, "宏达五金厂", "货款")
	require.NoError(t, err)
	return txn
}

func TestGormBankAccountRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBankAccountRepository(db)
	ctx := context.Background()

	gbank := mustAccount(t, finance.BankTypeGBank, "50000")
	nbank := mustAccount(t, finance.BankTypeNBank, "30000")
	require.NoError(t, repo.Save(ctx, gbank))
	require.NoError(t, repo.Save(ctx, nbank))

	t.Run("finds by bank type", func(t *testing.T) {
		found, err := repo.FindByBankType(ctx, finance.BankTypeGBank)
		require.NoError(t, err)
		assert.Equal(t, gbank.ID, found.ID)
		requireDecimalEqual(t, "50000", found.Balance)
	})

	t.Run("missing bank type reports not found", func(t *testing.T) {
		_, err := repo.FindByBankType(ctx, finance.BankTypeWeChat)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists all accounts", func(t *testing.T) {
		accounts, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, finance.BankTypeGBank, accounts[0].BankType)
		assert.Equal(t, finance.BankTypeNBank, accounts[1].BankType)
	})

	t.Run("optimistic lock guards concurrent balance updates", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, gbank.ID)
		require.NoError(t, err)

		gbank.Credit(d("1000"))
		require.NoError(t, repo.SaveWithLock(ctx, gbank))

		stale.Credit(d("500"))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, gbank.ID)
		require.NoError(t, err)
		requireDecimalEqual(t, "51000", found.Balance)
	})
}

func TestGormBankTransactionRepository_FindAndMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBankTransactionRepository(db)
	ctx := context.Background()

	credit := mustTxn(t, finance.BankTypeGBank, date(2024, 3, 5), "10000", finance.DirectionCredit)
	debit := mustTxn(t, finance.BankTypeGBank, date(2024, 3, 8), "4000", finance.DirectionDebit)
	other := mustTxn(t, finance.BankTypeNBank, date(2024, 3, 9), "2000", finance.DirectionCredit)

	for _, txn := range []*finance.BankTransaction{credit, debit, other} {
		require.NoError(t, repo.Save(ctx, txn))
	}

	t.Run("unmatched lines per account", func(t *testing.T) {
		txns, err := repo.FindUnmatched(ctx, finance.BankTypeGBank)
		require.NoError(t, err)
		assert.Len(t, txns, 2)

		count, err := repo.CountUnmatched(ctx, finance.BankTypeGBank)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("matching clears a line from the unmatched set", func(t *testing.T) {
		incomeID := uuid.New()
		require.NoError(t, credit.MatchToIncome(incomeID))
		require.NoError(t, repo.SaveWithLock(ctx, credit))

		txns, err := repo.FindUnmatched(ctx, finance.BankTypeGBank)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, debit.ID, txns[0].ID)

		found, err := repo.FindByID(ctx, credit.ID)
		require.NoError(t, err)
		require.NotNil(t, found.MatchedIncomeID)
		assert.Equal(t, incomeID, *found.MatchedIncomeID)
	})

	t.Run("unmatching puts the line back", func(t *testing.T) {
		credit.Unmatch()
		require.NoError(t, repo.SaveWithLock(ctx, credit))

		found, err := repo.FindByID(ctx, credit.ID)
		require.NoError(t, err)
		assert.Nil(t, found.MatchedIncomeID)

		count, err := repo.CountUnmatched(ctx, finance.BankTypeGBank)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filter by direction", func(t *testing.T) {
		direction := finance.DirectionDebit
		txns, err := repo.FindAll(ctx, finance.BankTransactionFilter{
			Filter:    shared.DefaultFilter(),
			Direction: &direction,
		})
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, debit.ID, txns[0].ID)
	})
}

func TestGormBankTransactionRepository_Sums(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBankTransactionRepository(db)
	ctx := context.Background()

	lines := []*finance.BankTransaction{
		mustTxn(t, finance.BankTypeGBank, date(2024, 3, 5), "10000", finance.DirectionCredit),
		mustTxn(t, finance.BankTypeGBank, date(2024, 3, 12), "4000", finance.DirectionDebit),
		mustTxn(t, finance.BankTypeGBank, date(2024, 3, 20), "2500", finance.DirectionCredit),
		mustTxn(t, finance.BankTypeNBank, date(2024, 3, 25), "7777", finance.DirectionCredit),
		mustTxn(t, finance.BankTypeGBank, date(2024, 5, 1), "9999", finance.DirectionCredit),
	}
	for _, txn := range lines {
		require.NoError(t, repo.Save(ctx, txn))
	}

	from := date(2024, 3, 1)
	to := date(2024, 3, 31)

	t.Run("signed net", func(t *testing.T) {
		total, err := repo.SumSigned(ctx, finance.BankTypeGBank, from, to)
		require.NoError(t, err)
		requireDecimalEqual(t, "8500", total)
	})

	t.Run("per direction totals", func(t *testing.T) {
		inflow, err := repo.SumByDirection(ctx, finance.BankTypeGBank, finance.DirectionCredit, from, to)
		require.NoError(t, err)
		requireDecimalEqual(t, "12500", inflow)

		outflow, err := repo.SumByDirection(ctx, finance.BankTypeGBank, finance.DirectionDebit, from, to)
		require.NoError(t, err)
		requireDecimalEqual(t, "4000", outflow)
	})

	t.Run("empty range sums to zero", func(t *testing.T) {
		total, err := repo.SumSigned(ctx, finance.BankTypeWeChat, from, to)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}
