package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, number string, customerID uuid.UUID, quantity, unitPrice string, orderDate time.Time) *order.ProcessingOrder {
	t.Helper()
	o, err := order.NewProcessingOrder(
		number, customerID, "宏达五金厂", "铝件阳极氧化",
		d(quantity), order.PricingUnitPiece,
		valueobject.NewMoneyCNY(d(unitPrice)), orderDate,
	)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	o := mustOrder(t, "PO-2024-00001", customerID, "500", "3.50", date(2024, 3, 10))
	o.SetProcessSteps([]string{"除油", "氧化", "封闭"}, []string{"喷砂"})
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-2024-00001", found.OrderNumber)
	requireDecimalEqual(t, "1750", found.TotalAmount)
	assert.Equal(t, order.ProcessSteps{"除油", "氧化", "封闭"}, found.InHouseSteps)
	assert.Equal(t, order.ProcessSteps{"喷砂"}, found.OutsourcedSteps)

	byNumber, err := repo.FindByOrderNumber(ctx, "PO-2024-00001")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)

	_, err = repo.FindByOrderNumber(ctx, "PO-2024-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := mustOrder(t, "PO-2024-00002", uuid.New(), "100", "5.00", date(2024, 4, 1))
	require.NoError(t, repo.Save(ctx, o))

	t.Run("persists when version matches", func(t *testing.T) {
		require.NoError(t, o.ApplyReceipt(valueobject.NewMoneyCNY(d("200"))))
		require.NoError(t, repo.SaveWithLock(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		requireDecimalEqual(t, "200", found.ReceivedAmount)
		assert.Equal(t, o.Version, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		require.NoError(t, o.ApplyReceipt(valueobject.NewMoneyCNY(d("100"))))
		require.NoError(t, repo.SaveWithLock(ctx, o))

		require.NoError(t, stale.ApplyReceipt(valueobject.NewMoneyCNY(d("50"))))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		requireDecimalEqual(t, "300", found.ReceivedAmount)
	})
}

func TestGormOrderRepository_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customerA := uuid.New()
	customerB := uuid.New()

	first := mustOrder(t, "PO-2024-00001", customerA, "100", "10", date(2024, 1, 15))
	require.NoError(t, first.ApplyReceipt(valueobject.NewMoneyCNY(d("1000"))))
	second := mustOrder(t, "PO-2024-00002", customerA, "200", "10", date(2024, 2, 15))
	third := mustOrder(t, "PO-2024-00003", customerB, "300", "10", date(2024, 3, 15))

	for _, o := range []*order.ProcessingOrder{first, second, third} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("by customer", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, order.Filter{Filter: shared.DefaultFilter(), CustomerID: &customerA})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("by date range", func(t *testing.T) {
		from := date(2024, 2, 1)
		to := date(2024, 2, 28)
		orders, err := repo.FindAll(ctx, order.Filter{Filter: shared.DefaultFilter(), FromDate: &from, ToDate: &to})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "PO-2024-00002", orders[0].OrderNumber)
	})

	t.Run("outstanding only", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, order.Filter{Filter: shared.DefaultFilter(), Outstanding: true})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
		for _, o := range orders {
			assert.True(t, o.OutstandingAmount().IsPositive())
		}
	})

	t.Run("outstanding by customer", func(t *testing.T) {
		orders, err := repo.FindOutstandingByCustomer(ctx, customerA)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "PO-2024-00002", orders[0].OrderNumber)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx, order.Filter{Filter: shared.DefaultFilter(), CustomerID: &customerB})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormOrderRepository_SumOutstanding(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customerID := uuid.New()

	paid := mustOrder(t, "PO-2024-00001", customerID, "100", "10", date(2024, 1, 10))
	require.NoError(t, paid.ApplyReceipt(valueobject.NewMoneyCNY(d("1000"))))
	partial := mustOrder(t, "PO-2024-00002", customerID, "200", "10", date(2024, 2, 10))
	require.NoError(t, partial.ApplyReceipt(valueobject.NewMoneyCNY(d("500"))))
	future := mustOrder(t, "PO-2024-00003", customerID, "50", "10", date(2024, 6, 10))

	for _, o := range []*order.ProcessingOrder{paid, partial, future} {
		require.NoError(t, repo.Save(ctx, o))
	}

	total, err := repo.SumOutstanding(ctx, date(2024, 3, 31))
	require.NoError(t, err)
	requireDecimalEqual(t, "1500", total)

	byCustomer, err := repo.SumOutstandingByCustomer(ctx, customerID)
	require.NoError(t, err)
	requireDecimalEqual(t, "2000", byCustomer)
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	year := time.Now().Year()

	first, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-00001", year), first)

	o := mustOrder(t, first, uuid.New(), "10", "8", date(year, 5, 1))
	require.NoError(t, repo.Save(ctx, o))

	second, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-00002", year), second)
}
