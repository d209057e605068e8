package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
)

func newAllocationService(incomeRepo *MockIncomeRepository, expenseRepo *MockExpenseRepository, orderRepo *MockOrderRepository) *AllocationService {
	return NewAllocationService(incomeRepo, expenseRepo, orderRepo, shared.NopTransactor{}, zap.NewNop())
}

func newTestOrder(t *testing.T, quantity, unitPrice string) *order.ProcessingOrder {
	t.Helper()
	o, err := order.NewProcessingOrder("PO-2025-00001", uuid.New(), "宏达五金厂", "铝件阳极氧化",
		decimal.RequireFromString(quantity), order.PricingUnitPiece,
		valueobject.NewMoneyCNY(decimal.RequireFromString(unitPrice)),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	return o
}

func newTestIncome(t *testing.T, amount string) *finance.Income {
	t.Helper()
	inc, err := finance.NewIncome(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		decimal.RequireFromString(amount), finance.BankTypeGBank, "货款")
	require.NoError(t, err)
	return inc
}

func TestAllocationService_AllocateIncomeToOrders(t *testing.T) {
	t.Run("partial allocation leaves the order total untouched", func(t *testing.T) {
		incomeRepo := new(MockIncomeRepository)
		orderRepo := new(MockOrderRepository)
		svc := newAllocationService(incomeRepo, new(MockExpenseRepository), orderRepo)

		o := newTestOrder(t, "100", "10.50") // total 1050.00
		inc := newTestIncome(t, "500.00")

		incomeRepo.On("FindByID", mock.Anything, inc.ID).Return(inc, nil)
		orderRepo.On("FindByIDs", mock.Anything, []uuid.UUID{o.ID}).Return([]order.ProcessingOrder{*o}, nil)
		orderRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*order.ProcessingOrder")).Return(nil)
		incomeRepo.On("SaveWithLock", mock.Anything, inc).Return(nil)

		resp, err := svc.AllocateIncomeToOrders(context.Background(), inc.ID, AllocateIncomeRequest{
			Allocations: []AllocationItem{{OrderID: o.ID, Amount: decimal.RequireFromString("500.00")}},
		})
		require.NoError(t, err)

		assert.True(t, resp.Unallocated.IsZero())
		assert.True(t, inc.AmountForOrder(o.ID).Equal(decimal.RequireFromString("500.00")))
		savedOrder := orderRepo.Calls[1].Arguments.Get(1).(*order.ProcessingOrder)
		assert.True(t, savedOrder.ReceivedAmount.Equal(decimal.RequireFromString("500.00")))
		assert.True(t, savedOrder.TotalAmount.Equal(decimal.RequireFromString("1050.00")))
	})

	t.Run("splits across two orders in one batch", func(t *testing.T) {
		incomeRepo := new(MockIncomeRepository)
		orderRepo := new(MockOrderRepository)
		svc := newAllocationService(incomeRepo, new(MockExpenseRepository), orderRepo)

		orderA := newTestOrder(t, "300", "10.00")
		orderB := newTestOrder(t, "200", "10.00")
		inc := newTestIncome(t, "5000.00")

		incomeRepo.On("FindByID", mock.Anything, inc.ID).Return(inc, nil)
		orderRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]order.ProcessingOrder{*orderA, *orderB}, nil)
		orderRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*order.ProcessingOrder")).Return(nil)
		incomeRepo.On("SaveWithLock", mock.Anything, inc).Return(nil)

		resp, err := svc.AllocateIncomeToOrders(context.Background(), inc.ID, AllocateIncomeRequest{
			Allocations: []AllocationItem{
				{OrderID: orderA.ID, Amount: decimal.RequireFromString("3000.00")},
				{OrderID: orderB.ID, Amount: decimal.RequireFromString("2000.00")},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.Unallocated.IsZero())
		orderRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})

	t.Run("rejects a batch past the unallocated amount before touching anything", func(t *testing.T) {
		incomeRepo := new(MockIncomeRepository)
		orderRepo := new(MockOrderRepository)
		svc := newAllocationService(incomeRepo, new(MockExpenseRepository), orderRepo)

		o := newTestOrder(t, "1000", "10.00")
		inc := newTestIncome(t, "500.00")

		incomeRepo.On("FindByID", mock.Anything, inc.ID).Return(inc, nil)
		orderRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]order.ProcessingOrder{*o}, nil)

		_, err := svc.AllocateIncomeToOrders(context.Background(), inc.ID, AllocateIncomeRequest{
			Allocations: []AllocationItem{{OrderID: o.ID, Amount: decimal.RequireFromString("600.00")}},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALLOCATION_EXCEEDS_INCOME", domainErr.Code)
		assert.Empty(t, inc.Allocations)
		orderRepo.AssertNotCalled(t, "SaveWithLock")
		incomeRepo.AssertNotCalled(t, "SaveWithLock")
	})

	t.Run("rejects allocation to an unknown order", func(t *testing.T) {
		incomeRepo := new(MockIncomeRepository)
		orderRepo := new(MockOrderRepository)
		svc := newAllocationService(incomeRepo, new(MockExpenseRepository), orderRepo)

		inc := newTestIncome(t, "500.00")
		incomeRepo.On("FindByID", mock.Anything, inc.ID).Return(inc, nil)
		orderRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]order.ProcessingOrder{}, nil)

		_, err := svc.AllocateIncomeToOrders(context.Background(), inc.ID, AllocateIncomeRequest{
			Allocations: []AllocationItem{{OrderID: uuid.New(), Amount: decimal.RequireFromString("100.00")}},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORDER_NOT_FOUND", domainErr.Code)
	})
}

func TestAllocationService_AllocatePaymentToExpenses(t *testing.T) {
	t.Run("rejects over-allocation and leaves expenses unchanged", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		svc := newAllocationService(new(MockIncomeRepository), expenseRepo, new(MockOrderRepository))

		exp, err := finance.NewExpense(time.Now(), decimal.RequireFromString("2000.00"),
			finance.ExpenseCategoryThreeAcids, finance.BankTypeGBank, "三酸采购")
		require.NoError(t, err)

		_, err = svc.AllocatePaymentToExpenses(context.Background(), AllocatePaymentRequest{
			PaymentDate:   time.Now(),
			PaymentAmount: decimal.RequireFromString("1000.00"),
			BankType:      "GBANK",
			Allocations:   []ExpenseAllocationItem{{ExpenseID: exp.ID, Amount: decimal.RequireFromString("2000.00")}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_PAYMENT_AMOUNT", domainErr.Code)
		assert.Contains(t, domainErr.Message, "超过付款金额")
		assert.True(t, exp.PaidAmount().IsZero())
		expenseRepo.AssertNotCalled(t, "SaveWithLock")
	})

	t.Run("applies installments across expenses", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		svc := newAllocationService(new(MockIncomeRepository), expenseRepo, new(MockOrderRepository))

		expA, err := finance.NewExpense(time.Now(), decimal.RequireFromString("1500.00"),
			finance.ExpenseCategoryThreeAcids, finance.BankTypeGBank, "三酸采购")
		require.NoError(t, err)
		expB, err := finance.NewExpense(time.Now(), decimal.RequireFromString("800.00"),
			finance.ExpenseCategoryFixtures, finance.BankTypeGBank, "挂具")
		require.NoError(t, err)

		expenseRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*finance.Expense{expA, expB}, nil)
		expenseRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)

		resp, err := svc.AllocatePaymentToExpenses(context.Background(), AllocatePaymentRequest{
			PaymentDate:   time.Now(),
			PaymentAmount: decimal.RequireFromString("2000.00"),
			BankType:      "NBANK",
			Allocations: []ExpenseAllocationItem{
				{ExpenseID: expA.ID, Amount: decimal.RequireFromString("1500.00")},
				{ExpenseID: expB.ID, Amount: decimal.RequireFromString("500.00")},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.True(t, expA.IsFullyPaid())
		assert.True(t, expB.OutstandingAmount().Equal(decimal.RequireFromString("300.00")))
	})
}

func TestAllocationService_MatchIncomeToExpenses(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	expenseRepo := new(MockExpenseRepository)
	svc := newAllocationService(incomeRepo, expenseRepo, new(MockOrderRepository))

	inc := newTestIncome(t, "10000.00")
	expA, err := finance.NewExpense(time.Now(), decimal.RequireFromString("3000.00"),
		finance.ExpenseCategoryOutsourcing, finance.BankTypeGBank, "外协")
	require.NoError(t, err)
	expB, err := finance.NewExpense(time.Now(), decimal.RequireFromString("5000.00"),
		finance.ExpenseCategorySalary, finance.BankTypeGBank, "工资")
	require.NoError(t, err)

	incomeRepo.On("FindByID", mock.Anything, inc.ID).Return(inc, nil)
	expenseRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*finance.Expense{expA, expB}, nil)
	incomeRepo.On("SaveWithLock", mock.Anything, inc).Return(nil)

	resp, err := svc.MatchIncomeToExpenses(context.Background(), inc.ID, MatchExpensesRequest{
		Matches: []ExpenseAllocationItem{
			{ExpenseID: expA.ID, Amount: decimal.RequireFromString("3000.00")},
			{ExpenseID: expB.ID, Amount: decimal.RequireFromString("5000.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Matched.TotalMatched().Equal(decimal.RequireFromString("8000.00")))
	assert.Contains(t, resp.Notes, "匹配到2笔支出")
}
