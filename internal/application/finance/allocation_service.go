package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
)

// AllocationService links money to what it pays for: incoming receipts to
// processing orders, outgoing payments to expenses, and receipts to the
// costs they cover. Every operation validates fully before mutating and
// persists all affected records in one transaction.
type AllocationService struct {
	incomeRepo  finance.IncomeRepository
	expenseRepo finance.ExpenseRepository
	orderRepo   order.Repository
	transactor  shared.Transactor
	logger      *zap.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	orderRepo order.Repository,
	transactor shared.Transactor,
	logger *zap.Logger,
) *AllocationService {
	return &AllocationService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		orderRepo:   orderRepo,
		transactor:  transactor,
		logger:      logger,
	}
}

// AllocateIncomeToOrders splits an income across processing orders. The whole
// batch succeeds or nothing changes: the income's allocation list, every
// order's received amount, and all invariant checks move together.
func (s *AllocationService) AllocateIncomeToOrders(ctx context.Context, incomeID uuid.UUID, req AllocateIncomeRequest) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Allocations))
	for _, item := range req.Allocations {
		ids = append(ids, item.OrderID)
	}
	orders, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*order.ProcessingOrder, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	batchTotal := decimal.Zero
	for _, item := range req.Allocations {
		if _, ok := byID[item.OrderID]; !ok {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND",
				fmt.Sprintf("order not found: %s", item.OrderID))
		}
		batchTotal = batchTotal.Add(item.Amount)
	}
	if batchTotal.GreaterThan(income.UnallocatedAmount()) {
		return nil, shared.NewDomainError("ALLOCATION_EXCEEDS_INCOME",
			fmt.Sprintf("allocation total %s exceeds unallocated income %s",
				batchTotal.StringFixed(2), income.UnallocatedAmount().StringFixed(2)))
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range req.Allocations {
			o := byID[item.OrderID]
			if err := o.ApplyReceipt(valueobject.NewMoneyCNY(item.Amount)); err != nil {
				return err
			}
			if err := income.Allocate(item.OrderID, item.Amount); err != nil {
				return err
			}
			if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
				return err
			}
		}
		return s.incomeRepo.SaveWithLock(ctx, income)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("income allocated to orders",
		zap.String("income_id", incomeID.String()),
		zap.Int("orders", len(req.Allocations)),
		zap.String("total", batchTotal.StringFixed(2)))

	resp := ToIncomeResponse(income)
	return &resp, nil
}

// AllocatePaymentToExpenses splits one outgoing payment across expense
// records. The allocation total may not exceed the payment amount; a
// violation rejects the whole batch and no expense changes.
func (s *AllocationService) AllocatePaymentToExpenses(ctx context.Context, req AllocatePaymentRequest) ([]ExpenseResponse, error) {
	bankType := finance.BankType(req.BankType)
	if !bankType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BANK_TYPE",
			fmt.Sprintf("unknown bank type: %s", req.BankType))
	}
	if req.PaymentAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "payment amount must be positive")
	}

	batchTotal := decimal.Zero
	for _, item := range req.Allocations {
		batchTotal = batchTotal.Add(item.Amount)
	}
	if batchTotal.GreaterThan(req.PaymentAmount) {
		return nil, shared.NewDomainError("EXCEEDS_PAYMENT_AMOUNT",
			fmt.Sprintf("分配总额 %s 超过付款金额 %s",
				batchTotal.StringFixed(2), req.PaymentAmount.StringFixed(2)))
	}

	ids := make([]uuid.UUID, 0, len(req.Allocations))
	for _, item := range req.Allocations {
		ids = append(ids, item.ExpenseID)
	}
	expenses, err := s.expenseRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*finance.Expense, len(expenses))
	for i := range expenses {
		byID[expenses[i].ID] = expenses[i]
	}
	for _, item := range req.Allocations {
		if _, ok := byID[item.ExpenseID]; !ok {
			return nil, shared.NewDomainError("EXPENSE_NOT_FOUND",
				fmt.Sprintf("expense not found: %s", item.ExpenseID))
		}
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range req.Allocations {
			e := byID[item.ExpenseID]
			if err := e.ApplyPayment(req.PaymentDate, item.Amount, bankType); err != nil {
				return err
			}
			if err := s.expenseRepo.SaveWithLock(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment allocated to expenses",
		zap.Int("expenses", len(req.Allocations)),
		zap.String("total", batchTotal.StringFixed(2)))

	items := make([]ExpenseResponse, 0, len(req.Allocations))
	for _, item := range req.Allocations {
		items = append(items, ToExpenseResponse(byID[item.ExpenseID]))
	}
	return items, nil
}

// MatchIncomeToExpenses nets an income against expense records. The link is
// informational only; the income's notes record how many expenses were
// covered.
func (s *AllocationService) MatchIncomeToExpenses(ctx context.Context, incomeID uuid.UUID, req MatchExpensesRequest) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Matches))
	for _, item := range req.Matches {
		ids = append(ids, item.ExpenseID)
	}
	expenses, err := s.expenseRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(expenses) != len(ids) {
		found := make(map[uuid.UUID]bool, len(expenses))
		for _, e := range expenses {
			found[e.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, shared.NewDomainError("EXPENSE_NOT_FOUND",
					fmt.Sprintf("expense not found: %s", id))
			}
		}
	}

	matches := make([]finance.ExpenseMatch, 0, len(req.Matches))
	for _, item := range req.Matches {
		matches = append(matches, finance.ExpenseMatch{ExpenseID: item.ExpenseID, Amount: item.Amount})
	}
	if err := income.MatchExpenses(matches); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.SaveWithLock(ctx, income); err != nil {
		return nil, err
	}

	resp := ToIncomeResponse(income)
	return &resp, nil
}
