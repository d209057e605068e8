package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/report"
	"github.com/platebooks/backend/internal/domain/shared"
)

// AccrualService records income and expenses on an accrual basis. The ledger
// date is always the occurrence date; cash that moved early is annotated as
// an advance rather than shifting the date.
type AccrualService struct {
	incomeRepo   finance.IncomeRepository
	expenseRepo  finance.ExpenseRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewAccrualService creates a new AccrualService
func NewAccrualService(
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	logger *zap.Logger,
) *AccrualService {
	return &AccrualService{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// RecordIncome records income dated at its occurrence. A payment date before
// the occurrence date makes it an advance receipt with the 预收款 marker.
func (s *AccrualService) RecordIncome(ctx context.Context, req RecordIncomeRequest) (*IncomeResponse, error) {
	bankType := finance.BankType(req.BankType)

	var income *finance.Income
	var err error
	if req.PaymentDate != nil && req.PaymentDate.Before(req.IncomeDate) {
		income, err = finance.NewAdvanceIncome(req.IncomeDate, *req.PaymentDate, req.Amount, bankType, req.Description)
	} else {
		income, err = finance.NewIncome(req.IncomeDate, req.Amount, bankType, req.Description)
	}
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		income.SetCustomer(customer.ID, customer.Name)
	}
	if req.HasInvoice {
		income.MarkInvoiced()
	}
	if req.Notes != "" {
		if income.Notes != "" {
			income.SetNotes(income.Notes + "；" + req.Notes)
		} else {
			income.SetNotes(req.Notes)
		}
	}

	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}

	s.logger.Info("income recorded",
		zap.String("bank_type", string(income.BankType)),
		zap.String("amount", income.Amount.StringFixed(2)),
		zap.Bool("advance", income.IsAdvance))

	resp := ToIncomeResponse(income)
	return &resp, nil
}

// RecordExpense records an expense dated at its occurrence. A payment date
// before the occurrence date makes it an advance payment with the 预付款
// marker.
func (s *AccrualService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*ExpenseResponse, error) {
	bankType := finance.BankType(req.BankType)
	category := finance.ExpenseCategory(req.Category)

	var expense *finance.Expense
	var err error
	if req.PaymentDate != nil && req.PaymentDate.Before(req.ExpenseDate) {
		expense, err = finance.NewAdvanceExpense(req.ExpenseDate, *req.PaymentDate, req.Amount, category, bankType, req.Description)
	} else {
		expense, err = finance.NewExpense(req.ExpenseDate, req.Amount, category, bankType, req.Description)
	}
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		supplier, err := s.supplierRepo.FindByID(ctx, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		expense.SetSupplier(supplier.ID)
	}
	if req.Notes != "" {
		if expense.Notes != "" {
			expense.SetNotes(expense.Notes + "；" + req.Notes)
		} else {
			expense.SetNotes(req.Notes)
		}
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("category", string(expense.Category)),
		zap.String("amount", expense.Amount.StringFixed(2)),
		zap.Bool("advance", expense.IsAdvance))

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// GetPrepaymentAnalysis nets advance receipts against advance payments as of
// a date. The figures are derived fresh from the records on every call.
func (s *AccrualService) GetPrepaymentAnalysis(ctx context.Context, asOf time.Time) (*report.PrepaymentAnalysis, error) {
	incomes, err := s.incomeRepo.FindAdvances(ctx, asOf)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindAdvances(ctx, asOf)
	if err != nil {
		return nil, err
	}

	receipts := report.AdvanceSummary{TotalAmount: decimal.Zero}
	for _, i := range incomes {
		receipts.Count++
		receipts.TotalAmount = receipts.TotalAmount.Add(i.Amount)
	}
	payments := report.AdvanceSummary{TotalAmount: decimal.Zero}
	for _, e := range expenses {
		payments.Count++
		payments.TotalAmount = payments.TotalAmount.Add(e.Amount)
	}

	return &report.PrepaymentAnalysis{
		AsOfDate:        asOf,
		AdvanceReceipts: receipts,
		AdvancePayments: payments,
		NetAdvance:      receipts.TotalAmount.Sub(payments.TotalAmount),
	}, nil
}

// GetPeriodSummary totals income and expense by occurrence date over an
// inclusive range. Profit margin on zero income is zero, never a division
// error.
func (s *AccrualService) GetPeriodSummary(ctx context.Context, start, end time.Time) (*report.AccrualPeriodSummary, error) {
	incomeTotal, err := s.incomeRepo.SumByDateRange(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	incomeCount, err := s.incomeRepo.Count(ctx, finance.IncomeFilter{FromDate: &start, ToDate: &end, Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.expenseRepo.SumByDateRange(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	expenseCount, err := s.expenseRepo.Count(ctx, finance.ExpenseFilter{FromDate: &start, ToDate: &end, Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}

	netProfit := incomeTotal.Sub(expenseTotal)
	margin := decimal.Zero
	if !incomeTotal.IsZero() {
		margin = netProfit.Div(incomeTotal).Mul(decimal.NewFromInt(100))
	}

	return &report.AccrualPeriodSummary{
		StartDate:    start,
		EndDate:      end,
		Income:       report.PeriodTotals{Total: incomeTotal, Count: incomeCount},
		Expense:      report.PeriodTotals{Total: expenseTotal, Count: expenseCount},
		NetProfit:    netProfit,
		ProfitMargin: margin,
	}, nil
}
