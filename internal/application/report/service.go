package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appfinance "github.com/platebooks/backend/internal/application/finance"
	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/order"
	"github.com/platebooks/backend/internal/domain/partner"
	"github.com/platebooks/backend/internal/domain/report"
	"github.com/platebooks/backend/internal/domain/shared"
)

var oneHundred = decimal.NewFromInt(100)

// Service derives every report fresh from the underlying records. Nothing
// here writes; generated reports may be memoized in Redis but are never the
// source of truth.
type Service struct {
	orderRepo    order.Repository
	incomeRepo   finance.IncomeRepository
	expenseRepo  finance.ExpenseRepository
	accountRepo  finance.BankAccountRepository
	txnRepo      finance.BankTransactionRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
	recon        *appfinance.ReconciliationService
	cache        *reportCache
	logger       *zap.Logger
}

// NewService creates a new report Service. A nil redis client disables
// report caching.
func NewService(
	orderRepo order.Repository,
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	accountRepo finance.BankAccountRepository,
	txnRepo finance.BankTransactionRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	recon *appfinance.ReconciliationService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		recon:        recon,
		cache:        newReportCache(redisClient, logger),
		logger:       logger,
	}
}

// reportFilter returns a single page large enough to hold a small shop's
// entire books, ordered stably for reproducible reports.
func reportFilter() shared.Filter {
	return shared.Filter{Page: 1, PageSize: 10000, OrderBy: "created_at", OrderDir: "asc"}
}

// Cache keys carry the period type: the same range rendered as a monthly
// and an annual statement are distinct reports.
func balanceSheetCacheKey(asOf time.Time, periodType report.PeriodType) string {
	return fmt.Sprintf("report:balance_sheet:%s:%s", periodType, asOf.Format("2006-01-02"))
}

func incomeStatementCacheKey(start, end time.Time, periodType report.PeriodType) string {
	return fmt.Sprintf("report:income_statement:%s:%s:%s",
		periodType, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// GenerateBalanceSheet builds the position statement as of a date. Equity is
// opening capital plus retained earnings; the balance check compares it
// against assets minus liabilities by exact decimal arithmetic, so any drift
// between the cash books and the accrual records surfaces as a non-zero
// difference.
func (s *Service) GenerateBalanceSheet(ctx context.Context, asOf time.Time, periodType report.PeriodType) (*report.BalanceSheet, error) {
	key := balanceSheetCacheKey(asOf, periodType)
	var cached report.BalanceSheet
	if s.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cash := decimal.Zero
	openingCapital := decimal.Zero
	for _, a := range accounts {
		cash = cash.Add(a.Balance)
		openingCapital = openingCapital.Add(a.OpeningBalance)
	}

	receivable, err := s.orderRepo.SumOutstanding(ctx, asOf)
	if err != nil {
		return nil, err
	}
	payable, err := s.expenseRepo.SumOutstanding(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var epoch time.Time
	incomeToDate, err := s.incomeRepo.SumByDateRange(ctx, epoch, asOf, nil)
	if err != nil {
		return nil, err
	}
	expenseToDate, err := s.expenseRepo.SumByDateRange(ctx, epoch, asOf, nil)
	if err != nil {
		return nil, err
	}
	retained := incomeToDate.Sub(expenseToDate)

	totalAssets := cash.Add(receivable)
	totalLiabilities := payable
	totalEquity := openingCapital.Add(retained)

	sheet := &report.BalanceSheet{
		AsOfDate:           asOf,
		PeriodType:         periodType,
		CashAndBank:        cash,
		AccountsReceivable: receivable,
		TotalAssets:        totalAssets,
		AccountsPayable:    payable,
		TotalLiabilities:   totalLiabilities,
		RetainedEarnings:   retained,
		TotalEquity:        totalEquity,
		BalanceCheck:       report.NewBalanceCheck(totalAssets, totalLiabilities.Add(totalEquity)),
	}
	s.cache.put(ctx, key, sheet)
	return sheet, nil
}

// GenerateIncomeStatement builds the profit and loss statement for an
// inclusive date range. Material and outsourcing categories go to cost of
// goods sold, everything else to operating expenses, so the two sections
// always sum to the period's total expenses.
func (s *Service) GenerateIncomeStatement(ctx context.Context, start, end time.Time, periodType report.PeriodType) (*report.IncomeStatement, error) {
	key := incomeStatementCacheKey(start, end, periodType)
	var cached report.IncomeStatement
	if s.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	revenueByBank, err := s.incomeRepo.SumByBank(ctx, start, end)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, amount := range revenueByBank {
		revenue = revenue.Add(amount)
	}

	byCategory, err := s.expenseRepo.SumByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	cogs := decimal.Zero
	opex := decimal.Zero
	cogsByCategory := make(map[finance.ExpenseCategory]decimal.Decimal)
	opexByCategory := make(map[finance.ExpenseCategory]decimal.Decimal)
	for category, amount := range byCategory {
		if category.IsCOGS() {
			cogs = cogs.Add(amount)
			cogsByCategory[category] = amount
		} else {
			opex = opex.Add(amount)
			opexByCategory[category] = amount
		}
	}

	grossProfit := revenue.Sub(cogs)
	netProfit := grossProfit.Sub(opex)
	grossMargin := decimal.Zero
	netMargin := decimal.Zero
	if !revenue.IsZero() {
		grossMargin = grossProfit.Div(revenue).Mul(oneHundred)
		netMargin = netProfit.Div(revenue).Mul(oneHundred)
	}

	stmt := &report.IncomeStatement{
		StartDate:         start,
		EndDate:           end,
		PeriodType:        periodType,
		OperatingRevenue:  revenue,
		RevenueByBank:     revenueByBank,
		CostOfGoodsSold:   cogs,
		COGSByCategory:    cogsByCategory,
		GrossProfit:       grossProfit,
		GrossMargin:       grossMargin,
		OperatingExpenses: opex,
		OpexByCategory:    opexByCategory,
		NetProfit:         netProfit,
		NetMargin:         netMargin,
	}
	s.cache.put(ctx, key, stmt)
	return stmt, nil
}

// MonthlyIncomeStatement builds the statement for one calendar month
func (s *Service) MonthlyIncomeStatement(ctx context.Context, year int, month time.Month) (*report.IncomeStatement, error) {
	start, end := report.MonthRange(year, month)
	return s.GenerateIncomeStatement(ctx, start, end, report.PeriodMonthly)
}

// QuarterlyIncomeStatement builds the statement for one calendar quarter
func (s *Service) QuarterlyIncomeStatement(ctx context.Context, year, quarter int) (*report.IncomeStatement, error) {
	start, end, err := report.QuarterRange(year, quarter)
	if err != nil {
		return nil, err
	}
	return s.GenerateIncomeStatement(ctx, start, end, report.PeriodQuarterly)
}

// AnnualIncomeStatement builds the statement for one calendar year
func (s *Service) AnnualIncomeStatement(ctx context.Context, year int) (*report.IncomeStatement, error) {
	start, end := report.YearRange(year)
	return s.GenerateIncomeStatement(ctx, start, end, report.PeriodAnnual)
}

// GenerateCashFlowStatement derives cash movement per account from the
// imported statement lines. Each account's ending balance equals its
// beginning balance plus the period's net flow.
func (s *Service) GenerateCashFlowStatement(ctx context.Context, start, end time.Time, periodType report.PeriodType) (*report.CashFlowStatement, error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var epoch time.Time
	beforeStart := start.Add(-time.Nanosecond)

	stmt := &report.CashFlowStatement{
		StartDate:    start,
		EndDate:      end,
		PeriodType:   periodType,
		Accounts:     make([]report.AccountCashFlow, 0, len(accounts)),
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
	}
	for _, account := range accounts {
		priorFlow, err := s.txnRepo.SumSigned(ctx, account.BankType, epoch, beforeStart)
		if err != nil {
			return nil, err
		}
		inflow, err := s.txnRepo.SumByDirection(ctx, account.BankType, finance.DirectionCredit, start, end)
		if err != nil {
			return nil, err
		}
		outflow, err := s.txnRepo.SumByDirection(ctx, account.BankType, finance.DirectionDebit, start, end)
		if err != nil {
			return nil, err
		}

		beginning := account.OpeningBalance.Add(priorFlow)
		net := inflow.Sub(outflow)
		stmt.Accounts = append(stmt.Accounts, report.AccountCashFlow{
			BankType:         account.BankType,
			BeginningBalance: beginning,
			Inflow:           inflow,
			Outflow:          outflow,
			NetCashFlow:      net,
			EndingBalance:    beginning.Add(net),
		})
		stmt.TotalInflow = stmt.TotalInflow.Add(inflow)
		stmt.TotalOutflow = stmt.TotalOutflow.Add(outflow)
	}
	stmt.NetCashFlow = stmt.TotalInflow.Sub(stmt.TotalOutflow)
	return stmt, nil
}

// GenerateReceivableReport lists every order with money still owed as of a
// date, bucketed by age. The bucket totals always re-sum to the report
// total.
func (s *Service) GenerateReceivableReport(ctx context.Context, asOf time.Time) (*report.ReceivableReport, error) {
	filter := order.Filter{Filter: reportFilter(), ToDate: &asOf, Outstanding: true}
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := report.NewAgingBuckets(report.DefaultAgingBoundaries)
	result := &report.ReceivableReport{
		AsOfDate:        asOf,
		TotalReceivable: decimal.Zero,
		Items:           make([]report.ReceivableItem, 0, len(orders)),
	}
	for i := range orders {
		o := &orders[i]
		outstanding := o.OutstandingAmount()
		age := o.AgeDays(asOf)
		result.Items = append(result.Items, report.ReceivableItem{
			OrderID:      o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerID:   o.CustomerID,
			CustomerName: o.CustomerName,
			Outstanding:  outstanding,
			AgeDays:      age,
		})
		result.TotalReceivable = result.TotalReceivable.Add(outstanding)
		idx := report.BucketIndex(buckets, age)
		buckets[idx].Amount = buckets[idx].Amount.Add(outstanding)
		buckets[idx].Count++
	}
	result.Aging = buckets
	return result, nil
}

// GeneratePayableReport lists every expense not yet fully paid as of a date,
// bucketed by age and rolled up per supplier.
func (s *Service) GeneratePayableReport(ctx context.Context, asOf time.Time) (*report.PayableReport, error) {
	filter := finance.ExpenseFilter{Filter: reportFilter(), ToDate: &asOf, Outstanding: true}
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := report.NewAgingBuckets(report.DefaultAgingBoundaries)
	result := &report.PayableReport{
		AsOfDate:     asOf,
		TotalPayable: decimal.Zero,
		Items:        make([]report.PayableItem, 0, len(expenses)),
	}
	statements := make(map[string]*report.SupplierStatement)
	for _, e := range expenses {
		outstanding := e.OutstandingAmount()
		age := e.AgeDays(asOf)
		result.Items = append(result.Items, report.PayableItem{
			ExpenseID:   e.ID,
			Category:    e.Category,
			SupplierID:  e.SupplierID,
			Description: e.Description,
			Outstanding: outstanding,
			AgeDays:     age,
		})
		result.TotalPayable = result.TotalPayable.Add(outstanding)
		idx := report.BucketIndex(buckets, age)
		buckets[idx].Amount = buckets[idx].Amount.Add(outstanding)
		buckets[idx].Count++

		if e.SupplierID == nil {
			continue
		}
		stmt, ok := statements[e.SupplierID.String()]
		if !ok {
			supplier, err := s.supplierRepo.FindByID(ctx, *e.SupplierID)
			if err != nil {
				return nil, err
			}
			stmt = &report.SupplierStatement{
				SupplierID:    supplier.ID,
				SupplierName:  supplier.Name,
				TotalBusiness: decimal.Zero,
				Paid:          decimal.Zero,
				Payable:       decimal.Zero,
			}
			statements[e.SupplierID.String()] = stmt
		}
		stmt.TotalBusiness = stmt.TotalBusiness.Add(e.Amount)
		stmt.Paid = stmt.Paid.Add(e.PaidAmount())
		stmt.Payable = stmt.Payable.Add(outstanding)
	}
	result.Aging = buckets

	result.Suppliers = make([]report.SupplierStatement, 0, len(statements))
	for _, stmt := range statements {
		result.Suppliers = append(result.Suppliers, *stmt)
	}
	sort.Slice(result.Suppliers, func(i, j int) bool {
		return result.Suppliers[i].Payable.GreaterThan(result.Suppliers[j].Payable)
	})
	return result, nil
}

// GenerateBankReconciliationReport compares book balances against
// statement-derived balances for one or all accounts
func (s *Service) GenerateBankReconciliationReport(ctx context.Context, bankType *finance.BankType) (*report.BankReconciliationReport, error) {
	return s.recon.Reconcile(ctx, bankType)
}

// GetCustomerRanking orders customers by revenue over an inclusive range.
// The report total is the period's full revenue, including income not linked
// to any customer, so shares may sum below one hundred.
func (s *Service) GetCustomerRanking(ctx context.Context, start, end time.Time, limit int) (*report.CustomerRankingReport, error) {
	totalRevenue, err := s.incomeRepo.SumByDateRange(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	byCustomer, err := s.incomeRepo.SumByCustomer(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rankings := make([]report.CustomerRanking, 0, len(byCustomer))
	for customerID, revenue := range byCustomer {
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		orderCount, err := s.orderRepo.Count(ctx, order.Filter{
			Filter:     reportFilter(),
			CustomerID: &customer.ID,
			FromDate:   &start,
			ToDate:     &end,
		})
		if err != nil {
			return nil, err
		}
		share := decimal.Zero
		if !totalRevenue.IsZero() {
			share = revenue.Div(totalRevenue).Mul(oneHundred)
		}
		rankings = append(rankings, report.CustomerRanking{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Revenue:      revenue,
			OrderCount:   orderCount,
			Share:        share,
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].Revenue.GreaterThan(rankings[j].Revenue)
	})
	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}

	return &report.CustomerRankingReport{
		StartDate:    start,
		EndDate:      end,
		TotalRevenue: totalRevenue,
		Rankings:     rankings,
	}, nil
}

// GetBusinessAnalysis builds the comprehensive period overview. Its revenue
// figure comes from the same sum as the customer ranking report, so the two
// always agree for the same range.
func (s *Service) GetBusinessAnalysis(ctx context.Context, start, end time.Time) (*report.BusinessAnalysisReport, error) {
	ranking, err := s.GetCustomerRanking(ctx, start, end, 5)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.expenseRepo.SumByDateRange(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.Count(ctx, order.Filter{Filter: reportFilter(), FromDate: &start, ToDate: &end})
	if err != nil {
		return nil, err
	}
	completedCount := int64(0)
	for _, status := range []order.Status{order.StatusCompleted, order.StatusDelivered} {
		st := status
		n, err := s.orderRepo.Count(ctx, order.Filter{Filter: reportFilter(), FromDate: &start, ToDate: &end, Status: &st})
		if err != nil {
			return nil, err
		}
		completedCount += n
	}

	netProfit := ranking.TotalRevenue.Sub(totalExpense)
	margin := decimal.Zero
	if !ranking.TotalRevenue.IsZero() {
		margin = netProfit.Div(ranking.TotalRevenue).Mul(oneHundred)
	}

	return &report.BusinessAnalysisReport{
		StartDate:      start,
		EndDate:        end,
		TotalRevenue:   ranking.TotalRevenue,
		TotalExpense:   totalExpense,
		NetProfit:      netProfit,
		ProfitMargin:   margin,
		OrderCount:     orderCount,
		CompletedCount: completedCount,
		TopCustomers:   ranking.Rankings,
	}, nil
}
