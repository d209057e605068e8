package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/report"
	"github.com/platebooks/backend/internal/domain/shared"
)

// ReconciliationOption configures a ReconciliationService
type ReconciliationOption func(*ReconciliationService)

// WithStrictAmountMatch makes matching require the statement line amount to
// equal the book record amount. The default is permissive: real bank
// postings bundle and split amounts, and the per-account difference figure
// surfaces any drift.
func WithStrictAmountMatch() ReconciliationOption {
	return func(s *ReconciliationService) {
		s.strictAmountMatch = true
	}
}

// ReconciliationService matches statement lines to book records and compares
// each account's book balance against its statement-derived balance.
type ReconciliationService struct {
	txnRepo     finance.BankTransactionRepository
	accountRepo finance.BankAccountRepository
	incomeRepo  finance.IncomeRepository
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger

	strictAmountMatch bool
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	txnRepo finance.BankTransactionRepository,
	accountRepo finance.BankAccountRepository,
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	logger *zap.Logger,
	opts ...ReconciliationOption,
) *ReconciliationService {
	s := &ReconciliationService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MatchTransactionToIncome links a credit statement line to an income record
func (s *ReconciliationService) MatchTransactionToIncome(ctx context.Context, txnID, incomeID uuid.UUID) (*BankTransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if s.strictAmountMatch && !txn.Amount.Equal(income.Amount) {
		return nil, shared.NewDomainError("AMOUNT_MISMATCH",
			fmt.Sprintf("transaction amount %s does not equal income amount %s",
				txn.Amount.StringFixed(2), income.Amount.StringFixed(2)))
	}

	if err := txn.MatchToIncome(income.ID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.SaveWithLock(ctx, txn); err != nil {
		return nil, err
	}

	resp := ToBankTransactionResponse(txn)
	return &resp, nil
}

// MatchTransactionToExpense links a debit statement line to an expense record
func (s *ReconciliationService) MatchTransactionToExpense(ctx context.Context, txnID, expenseID uuid.UUID) (*BankTransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if s.strictAmountMatch && !txn.Amount.Equal(expense.Amount) {
		return nil, shared.NewDomainError("AMOUNT_MISMATCH",
			fmt.Sprintf("transaction amount %s does not equal expense amount %s",
				txn.Amount.StringFixed(2), expense.Amount.StringFixed(2)))
	}

	if err := txn.MatchToExpense(expense.ID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.SaveWithLock(ctx, txn); err != nil {
		return nil, err
	}

	resp := ToBankTransactionResponse(txn)
	return &resp, nil
}

// Reconcile compares every account, or just one when bankType is non-nil.
// Every figure covers the account's full statement history: the book
// balance is current, so bounding the statement side by an earlier date
// would report drift that is really a time-frame mismatch. An account is
// balanced only when its book balance equals the statement-derived balance
// and no line is unmatched; the status is computed from those two figures
// and nothing else.
func (s *ReconciliationService) Reconcile(ctx context.Context, bankType *finance.BankType) (*report.BankReconciliationReport, error) {
	var accounts []*finance.BankAccount
	if bankType != nil {
		account, err := s.accountRepo.FindByBankType(ctx, *bankType)
		if err != nil {
			return nil, err
		}
		accounts = []*finance.BankAccount{account}
	} else {
		var err error
		accounts, err = s.accountRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := &report.BankReconciliationReport{
		AsOfDate:         time.Now().UTC(),
		Accounts:         make([]report.AccountReconciliation, 0, len(accounts)),
		TotalBookBalance: decimal.Zero,
	}
	allBalanced := true

	for _, account := range accounts {
		recon, err := s.reconcileAccount(ctx, account, result.AsOfDate)
		if err != nil {
			return nil, err
		}
		if recon.Status != report.StatusBalanced {
			allBalanced = false
		}
		result.TotalBookBalance = result.TotalBookBalance.Add(recon.BookBalance)
		result.Accounts = append(result.Accounts, recon)
	}

	result.Status = report.StatusNeedsReview
	if allBalanced {
		result.Status = report.StatusBalanced
	}
	return result, nil
}

func (s *ReconciliationService) reconcileAccount(ctx context.Context, account *finance.BankAccount, now time.Time) (report.AccountReconciliation, error) {
	var epoch time.Time
	netFlow, err := s.txnRepo.SumSigned(ctx, account.BankType, epoch, now)
	if err != nil {
		return report.AccountReconciliation{}, err
	}
	derived := account.OpeningBalance.Add(netFlow)
	difference := account.Balance.Sub(derived)

	filter := finance.BankTransactionFilter{BankType: &account.BankType, Filter: shared.DefaultFilter()}
	total, err := s.txnRepo.Count(ctx, filter)
	if err != nil {
		return report.AccountReconciliation{}, err
	}
	unmatched, err := s.txnRepo.CountUnmatched(ctx, account.BankType)
	if err != nil {
		return report.AccountReconciliation{}, err
	}

	matchRate := decimal.Zero
	if total > 0 {
		matchRate = decimal.NewFromInt(total - unmatched).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100))
	}

	return report.AccountReconciliation{
		BankType:          account.BankType,
		AccountName:       account.AccountName,
		BookBalance:       account.Balance,
		DerivedBalance:    derived,
		Difference:        difference,
		TotalTransactions: total,
		MatchedCount:      total - unmatched,
		UnmatchedCount:    unmatched,
		MatchRate:         matchRate,
		Status:            report.ReconciliationStatusOf(difference, unmatched),
	}, nil
}
