package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
)

// LedgerService records the raw book entries: income, expenses, bank
// accounts, and bank statement lines. Allocation and matching live in their
// own services.
type LedgerService struct {
	incomeRepo  finance.IncomeRepository
	expenseRepo finance.ExpenseRepository
	accountRepo finance.BankAccountRepository
	txnRepo     finance.BankTransactionRepository
	transactor  shared.Transactor
	logger      *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	incomeRepo finance.IncomeRepository,
	expenseRepo finance.ExpenseRepository,
	accountRepo finance.BankAccountRepository,
	txnRepo finance.BankTransactionRepository,
	transactor shared.Transactor,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		transactor:  transactor,
		logger:      logger,
	}
}

// CreateBankAccount opens a book account for one of the two banks
func (s *LedgerService) CreateBankAccount(ctx context.Context, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	bankType := finance.BankType(req.BankType)
	if existing, err := s.accountRepo.FindByBankType(ctx, bankType); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "bank account for this bank already exists")
	}

	account, err := finance.NewBankAccount(bankType, req.AccountName, req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("bank account opened",
		zap.String("bank_type", string(account.BankType)),
		zap.String("balance", account.Balance.StringFixed(2)))

	resp := ToBankAccountResponse(account)
	return &resp, nil
}

// ListBankAccounts returns all book accounts
func (s *LedgerService) ListBankAccounts(ctx context.Context) ([]BankAccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]BankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, ToBankAccountResponse(a))
	}
	return items, nil
}

// RecordBankTransaction stores a statement line and moves the account
// balance in the same transaction. An income line credits the account, an
// outgoing line debits it, and the balance may go negative.
func (s *LedgerService) RecordBankTransaction(ctx context.Context, req RecordBankTransactionRequest) (*BankTransactionResponse, error) {
	bankType := finance.BankType(req.BankType)
	direction := finance.DirectionDebit
	if req.IsIncome {
		direction = finance.DirectionCredit
	}

	txn, err := finance.NewBankTransaction(bankType, req.TransactionDate, req.Amount, direction, req.Counterparty, req.Description)
	if err != nil {
		return nil, err
	}
	txn.Notes = req.Notes

	account, err := s.accountRepo.FindByBankType(ctx, bankType)
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.IsIncome {
			if err := account.Credit(req.Amount); err != nil {
				return err
			}
		} else {
			if err := account.Debit(req.Amount); err != nil {
				return err
			}
		}
		if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
			return err
		}
		return s.txnRepo.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank transaction recorded",
		zap.String("bank_type", string(bankType)),
		zap.String("direction", string(direction)),
		zap.String("amount", req.Amount.StringFixed(2)))

	resp := ToBankTransactionResponse(txn)
	return &resp, nil
}

// ListBankTransactions returns statement lines matching the filter
func (s *LedgerService) ListBankTransactions(ctx context.Context, filter finance.BankTransactionFilter) (*shared.Paginated[BankTransactionResponse], error) {
	txns, err := s.txnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.txnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]BankTransactionResponse, 0, len(txns))
	for _, t := range txns {
		items = append(items, ToBankTransactionResponse(t))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetIncome returns one income record
func (s *LedgerService) GetIncome(ctx context.Context, id uuid.UUID) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToIncomeResponse(income)
	return &resp, nil
}

// ListIncomes returns income records matching the filter
func (s *LedgerService) ListIncomes(ctx context.Context, filter finance.IncomeFilter) (*shared.Paginated[IncomeResponse], error) {
	incomes, err := s.incomeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.incomeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]IncomeResponse, 0, len(incomes))
	for _, i := range incomes {
		items = append(items, ToIncomeResponse(i))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetExpense returns one expense record
func (s *LedgerService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses returns expense records matching the filter
func (s *LedgerService) ListExpenses(ctx context.Context, filter finance.ExpenseFilter) (*shared.Paginated[ExpenseResponse], error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, ToExpenseResponse(e))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
