package ledger

import (
	"context"
	"fmt"
	"sort"
)

// Service is the aggregation engine. It computes summary views over one
// account's ledger rows through the repository and never crosses account
// boundaries: every query it issues carries the authenticated account ID.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// normalizeMonth maps an optional month filter onto the repository
// convention. A nil or out-of-range month means no filter; the original
// tracker accepted any value here, so an unknown month falls back to the
// unfiltered sums rather than an error.
func normalizeMonth(month *int) int {
	if month == nil || *month < 1 || *month > 12 {
		return 0
	}
	return *month
}

// Totals sums the account's income and expense amounts, restricted to
// the given month when one is provided. An account with no matching rows
// yields zero totals.
func (s *Service) Totals(ctx context.Context, accountID int64, month *int) (Totals, error) {
	if accountID <= 0 {
		return Totals{}, ErrInvalidAccount
	}

	m := normalizeMonth(month)

	income, err := s.repo.IncomeTotal(ctx, accountID, m)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to sum income: %w", err)
	}

	expenses, err := s.repo.ExpenseTotal(ctx, accountID, m)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return Totals{TotalIncome: income, TotalExpenses: expenses}, nil
}

// MonthlySeries merges the account's income and expense rows into one
// per-month series, ascending by month number. The series is sparse:
// months with no activity of either type are omitted.
func (s *Service) MonthlySeries(ctx context.Context, accountID int64) ([]MonthlyEntry, error) {
	if accountID <= 0 {
		return nil, ErrInvalidAccount
	}

	series, err := s.repo.MonthlySeries(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly series: %w", err)
	}

	// The ordering invariant belongs to the engine, not the adapter.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series, nil
}

// CategorySummary groups income by source and expenses by category,
// summing amounts per label. Accounts with no rows get empty maps.
func (s *Service) CategorySummary(ctx context.Context, accountID int64) (CategorySummary, error) {
	if accountID <= 0 {
		return CategorySummary{}, ErrInvalidAccount
	}

	income, err := s.repo.IncomeBySource(ctx, accountID)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("failed to group income by source: %w", err)
	}

	expense, err := s.repo.ExpenseByCategory(ctx, accountID)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("failed to group expenses by category: %w", err)
	}

	return CategorySummary{Income: income, Expense: expense}, nil
}

// AddIncome validates and stores a new income row for the account.
func (s *Service) AddIncome(ctx context.Context, rec IncomeRecord) (IncomeRecord, error) {
	if err := rec.Validate(); err != nil {
		return IncomeRecord{}, err
	}

	id, err := s.repo.InsertIncome(ctx, rec)
	if err != nil {
		return IncomeRecord{}, fmt.Errorf("failed to insert income: %w", err)
	}

	rec.ID = id
	return rec, nil
}

// AddExpense validates and stores a new expense row for the account.
func (s *Service) AddExpense(ctx context.Context, rec ExpenseRecord) (ExpenseRecord, error) {
	if err := rec.Validate(); err != nil {
		return ExpenseRecord{}, err
	}

	id, err := s.repo.InsertExpense(ctx, rec)
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("failed to insert expense: %w", err)
	}

	rec.ID = id
	return rec, nil
}

// Records returns all of the account's income and expense rows.
func (s *Service) Records(ctx context.Context, accountID int64) ([]IncomeRecord, []ExpenseRecord, error) {
	if accountID <= 0 {
		return nil, nil, ErrInvalidAccount
	}

	incomes, err := s.repo.ListIncome(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list income: %w", err)
	}

	expenses, err := s.repo.ListExpense(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return incomes, expenses, nil
}
