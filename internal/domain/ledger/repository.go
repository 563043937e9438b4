package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository is the record store contract the aggregation engine reads
// through. The month argument follows one convention everywhere: 0 means
// no filter, 1-12 restricts sums to rows whose date falls in that month.
// Implementations must return zero sums, not errors, when no rows match.
type Repository interface {
	// InsertIncome stores a new income row and returns its assigned ID.
	InsertIncome(ctx context.Context, rec IncomeRecord) (int64, error)

	// InsertExpense stores a new expense row and returns its assigned ID.
	InsertExpense(ctx context.Context, rec ExpenseRecord) (int64, error)

	// ListIncome returns all income rows for the account, newest first.
	ListIncome(ctx context.Context, accountID int64) ([]IncomeRecord, error)

	// ListExpense returns all expense rows for the account, newest first.
	ListExpense(ctx context.Context, accountID int64) ([]ExpenseRecord, error)

	// IncomeTotal sums income amounts for the account.
	IncomeTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error)

	// ExpenseTotal sums expense amounts for the account.
	ExpenseTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error)

	// MonthlySeries groups the account's combined income and expense
	// rows by month-of-date, ordered ascending by month. Sparse: months
	// without rows are absent.
	MonthlySeries(ctx context.Context, accountID int64) ([]MonthlyEntry, error)

	// IncomeBySource sums income per source label.
	IncomeBySource(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error)

	// ExpenseByCategory sums expenses per category label.
	ExpenseByCategory(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error)
}
