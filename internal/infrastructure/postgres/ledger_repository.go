package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/ledger"
)

// LedgerRepository implements ledger.Repository over the income and
// expense tables. Amounts travel through text on both sides of the
// driver so no float ever touches a monetary value.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) InsertIncome(ctx context.Context, rec ledger.IncomeRecord) (int64, error) {
	query := `
		INSERT INTO income (user_id, source, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, rec.AccountID, rec.Source, rec.Amount.String(), rec.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert income: %w", err)
	}
	return id, nil
}

func (r *LedgerRepository) InsertExpense(ctx context.Context, rec ledger.ExpenseRecord) (int64, error) {
	query := `
		INSERT INTO expense (user_id, category, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, rec.AccountID, rec.Category, rec.Amount.String(), rec.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}
	return id, nil
}

func (r *LedgerRepository) ListIncome(ctx context.Context, accountID int64) ([]ledger.IncomeRecord, error) {
	query := `
		SELECT id, user_id, source, amount::text, date
		FROM income
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	var records []ledger.IncomeRecord
	for rows.Next() {
		var rec ledger.IncomeRecord
		var amount string
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Source, &amount, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		if rec.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) ListExpense(ctx context.Context, accountID int64) ([]ledger.ExpenseRecord, error) {
	query := `
		SELECT id, user_id, category, amount::text, date
		FROM expense
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var records []ledger.ExpenseRecord
	for rows.Next() {
		var rec ledger.ExpenseRecord
		var amount string
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Category, &amount, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		if rec.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) IncomeTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
	return r.sumTable(ctx, "income", accountID, month)
}

func (r *LedgerRepository) ExpenseTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
	return r.sumTable(ctx, "expense", accountID, month)
}

// sumTable sums amounts for one account in either ledger table. month 0
// means no filter. COALESCE turns the NULL that SUM yields on an empty
// set into a zero total.
func (r *LedgerRepository) sumTable(ctx context.Context, table string, accountID int64, month int) (decimal.Decimal, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(amount), 0)::text FROM %s WHERE user_id = $1`, table)
	args := []any{accountID}

	if month != 0 {
		query += ` AND EXTRACT(MONTH FROM date) = $2`
		args = append(args, month)
	}

	var total string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", table, err)
	}

	return parseAmount(total)
}

func (r *LedgerRepository) MonthlySeries(ctx context.Context, accountID int64) ([]ledger.MonthlyEntry, error) {
	// Mirrors the tracker's visualization query: a UNION ALL of both
	// tables tagged by kind, grouped by month-of-date. Only months with
	// at least one row appear.
	query := `
		SELECT month,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0)::text AS total_income,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)::text AS total_expenses
		FROM (
			SELECT EXTRACT(MONTH FROM date)::int AS month, amount, 'income' AS kind
			FROM income WHERE user_id = $1
			UNION ALL
			SELECT EXTRACT(MONTH FROM date)::int AS month, amount, 'expense' AS kind
			FROM expense WHERE user_id = $1
		) AS combined
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly series: %w", err)
	}
	defer rows.Close()

	var series []ledger.MonthlyEntry
	for rows.Next() {
		var entry ledger.MonthlyEntry
		var income, expenses string
		if err := rows.Scan(&entry.Month, &income, &expenses); err != nil {
			return nil, fmt.Errorf("failed to scan monthly entry: %w", err)
		}
		if entry.TotalIncome, err = parseAmount(income); err != nil {
			return nil, err
		}
		if entry.TotalExpenses, err = parseAmount(expenses); err != nil {
			return nil, err
		}
		series = append(series, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly series: %w", err)
	}

	return series, nil
}

func (r *LedgerRepository) IncomeBySource(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	query := `
		SELECT source, SUM(amount)::text
		FROM income
		WHERE user_id = $1
		GROUP BY source
	`
	return r.groupAmounts(ctx, query, accountID)
}

func (r *LedgerRepository) ExpenseByCategory(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, SUM(amount)::text
		FROM expense
		WHERE user_id = $1
		GROUP BY category
	`
	return r.groupAmounts(ctx, query, accountID)
}

func (r *LedgerRepository) groupAmounts(ctx context.Context, query string, accountID int64) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to group amounts: %w", err)
	}
	defer rows.Close()

	groups := make(map[string]decimal.Decimal)
	for rows.Next() {
		var label, amount string
		if err := rows.Scan(&label, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		if groups[label], err = parseAmount(amount); err != nil {
			return nil, err
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// parseAmount converts a stored amount into an exact decimal. A value
// that does not parse is a data-integrity fault, reported as
// ledger.ErrCorruptAmount rather than propagated as a bare parse error.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ledger.ErrCorruptAmount, s)
	}
	return d, nil
}
