package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrInvalidAmount  = errors.New("amount must be a non-negative decimal")
	ErrInvalidDate    = errors.New("date is required")
	ErrEmptyLabel     = errors.New("label is required")
	ErrCorruptAmount  = errors.New("stored amount is not a valid decimal")
	ErrInvalidAccount = errors.New("valid account ID is required")
)

// IncomeRecord is a single income row owned by exactly one account.
type IncomeRecord struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"accountId"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// ExpenseRecord is a single expense row owned by exactly one account.
type ExpenseRecord struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"accountId"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// Totals is the summed income and expense view for one account,
// optionally restricted to a single month.
type Totals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

// MonthlyEntry is one point of the combined monthly series. Months with
// no activity of either type do not appear in the series.
type MonthlyEntry struct {
	Month         int             `json:"month"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

// CategorySummary groups income by source and expenses by category,
// each label mapped to its summed amount. Group order is unspecified.
type CategorySummary struct {
	Income  map[string]decimal.Decimal `json:"income"`
	Expense map[string]decimal.Decimal `json:"expense"`
}

// ZeroTotals returns a Totals with both sums at zero, the result for an
// account with no matching rows.
func ZeroTotals() Totals {
	return Totals{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
}

func (r IncomeRecord) Validate() error {
	return validateRecord(r.AccountID, r.Source, r.Amount, r.Date)
}

func (r ExpenseRecord) Validate() error {
	return validateRecord(r.AccountID, r.Category, r.Amount, r.Date)
}

func validateRecord(accountID int64, label string, amount decimal.Decimal, date time.Time) error {
	if accountID <= 0 {
		return ErrInvalidAccount
	}
	if strings.TrimSpace(label) == "" {
		return ErrEmptyLabel
	}
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
