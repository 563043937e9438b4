package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/shared/middleware"
)

const dateLayout = "2006-01-02"

type LedgerHandler struct {
	service *ledger.Service
}

func NewLedgerHandler(service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{service: service}
}

type AddIncomeRequest struct {
	Source string `json:"source"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

type AddExpenseRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
}

// VisualizationResponse is the aggregation result shape the frontend
// charts consume.
type VisualizationResponse struct {
	TotalIncome   decimal.Decimal       `json:"totalIncome"`
	TotalExpenses decimal.Decimal       `json:"totalExpenses"`
	MonthlyData   []ledger.MonthlyEntry `json:"monthlyData"`
}

type RecordsResponse struct {
	Incomes  []ledger.IncomeRecord  `json:"incomes"`
	Expenses []ledger.ExpenseRecord `json:"expenses"`
}

// HandleAddIncome stores a new income row for the authenticated account.
func (h *LedgerHandler) HandleAddIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, date, err := parseAmountAndDate(req.Amount, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.service.AddIncome(r.Context(), ledger.IncomeRecord{
		AccountID: accountID,
		Source:    req.Source,
		Amount:    amount,
		Date:      date,
	})
	if err != nil {
		h.respondServiceError(w, "add income", err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// HandleAddExpense stores a new expense row for the authenticated account.
func (h *LedgerHandler) HandleAddExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, date, err := parseAmountAndDate(req.Amount, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.service.AddExpense(r.Context(), ledger.ExpenseRecord{
		AccountID: accountID,
		Category:  req.Category,
		Amount:    amount,
		Date:      date,
	})
	if err != nil {
		h.respondServiceError(w, "add expense", err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// HandleRecords lists the authenticated account's income and expense
// rows. Only the caller's own rows are ever returned.
func (h *LedgerHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	incomes, expenses, err := h.service.Records(r.Context(), accountID)
	if err != nil {
		h.respondServiceError(w, "list records", err)
		return
	}

	if incomes == nil {
		incomes = []ledger.IncomeRecord{}
	}
	if expenses == nil {
		expenses = []ledger.ExpenseRecord{}
	}

	respondJSON(w, http.StatusOK, RecordsResponse{Incomes: incomes, Expenses: expenses})
}

// HandleVisualizationData returns totals plus the combined monthly
// series. The optional month query parameter restricts the totals; a
// value that is missing, unparsable or out of range means no filter.
func (h *LedgerHandler) HandleVisualizationData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var month *int
	if raw := r.URL.Query().Get("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil {
			month = &m
		}
	}

	totals, err := h.service.Totals(r.Context(), accountID, month)
	if err != nil {
		h.respondServiceError(w, "compute totals", err)
		return
	}

	series, err := h.service.MonthlySeries(r.Context(), accountID)
	if err != nil {
		h.respondServiceError(w, "build monthly series", err)
		return
	}

	if series == nil {
		series = []ledger.MonthlyEntry{}
	}

	respondJSON(w, http.StatusOK, VisualizationResponse{
		TotalIncome:   totals.TotalIncome,
		TotalExpenses: totals.TotalExpenses,
		MonthlyData:   series,
	})
}

// HandleCategorySummary returns income grouped by source and expenses
// grouped by category.
func (h *LedgerHandler) HandleCategorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.service.CategorySummary(r.Context(), accountID)
	if err != nil {
		h.respondServiceError(w, "summarize categories", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// respondServiceError maps engine errors onto responses: validation
// failures are the caller's fault, anything else is a generic service
// error whose detail stays in the server log.
func (h *LedgerHandler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrEmptyLabel):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Failed to %s: %v", op, err)
		respondError(w, http.StatusInternalServerError, "failed to fetch data")
	}
}

func parseAmountAndDate(rawAmount, rawDate string) (decimal.Decimal, time.Time, error) {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, time.Time{}, ledger.ErrInvalidAmount
	}

	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, errors.New("date must be formatted YYYY-MM-DD")
	}

	return amount, date, nil
}
