package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/shared/middleware"
)

// MockLedgerRepo implements ledger.Repository for testing
type MockLedgerRepo struct {
	InsertIncomeFunc      func(ctx context.Context, rec ledger.IncomeRecord) (int64, error)
	InsertExpenseFunc     func(ctx context.Context, rec ledger.ExpenseRecord) (int64, error)
	ListIncomeFunc        func(ctx context.Context, accountID int64) ([]ledger.IncomeRecord, error)
	ListExpenseFunc       func(ctx context.Context, accountID int64) ([]ledger.ExpenseRecord, error)
	IncomeTotalFunc       func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error)
	ExpenseTotalFunc      func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error)
	MonthlySeriesFunc     func(ctx context.Context, accountID int64) ([]ledger.MonthlyEntry, error)
	IncomeBySourceFunc    func(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error)
	ExpenseByCategoryFunc func(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error)
}

func (m *MockLedgerRepo) InsertIncome(ctx context.Context, rec ledger.IncomeRecord) (int64, error) {
	if m.InsertIncomeFunc != nil {
		return m.InsertIncomeFunc(ctx, rec)
	}
	return 1, nil
}

func (m *MockLedgerRepo) InsertExpense(ctx context.Context, rec ledger.ExpenseRecord) (int64, error) {
	if m.InsertExpenseFunc != nil {
		return m.InsertExpenseFunc(ctx, rec)
	}
	return 1, nil
}

func (m *MockLedgerRepo) ListIncome(ctx context.Context, accountID int64) ([]ledger.IncomeRecord, error) {
	if m.ListIncomeFunc != nil {
		return m.ListIncomeFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *MockLedgerRepo) ListExpense(ctx context.Context, accountID int64) ([]ledger.ExpenseRecord, error) {
	if m.ListExpenseFunc != nil {
		return m.ListExpenseFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *MockLedgerRepo) IncomeTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
	if m.IncomeTotalFunc != nil {
		return m.IncomeTotalFunc(ctx, accountID, month)
	}
	return decimal.Zero, nil
}

func (m *MockLedgerRepo) ExpenseTotal(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
	if m.ExpenseTotalFunc != nil {
		return m.ExpenseTotalFunc(ctx, accountID, month)
	}
	return decimal.Zero, nil
}

func (m *MockLedgerRepo) MonthlySeries(ctx context.Context, accountID int64) ([]ledger.MonthlyEntry, error) {
	if m.MonthlySeriesFunc != nil {
		return m.MonthlySeriesFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *MockLedgerRepo) IncomeBySource(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	if m.IncomeBySourceFunc != nil {
		return m.IncomeBySourceFunc(ctx, accountID)
	}
	return map[string]decimal.Decimal{}, nil
}

func (m *MockLedgerRepo) ExpenseByCategory(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	if m.ExpenseByCategoryFunc != nil {
		return m.ExpenseByCategoryFunc(ctx, accountID)
	}
	return map[string]decimal.Decimal{}, nil
}

func newLedgerHandler(repo ledger.Repository) *LedgerHandler {
	return NewLedgerHandler(ledger.NewService(repo))
}

// authedRequest builds a request carrying the identity the auth
// middleware would have attached.
func authedRequest(method, target string, body []byte, accountID int64) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.AccountIDKey, accountID)
	return req.WithContext(ctx)
}

func TestHandleAddIncome(t *testing.T) {
	var inserted ledger.IncomeRecord
	repo := &MockLedgerRepo{
		InsertIncomeFunc: func(ctx context.Context, rec ledger.IncomeRecord) (int64, error) {
			inserted = rec
			return 42, nil
		},
	}
	h := newLedgerHandler(repo)

	body, _ := json.Marshal(AddIncomeRequest{Source: "salary", Amount: "1000.50", Date: "2024-03-15"})
	rr := httptest.NewRecorder()
	h.HandleAddIncome(rr, authedRequest(http.MethodPost, "/api/income", body, 7))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if inserted.AccountID != 7 {
		t.Errorf("inserted AccountID = %d, want 7", inserted.AccountID)
	}
	if !inserted.Amount.Equal(decimal.RequireFromString("1000.50")) {
		t.Errorf("inserted Amount = %s, want 1000.50", inserted.Amount)
	}

	var rec ledger.IncomeRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID != 42 {
		t.Errorf("response ID = %d, want 42", rec.ID)
	}
}

func TestHandleAddIncome_BadInput(t *testing.T) {
	tests := []struct {
		name string
		req  AddIncomeRequest
	}{
		{"negative amount", AddIncomeRequest{Source: "salary", Amount: "-5", Date: "2024-03-15"}},
		{"unparsable amount", AddIncomeRequest{Source: "salary", Amount: "a lot", Date: "2024-03-15"}},
		{"bad date", AddIncomeRequest{Source: "salary", Amount: "10", Date: "15/03/2024"}},
		{"empty source", AddIncomeRequest{Source: "", Amount: "10", Date: "2024-03-15"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newLedgerHandler(&MockLedgerRepo{
				InsertIncomeFunc: func(ctx context.Context, rec ledger.IncomeRecord) (int64, error) {
					t.Error("invalid record must not reach the store")
					return 0, nil
				},
			})

			body, _ := json.Marshal(tt.req)
			rr := httptest.NewRecorder()
			h.HandleAddIncome(rr, authedRequest(http.MethodPost, "/api/income", body, 7))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestHandleAddExpense(t *testing.T) {
	var inserted ledger.ExpenseRecord
	repo := &MockLedgerRepo{
		InsertExpenseFunc: func(ctx context.Context, rec ledger.ExpenseRecord) (int64, error) {
			inserted = rec
			return 9, nil
		},
	}
	h := newLedgerHandler(repo)

	body, _ := json.Marshal(AddExpenseRequest{Category: "rent", Amount: "400", Date: "2024-03-01"})
	rr := httptest.NewRecorder()
	h.HandleAddExpense(rr, authedRequest(http.MethodPost, "/api/expense", body, 7))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if inserted.Category != "rent" {
		t.Errorf("inserted Category = %q, want rent", inserted.Category)
	}
}

func TestHandleRecords_EmptyAccount(t *testing.T) {
	h := newLedgerHandler(&MockLedgerRepo{})

	rr := httptest.NewRecorder()
	h.HandleRecords(rr, authedRequest(http.MethodGet, "/api/records", nil, 7))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	// Empty accounts serialize as empty arrays, never null.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"incomes", "expenses"} {
		if string(raw[key]) != "[]" {
			t.Errorf("%s = %s, want []", key, raw[key])
		}
	}
}

func TestHandleVisualizationData(t *testing.T) {
	var gotMonth int
	repo := &MockLedgerRepo{
		IncomeTotalFunc: func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
			gotMonth = month
			return decimal.RequireFromString("1000"), nil
		},
		ExpenseTotalFunc: func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
			return decimal.RequireFromString("400"), nil
		},
		MonthlySeriesFunc: func(ctx context.Context, accountID int64) ([]ledger.MonthlyEntry, error) {
			return []ledger.MonthlyEntry{
				{Month: 3, TotalIncome: decimal.RequireFromString("1000"), TotalExpenses: decimal.RequireFromString("400")},
			}, nil
		},
	}
	h := newLedgerHandler(repo)

	rr := httptest.NewRecorder()
	h.HandleVisualizationData(rr, authedRequest(http.MethodGet, "/api/visualization-data?month=3", nil, 7))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotMonth != 3 {
		t.Errorf("month filter = %d, want 3", gotMonth)
	}

	var resp struct {
		TotalIncome   string `json:"totalIncome"`
		TotalExpenses string `json:"totalExpenses"`
		MonthlyData   []struct {
			Month int `json:"month"`
		} `json:"monthlyData"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalIncome != "1000" || resp.TotalExpenses != "400" {
		t.Errorf("totals = %s/%s, want 1000/400", resp.TotalIncome, resp.TotalExpenses)
	}
	if len(resp.MonthlyData) != 1 || resp.MonthlyData[0].Month != 3 {
		t.Errorf("unexpected monthlyData: %+v", resp.MonthlyData)
	}
}

// A month parameter that is absent, unparsable or out of range falls
// back to unfiltered totals.
func TestHandleVisualizationData_MonthDefaulting(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"absent", "/api/visualization-data"},
		{"unparsable", "/api/visualization-data?month=march"},
		{"too large", "/api/visualization-data?month=13"},
		{"negative", "/api/visualization-data?month=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMonth := -99
			repo := &MockLedgerRepo{
				IncomeTotalFunc: func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
					gotMonth = month
					return decimal.Zero, nil
				},
			}
			h := newLedgerHandler(repo)

			rr := httptest.NewRecorder()
			h.HandleVisualizationData(rr, authedRequest(http.MethodGet, tt.target, nil, 7))

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
			if gotMonth != 0 {
				t.Errorf("month filter = %d, want 0 (no filter)", gotMonth)
			}
		})
	}
}

func TestHandleVisualizationData_StoreFailure(t *testing.T) {
	repo := &MockLedgerRepo{
		IncomeTotalFunc: func(ctx context.Context, accountID int64, month int) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("connection refused")
		},
	}
	h := newLedgerHandler(repo)

	rr := httptest.NewRecorder()
	h.HandleVisualizationData(rr, authedRequest(http.MethodGet, "/api/visualization-data", nil, 7))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// The response stays generic; the cause goes to the server log only.
	if resp.Error != "failed to fetch data" {
		t.Errorf("error message = %q, want generic failure message", resp.Error)
	}
}

func TestHandleCategorySummary(t *testing.T) {
	repo := &MockLedgerRepo{
		IncomeBySourceFunc: func(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
			return map[string]decimal.Decimal{"salary": decimal.RequireFromString("2000")}, nil
		},
		ExpenseByCategoryFunc: func(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
			return map[string]decimal.Decimal{"rent": decimal.RequireFromString("800")}, nil
		},
	}
	h := newLedgerHandler(repo)

	rr := httptest.NewRecorder()
	h.HandleCategorySummary(rr, authedRequest(http.MethodGet, "/api/summary/categories", nil, 7))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Income  map[string]string `json:"income"`
		Expense map[string]string `json:"expense"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Income["salary"] != "2000" {
		t.Errorf("income[salary] = %q, want 2000", resp.Income["salary"])
	}
	if resp.Expense["rent"] != "800" {
		t.Errorf("expense[rent] = %q, want 800", resp.Expense["rent"])
	}
}

func TestLedgerHandlers_RequireIdentity(t *testing.T) {
	h := newLedgerHandler(&MockLedgerRepo{})

	handlers := map[string]http.HandlerFunc{
		"records":       h.HandleRecords,
		"visualization": h.HandleVisualizationData,
		"summary":       h.HandleCategorySummary,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rr.Code)
			}
		})
	}
}
