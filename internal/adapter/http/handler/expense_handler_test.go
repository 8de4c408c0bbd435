package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

type expenseServiceStub struct {
	addFn    func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error)
	getFn    func(ctx context.Context, id int64, ownerID string) (*domain.Expense, error)
	listFn   func(ctx context.Context, input usecase.ListExpensesInput) (*usecase.ListExpensesOutput, error)
	updateFn func(ctx context.Context, id int64, ownerID string, patch domain.ExpensePatch) (*domain.Expense, error)
	deleteFn func(ctx context.Context, id int64, ownerID string) error
}

func (s *expenseServiceStub) AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
	return s.addFn(ctx, input)
}

func (s *expenseServiceStub) GetExpense(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *expenseServiceStub) ListExpenses(ctx context.Context, input usecase.ListExpensesInput) (*usecase.ListExpensesOutput, error) {
	return s.listFn(ctx, input)
}

func (s *expenseServiceStub) UpdateExpense(ctx context.Context, id int64, ownerID string, patch domain.ExpensePatch) (*domain.Expense, error) {
	return s.updateFn(ctx, id, ownerID, patch)
}

func (s *expenseServiceStub) DeleteExpense(ctx context.Context, id int64, ownerID string) error {
	return s.deleteFn(ctx, id, ownerID)
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), middleware.UserIDContextKey, "user-1")

	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestExpenseHandler_Create_Success(t *testing.T) {
	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:        1,
		Amount:    decimal.RequireFromString("25.50"),
		Category:  "Food",
		OwnerID:   "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	var captured usecase.AddExpenseInput
	h := NewExpenseHandler(&expenseServiceStub{
		addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
			captured = input
			return expense, nil
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{
		Amount:   decimal.RequireFromString("25.50"),
		Category: "Food",
	})

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/expenses", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "user-1" || captured.Category != "Food" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 {
		t.Fatalf("expected expense ID 1, got %d", resp.ID)
	}
}

func TestExpenseHandler_Create_InvalidAmount(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
			return nil, domain.ErrInvalidAmount
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{Category: "Food"})

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/expenses", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create_Unauthenticated(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
			t.Fatal("AddExpense should not be called without a principal")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{Category: "Food"})
	req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestExpenseHandler_Get_NotFound(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		getFn: func(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
			return nil, domain.ErrExpenseNotFound
		},
	})

	req := withURLParam(authedRequest(http.MethodGet, "/expenses/99", nil), "id", "99")

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenseHandler_Get_BadID(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		getFn: func(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
			t.Fatal("GetExpense should not be called for a malformed ID")
			return nil, nil
		},
	})

	req := withURLParam(authedRequest(http.MethodGet, "/expenses/abc", nil), "id", "abc")

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_List_ParsesQuery(t *testing.T) {
	var captured usecase.ListExpensesInput
	h := NewExpenseHandler(&expenseServiceStub{
		listFn: func(ctx context.Context, input usecase.ListExpensesInput) (*usecase.ListExpensesOutput, error) {
			captured = input
			return &usecase.ListExpensesOutput{
				Items:    []*domain.Expense{},
				Total:    0,
				Page:     input.Page,
				PageSize: 20,
			}, nil
		},
	})

	target := "/expenses?category=food&from_date=2024-03-01&to_date=2024-03-31&min_amount=5&max_amount=100&sort_by=amount&order=asc&page=2&page_size=10"
	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Filter.Category != "food" {
		t.Errorf("expected category filter food, got %q", captured.Filter.Category)
	}
	if captured.Filter.From == nil || captured.Filter.From.Format(domain.DateLayout) != "2024-03-01" {
		t.Errorf("expected from 2024-03-01, got %v", captured.Filter.From)
	}
	if captured.Filter.MinAmount == nil || !captured.Filter.MinAmount.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected min amount 5, got %v", captured.Filter.MinAmount)
	}
	if captured.Sort.By != domain.SortByAmount || captured.Sort.Direction != domain.SortAsc {
		t.Errorf("expected amount asc sort, got %+v", captured.Sort)
	}
	if captured.Page != 2 || captured.PageSize != 10 {
		t.Errorf("expected page 2 size 10, got page %d size %d", captured.Page, captured.PageSize)
	}
}

func TestExpenseHandler_List_MalformedDate(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		listFn: func(ctx context.Context, input usecase.ListExpensesInput) (*usecase.ListExpensesOutput, error) {
			t.Fatal("ListExpenses should not be called for a malformed filter")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/expenses?from_date=03-01-2024", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message == "" {
		t.Fatal("expected error message naming the parameter")
	}
}

func TestExpenseHandler_Update_PartialPatch(t *testing.T) {
	var captured domain.ExpensePatch
	h := NewExpenseHandler(&expenseServiceStub{
		updateFn: func(ctx context.Context, id int64, ownerID string, patch domain.ExpensePatch) (*domain.Expense, error) {
			captured = patch
			return &domain.Expense{ID: id, Amount: *patch.Amount, Category: "Food", OwnerID: ownerID}, nil
		},
	})

	body := []byte(`{"amount":"42.00"}`)
	req := withURLParam(authedRequest(http.MethodPatch, "/expenses/1", body), "id", "1")

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Amount == nil || !captured.Amount.Equal(decimal.RequireFromString("42.00")) {
		t.Errorf("expected amount patch 42.00, got %v", captured.Amount)
	}
	if captured.Category != nil || captured.Description != nil {
		t.Errorf("expected only amount set in patch, got %+v", captured)
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		deleteFn: func(ctx context.Context, id int64, ownerID string) error {
			return nil
		},
	})

	req := withURLParam(authedRequest(http.MethodDelete, "/expenses/1", nil), "id", "1")

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		deleteFn: func(ctx context.Context, id int64, ownerID string) error {
			return domain.ErrExpenseNotFound
		},
	})

	req := withURLParam(authedRequest(http.MethodDelete, "/expenses/99", nil), "id", "99")

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
