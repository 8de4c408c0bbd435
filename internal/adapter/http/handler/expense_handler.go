package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, id int64, ownerID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) (*usecase.ListExpensesOutput, error)
	UpdateExpense(ctx context.Context, id int64, ownerID string, patch domain.ExpensePatch) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id int64, ownerID string) error
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.AddExpense(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseExpenseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense ID", err.Error())
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List returns a filtered, sorted, paginated page of expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}

	sort, err := domain.ParseSortSpec(r.URL.Query().Get("sort_by"), r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, mapDomainError(err), "invalid sort", err.Error())
		return
	}

	out, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		OwnerID:  ownerID,
		Filter:   filter,
		Sort:     sort,
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesFromOutput(out))
}

// Update applies a partial update to an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseExpenseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense ID", err.Error())
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), id, ownerID, req.ToPatch())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseExpenseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense ID", err.Error())
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), id, ownerID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseExpenseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	return strconv.ParseInt(raw, 10, 64)
}

// parseFilter builds an ExpenseFilter from query parameters. Malformed values
// are rejected naming the offending parameter.
func parseFilter(r *http.Request) (domain.ExpenseFilter, error) {
	q := r.URL.Query()

	filter := domain.ExpenseFilter{
		Category: q.Get("category"),
	}

	from, err := domain.ParseDateFilter("from_date", q.Get("from_date"))
	if err != nil {
		return domain.ExpenseFilter{}, err
	}
	filter.From = from

	to, err := domain.ParseDateFilter("to_date", q.Get("to_date"))
	if err != nil {
		return domain.ExpenseFilter{}, err
	}
	filter.To = to

	filter.MinAmount, err = parseAmountFilter("min_amount", q.Get("min_amount"))
	if err != nil {
		return domain.ExpenseFilter{}, err
	}

	filter.MaxAmount, err = parseAmountFilter("max_amount", q.Get("max_amount"))
	if err != nil {
		return domain.ExpenseFilter{}, err
	}

	return filter, nil
}

func parseAmountFilter(param, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a decimal number", domain.ErrInvalidFilter, param)
	}

	return &amount, nil
}
