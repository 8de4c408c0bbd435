package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/infrastructure/metrics"
)

// Pagination defaults used when no config overrides them.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ExpenseUseCase handles expense ledger operations.
type ExpenseUseCase struct {
	expenseRepo     ExpenseRepository
	summaries       *SummaryCache
	metrics         *metrics.Metrics
	defaultPageSize int
	maxPageSize     int
}

// NewExpenseUseCase creates a new ExpenseUseCase. summaries may be nil when
// no cache backend is configured.
func NewExpenseUseCase(expenseRepo ExpenseRepository, summaries *SummaryCache) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo:     expenseRepo,
		summaries:       summaries,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithMetrics attaches Prometheus instrumentation.
func (uc *ExpenseUseCase) WithMetrics(m *metrics.Metrics) *ExpenseUseCase {
	uc.metrics = m

	return uc
}

// WithPageSizes overrides the pagination bounds.
func (uc *ExpenseUseCase) WithPageSizes(defaultSize, maxSize int) *ExpenseUseCase {
	if defaultSize > 0 {
		uc.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		uc.maxPageSize = maxSize
	}

	return uc
}

// AddExpenseInput represents input for recording an expense.
type AddExpenseInput struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	OwnerID     string
}

// AddExpense validates the input, stores the expense and returns the stored
// record with its assigned ID. The ledger is unchanged on validation failure.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	expense, err := domain.NewExpense(input.Amount, input.Category, input.Description, input.OwnerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	stored, err := uc.expenseRepo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	uc.invalidateSummaries(ctx, input.OwnerID)

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.Inc()
		uc.metrics.ExpenseAmount.Observe(stored.Amount.InexactFloat64())
	}

	return stored, nil
}

// GetExpense retrieves an expense scoped to its owner.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id, ownerID)
}

// ListExpensesInput represents input for a filtered, sorted, paginated listing.
type ListExpensesInput struct {
	OwnerID  string
	Filter   domain.ExpenseFilter
	Sort     domain.SortSpec
	Page     int
	PageSize int
}

// ListExpensesOutput is one page of expenses with pagination metadata.
type ListExpensesOutput struct {
	Items    []*domain.Expense
	Total    int
	Page     int
	PageSize int
	Pages    int
}

// ListExpenses returns a page of matching expenses. Page numbers are
// 1-indexed; a page past the end yields an empty page, not an error.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	size := input.PageSize
	if size <= 0 {
		size = uc.defaultPageSize
	}
	if size > uc.maxPageSize {
		size = uc.maxPageSize
	}

	offset := (page - 1) * size

	items, total, err := uc.expenseRepo.List(ctx, input.OwnerID, input.Filter, input.Sort, size, offset)
	if err != nil {
		return nil, err
	}

	pages := 0
	if total > 0 {
		pages = (total + size - 1) / size
	}

	return &ListExpensesOutput{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
		Pages:    pages,
	}, nil
}

// UpdateExpense applies a partial update to an expense. Only provided fields
// change; changed fields are re-validated and the record is untouched when
// validation fails.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, id int64, ownerID string, patch domain.ExpensePatch) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(expense, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	uc.invalidateSummaries(ctx, ownerID)

	if uc.metrics != nil {
		uc.metrics.ExpensesUpdated.Inc()
	}

	return expense, nil
}

// DeleteExpense removes an expense. Deleting a missing or already deleted
// expense returns domain.ErrExpenseNotFound.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id int64, ownerID string) error {
	if err := uc.expenseRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	uc.invalidateSummaries(ctx, ownerID)

	if uc.metrics != nil {
		uc.metrics.ExpensesDeleted.Inc()
	}

	return nil
}

func (uc *ExpenseUseCase) invalidateSummaries(ctx context.Context, ownerID string) {
	if uc.summaries != nil {
		uc.summaries.Invalidate(ctx, ownerID)
	}
}
