package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return NewStore(filepath.Join(t.TempDir(), "expenses.json"), zerolog.Nop())
}

func newExpense(t *testing.T, amount, category string) *domain.Expense {
	t.Helper()

	expense, err := domain.NewExpense(decimal.RequireFromString(amount), category, "", "", time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return expense
}

func TestStoreCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Create(ctx, newExpense(t, "25.50", "Food"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored.ID != 1 {
		t.Fatalf("expected first ID 1, got %d", stored.ID)
	}

	got, err := store.GetByID(ctx, stored.ID, "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected amount 25.50, got %s", got.Amount)
	}
	if got.Category != "Food" {
		t.Errorf("expected category Food, got %q", got.Category)
	}
}

func TestStoreIDsNeverReuseInteriorGaps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, newExpense(t, "10", "Misc")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	if err := store.Delete(ctx, 2, ""); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	stored, err := store.Create(ctx, newExpense(t, "10", "Misc"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored.ID != 4 {
		t.Errorf("expected ID 4 after deleting 2, got %d", stored.ID)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	ctx := context.Background()

	first := NewStore(path, zerolog.Nop())
	if _, err := first.Create(ctx, newExpense(t, "99.99", "Travel")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second := NewStore(path, zerolog.Nop())
	expenses, err := second.ListAll(ctx, "", domain.ExpenseFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 persisted expense, got %d", len(expenses))
	}
	if !expenses[0].Amount.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("expected exact amount 99.99, got %s", expenses[0].Amount)
	}
}

func TestStoreCorruptedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	store := NewStore(path, zerolog.Nop())

	expenses, err := store.ListAll(context.Background(), "", domain.ExpenseFilter{})
	if err != nil {
		t.Fatalf("expected corrupted file to load as empty, got %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(expenses))
	}
}

func TestStoreDeleteIsHard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Create(ctx, newExpense(t, "10", "Food"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.Delete(ctx, stored.ID, ""); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, stored.ID, ""); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}

	if err := store.Delete(ctx, stored.ID, ""); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound on second delete, got %v", err)
	}
}

func TestStoreListSortsAndPages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	amounts := []string{"30", "10", "20"}
	for _, a := range amounts {
		if _, err := store.Create(ctx, newExpense(t, a, "Misc")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, total, err := store.List(ctx, "", domain.ExpenseFilter{}, domain.SortSpec{
		By:        domain.SortByAmount,
		Direction: domain.SortAsc,
	}, 2, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Amount.Equal(decimal.NewFromInt(10)) || !items[1].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected ascending amounts 10, 20, got %s, %s", items[0].Amount, items[1].Amount)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Create(ctx, newExpense(t, "10", "Food"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored.Category = "Groceries"
	if err := store.Update(ctx, stored); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.GetByID(ctx, stored.ID, "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Category != "Groceries" {
		t.Errorf("expected updated category, got %q", got.Category)
	}
}
