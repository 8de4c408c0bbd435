package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

func TestNewExpense(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	e, err := domain.NewExpense(decimal.RequireFromString("25.50"), "  Food  ", "  Lunch  ", "owner-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Category != "Food" {
		t.Errorf("expected trimmed category %q, got %q", "Food", e.Category)
	}
	if e.Description != "Lunch" {
		t.Errorf("expected trimmed description %q, got %q", "Lunch", e.Description)
	}
	if !e.CreatedAt.Equal(now) || !e.UpdatedAt.Equal(now) {
		t.Errorf("expected timestamps %v, got created=%v updated=%v", now, e.CreatedAt, e.UpdatedAt)
	}
	if e.ID != 0 {
		t.Errorf("expected zero ID before storage assignment, got %d", e.ID)
	}
}

func TestNewExpenseRejectsInvalidInput(t *testing.T) {
	now := time.Now().UTC()

	_, err := domain.NewExpense(decimal.Zero, "Food", "", "", now)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = domain.NewExpense(decimal.NewFromInt(10), "   ", "", "", now)
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestExpensePatchApply(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	e := &domain.Expense{
		ID:          1,
		Amount:      decimal.NewFromInt(10),
		Category:    "Food",
		Description: "Lunch",
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	newAmount := decimal.RequireFromString("12.75")
	newCategory := " Groceries "

	patch := domain.ExpensePatch{Amount: &newAmount, Category: &newCategory}
	if err := patch.Apply(e, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !e.Amount.Equal(newAmount) {
		t.Errorf("expected amount %s, got %s", newAmount, e.Amount)
	}
	if e.Category != "Groceries" {
		t.Errorf("expected category Groceries, got %q", e.Category)
	}
	if e.Description != "Lunch" {
		t.Errorf("unpatched description changed: %q", e.Description)
	}
	if !e.CreatedAt.Equal(created) {
		t.Error("CreatedAt must not change on update")
	}
	if !e.UpdatedAt.Equal(updated) {
		t.Errorf("expected UpdatedAt %v, got %v", updated, e.UpdatedAt)
	}
}

func TestExpensePatchApplyRejectsInvalidFieldsWithoutMutation(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	e := &domain.Expense{
		ID:        1,
		Amount:    decimal.NewFromInt(10),
		Category:  "Food",
		CreatedAt: created,
		UpdatedAt: created,
	}

	bad := decimal.NewFromInt(-5)
	empty := "  "

	err := domain.ExpensePatch{Amount: &bad, Category: &empty}.Apply(e, created.Add(time.Hour))
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if !e.Amount.Equal(decimal.NewFromInt(10)) || e.Category != "Food" || !e.UpdatedAt.Equal(created) {
		t.Error("failed patch must leave the expense unchanged")
	}
}
