package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense.
type Expense struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OwnerID     string          `json:"owner_id,omitempty"`
	Deleted     bool            `json:"deleted,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewExpense builds a validated expense. The ID is zero until storage assigns it.
func NewExpense(amount decimal.Decimal, category, description, ownerID string, now time.Time) (*Expense, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}

	return &Expense{
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ExpensePatch carries a partial update. Nil fields are left unchanged;
// ID, OwnerID and CreatedAt are never patched.
type ExpensePatch struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
}

// Apply validates the provided fields and writes them onto the expense,
// bumping UpdatedAt. The expense is untouched when validation fails.
func (p ExpensePatch) Apply(e *Expense, now time.Time) error {
	if p.Amount != nil {
		if err := ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := ValidateCategory(*p.Category); err != nil {
			return err
		}
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}
	e.UpdatedAt = now

	return nil
}

// Empty reports whether the patch changes nothing.
func (p ExpensePatch) Empty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil
}
