package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(ownerID string) usecase.AddExpenseInput {
	return usecase.AddExpenseInput{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		OwnerID:     ownerID,
	}
}

// UpdateExpenseRequest represents a partial update. Absent fields stay
// untouched.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateExpenseRequest) ToPatch() domain.ExpensePatch {
	return domain.ExpensePatch{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
	}
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}
