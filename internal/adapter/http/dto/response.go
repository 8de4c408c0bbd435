package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse is one page of expenses.
type ListExpensesResponse struct {
	Items    []*ExpenseResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Pages    int                `json:"pages"`
}

// ListExpensesFromOutput converts use case output to a response.
func ListExpensesFromOutput(out *usecase.ListExpensesOutput) *ListExpensesResponse {
	return &ListExpensesResponse{
		Items:    ExpensesFromDomain(out.Items),
		Total:    out.Total,
		Page:     out.Page,
		PageSize: out.PageSize,
		Pages:    out.Pages,
	}
}

// DateRange echoes the requested summary window.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// SummaryResponse represents a spending summary.
type SummaryResponse struct {
	TotalSpending decimal.Decimal        `json:"total_spending"`
	TotalExpenses int                    `json:"total_expenses"`
	Categories    []domain.CategoryTotal `json:"categories"`
	DateRange     *DateRange             `json:"date_range,omitempty"`
}

// SummaryFromUseCase converts a use case summary to a response.
func SummaryFromUseCase(s *usecase.Summary, from, to *time.Time) *SummaryResponse {
	resp := &SummaryResponse{
		TotalSpending: s.TotalSpending,
		TotalExpenses: s.TotalExpenses,
		Categories:    s.Categories,
	}

	if from != nil || to != nil {
		resp.DateRange = &DateRange{}
		if from != nil {
			resp.DateRange.From = from.Format(domain.DateLayout)
		}
		if to != nil {
			resp.DateRange.To = to.Format(domain.DateLayout)
		}
	}

	return resp
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a successful login or token refresh.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}
