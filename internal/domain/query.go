package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for date filter parameters.
const DateLayout = "2006-01-02"

// Sort fields.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByCategory = "category"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ExpenseFilter restricts an expense listing. All fields are optional and
// combine with AND. Category matching is a case-insensitive substring match.
// From is inclusive; To is inclusive through the end of that day.
type ExpenseFilter struct {
	Category  string
	From      *time.Time
	To        *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// SortSpec orders an expense listing. Zero value means date descending.
type SortSpec struct {
	By        string
	Direction string
}

// Page is a 1-indexed pagination request.
type Page struct {
	Number int
	Size   int
}

// PageResult is one page of expenses with match totals.
type PageResult struct {
	Items []*Expense
	Total int
	Pages int
}

// ParseDateFilter parses a YYYY-MM-DD filter value, reporting the offending
// parameter name on failure. An empty value means the bound is not set.
func ParseDateFilter(param, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be in YYYY-MM-DD format", ErrInvalidFilter, param)
	}

	return &t, nil
}

// ParseSortSpec validates sort parameters, reporting the offending parameter
// name on failure. Empty values fall back to the default (date descending).
func ParseSortSpec(by, direction string) (SortSpec, error) {
	if by == "" {
		by = SortByDate
	}
	if direction == "" {
		direction = SortDesc
	}

	switch by {
	case SortByDate, SortByAmount, SortByCategory:
	default:
		return SortSpec{}, fmt.Errorf("%w: sort_by must be one of date, amount, category", ErrInvalidFilter)
	}

	switch direction {
	case SortAsc, SortDesc:
	default:
		return SortSpec{}, fmt.Errorf("%w: sort_order must be asc or desc", ErrInvalidFilter)
	}

	return SortSpec{By: by, Direction: direction}, nil
}

// Matches reports whether the expense passes every set filter field.
func (f ExpenseFilter) Matches(e *Expense) bool {
	if f.Category != "" &&
		!strings.Contains(strings.ToLower(e.Category), strings.ToLower(f.Category)) {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.CreatedAt.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}

	return true
}

// FilterExpenses returns the expenses matching the filter, preserving order.
func FilterExpenses(expenses []*Expense, filter ExpenseFilter) []*Expense {
	matched := make([]*Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	return matched
}

// SortExpenses orders expenses in place. The sort is stable so equal keys
// keep their insertion order.
func SortExpenses(expenses []*Expense, spec SortSpec) {
	if spec.By == "" {
		spec.By = SortByDate
	}
	if spec.Direction == "" {
		spec.Direction = SortDesc
	}

	less := func(a, b *Expense) bool {
		switch spec.By {
		case SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case SortByCategory:
			return a.Category < b.Category
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		if spec.Direction == SortDesc {
			return less(expenses[j], expenses[i])
		}

		return less(expenses[i], expenses[j])
	})
}

// Paginate slices one page out of the expenses. Pages are 1-indexed; a page
// past the end yields an empty slice, not an error.
func Paginate(expenses []*Expense, page Page) PageResult {
	total := len(expenses)

	pages := 0
	if total > 0 {
		pages = (total + page.Size - 1) / page.Size
	}

	start := (page.Number - 1) * page.Size
	if start >= total {
		return PageResult{Items: []*Expense{}, Total: total, Pages: pages}
	}

	end := start + page.Size
	if end > total {
		end = total
	}

	return PageResult{Items: expenses[start:end], Total: total, Pages: pages}
}
