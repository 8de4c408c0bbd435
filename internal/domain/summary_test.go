package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/expensetracker/internal/domain"
)

func expense(amount, category string) *domain.Expense {
	return &domain.Expense{
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
}

func TestTotalSpending(t *testing.T) {
	assert.True(t, domain.TotalSpending(nil).IsZero())

	expenses := []*domain.Expense{
		expense("25.50", "Food"),
		expense("20.00", "Transport"),
	}
	assert.Equal(t, "45.5", domain.TotalSpending(expenses).String())
}

func TestTotalSpendingExactDecimalSum(t *testing.T) {
	// 0.10 added a hundred times must be exactly 10, not a float approximation.
	expenses := make([]*domain.Expense, 100)
	for i := range expenses {
		expenses[i] = expense("0.10", "Misc")
	}

	assert.True(t, domain.TotalSpending(expenses).Equal(decimal.NewFromInt(10)))
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []*domain.Expense{
		expense("25.50", "Food"),
		expense("20.00", "Transport"),
	}

	groups := domain.CategoryBreakdown(expenses)
	require.Len(t, groups, 2)

	assert.Equal(t, "Food", groups[0].Category)
	assert.Equal(t, "25.5", groups[0].Total.String())
	assert.Equal(t, 1, groups[0].Count)
	assert.InDelta(t, 56.04, groups[0].Percentage.InexactFloat64(), 0.01)

	assert.Equal(t, "Transport", groups[1].Category)
	assert.Equal(t, "20", groups[1].Total.String())
	assert.Equal(t, 1, groups[1].Count)
	assert.InDelta(t, 43.96, groups[1].Percentage.InexactFloat64(), 0.01)
}

func TestCategoryBreakdownPercentagesSumTo100(t *testing.T) {
	expenses := []*domain.Expense{
		expense("3.33", "A"),
		expense("3.33", "B"),
		expense("3.34", "C"),
	}

	sum := decimal.Zero
	for _, g := range domain.CategoryBreakdown(expenses) {
		sum = sum.Add(g.Percentage)
	}

	assert.InDelta(t, 100.0, sum.InexactFloat64(), 0.0001)
}

func TestCategoryBreakdownSortedByTotalDescending(t *testing.T) {
	expenses := []*domain.Expense{
		expense("5.00", "Small"),
		expense("50.00", "Big"),
		expense("20.00", "Medium"),
	}

	groups := domain.CategoryBreakdown(expenses)
	require.Len(t, groups, 3)
	assert.Equal(t, "Big", groups[0].Category)
	assert.Equal(t, "Medium", groups[1].Category)
	assert.Equal(t, "Small", groups[2].Category)
}

func TestCategoryBreakdownTiesKeepFirstSeenOrder(t *testing.T) {
	expenses := []*domain.Expense{
		expense("10.00", "Zebra"),
		expense("10.00", "Apple"),
	}

	groups := domain.CategoryBreakdown(expenses)
	require.Len(t, groups, 2)
	assert.Equal(t, "Zebra", groups[0].Category)
	assert.Equal(t, "Apple", groups[1].Category)
}

func TestCategoryBreakdownGroupingIsCaseSensitive(t *testing.T) {
	expenses := []*domain.Expense{
		expense("10.00", "food"),
		expense("10.00", "Food"),
	}

	groups := domain.CategoryBreakdown(expenses)
	assert.Len(t, groups, 2)
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	assert.Empty(t, domain.CategoryBreakdown(nil))
}
