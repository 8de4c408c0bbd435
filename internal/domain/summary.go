package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one group of the per-category breakdown.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TotalSpending returns the exact sum of amounts. Zero for an empty set.
func TotalSpending(expenses []*Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}

// CategoryBreakdown groups expenses by exact category string and computes
// each group's total, count and percentage of the grand total. Groups are
// sorted by total descending; ties keep the order in which a category was
// first seen. Grouping is case-sensitive even though filtering is not.
func CategoryBreakdown(expenses []*Expense) []CategoryTotal {
	grand := TotalSpending(expenses)

	index := make(map[string]int)
	groups := make([]CategoryTotal, 0)

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Amount)
		groups[i].Count++
	}

	hundred := decimal.NewFromInt(100)
	for i := range groups {
		if grand.IsPositive() {
			groups[i].Percentage = groups[i].Total.Mul(hundred).Div(grand)
		} else {
			groups[i].Percentage = decimal.Zero
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Total.GreaterThan(groups[b].Total)
	})

	return groups
}
