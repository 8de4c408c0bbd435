package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/expensetracker/internal/adapter/repository/jsonfile"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

var (
	dataFile string

	addAmount      string
	addCategory    string
	addDescription string

	filterCategory  string
	filterFrom      string
	filterTo        string
	filterMinAmount string
	filterMaxAmount string
	sortBy          string
	sortOrder       string
	page            int
	pageSize        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "expensetracker",
		Short: "Track expenses in a local JSON file",
		Long:  `A command line expense tracker. Records live in a JSON file next to you, no server required.`,
	}

	rootCmd.PersistentFlags().StringVar(&dataFile, "file", "expenses.json", "Path to the expenses file")

	addCmd := &cobra.Command{
		Use:   "add --amount AMOUNT --category CATEGORY [--description TEXT]",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd()
		},
	}
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Amount spent")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Expense category")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Optional description")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("category")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
	listCmd.Flags().StringVar(&filterCategory, "category", "", "Filter by category (case-insensitive substring)")
	listCmd.Flags().StringVar(&filterFrom, "from", "", "Only expenses on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&filterTo, "to", "", "Only expenses up to and including this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&filterMinAmount, "min-amount", "", "Only expenses of at least this amount")
	listCmd.Flags().StringVar(&filterMaxAmount, "max-amount", "", "Only expenses of at most this amount")
	listCmd.Flags().StringVar(&sortBy, "sort-by", "date", "Sort key: date, amount or category")
	listCmd.Flags().StringVar(&sortOrder, "order", "desc", "Sort direction: asc or desc")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&pageSize, "page-size", 20, "Records per page")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a single expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}

	totalCmd := &cobra.Command{
		Use:   "total",
		Short: "Show total spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotal()
		},
	}
	totalCmd.Flags().StringVar(&filterFrom, "from", "", "Only expenses on or after this date (YYYY-MM-DD)")
	totalCmd.Flags().StringVar(&filterTo, "to", "", "Only expenses up to and including this date (YYYY-MM-DD)")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary()
		},
	}
	summaryCmd.Flags().StringVar(&filterFrom, "from", "", "Only expenses on or after this date (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&filterTo, "to", "", "Only expenses up to and including this date (YYYY-MM-DD)")

	rootCmd.AddCommand(addCmd, listCmd, getCmd, deleteCmd, totalCmd, summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newExpenseUseCase() *usecase.ExpenseUseCase {
	store := jsonfile.NewStore(dataFile, zerolog.New(os.Stderr).With().Timestamp().Logger())

	return usecase.NewExpenseUseCase(store, nil)
}

func newSummaryUseCase() *usecase.SummaryUseCase {
	store := jsonfile.NewStore(dataFile, zerolog.New(os.Stderr).With().Timestamp().Logger())

	return usecase.NewSummaryUseCase(store, nil)
}

func runAdd() error {
	amount, err := decimal.NewFromString(addAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: must be a number", addAmount)
	}

	expense, err := newExpenseUseCase().AddExpense(context.Background(), usecase.AddExpenseInput{
		Amount:      amount,
		Category:    addCategory,
		Description: addDescription,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Expense added successfully! (ID: %d)\n", expense.ID)

	return nil
}

func runList() error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}

	sort, err := domain.ParseSortSpec(sortBy, sortOrder)
	if err != nil {
		return err
	}

	out, err := newExpenseUseCase().ListExpenses(context.Background(), usecase.ListExpensesInput{
		Filter:   filter,
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	if out.Total == 0 {
		fmt.Println("No expenses recorded yet.")

		return nil
	}

	line := strings.Repeat("=", 80)
	fmt.Println(line)
	fmt.Printf("%-5s %-20s %-15s %-10s %-30s\n", "ID", "Date", "Category", "Amount", "Description")
	fmt.Println(line)
	for _, e := range out.Items {
		fmt.Printf("%-5d %-20s %-15s $%-9s %-30s\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Category,
			e.Amount.StringFixed(2),
			e.Description,
		)
	}
	fmt.Println(line)
	fmt.Printf("Page %d of %d (%d expenses)\n", out.Page, out.Pages, out.Total)

	return nil
}

func runGet(rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ID %q", rawID)
	}

	e, err := newExpenseUseCase().GetExpense(context.Background(), id, "")
	if err != nil {
		return err
	}

	fmt.Printf("ID:          %d\n", e.ID)
	fmt.Printf("Date:        %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Category:    %s\n", e.Category)
	fmt.Printf("Amount:      $%s\n", e.Amount.StringFixed(2))
	fmt.Printf("Description: %s\n", e.Description)

	return nil
}

func runDelete(rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ID %q", rawID)
	}

	if err := newExpenseUseCase().DeleteExpense(context.Background(), id, ""); err != nil {
		return err
	}

	fmt.Printf("Expense %d deleted.\n", id)

	return nil
}

func runTotal() error {
	summary, err := rangeSummary()
	if err != nil {
		return err
	}

	fmt.Printf("Total Spending: $%s\n", summary.TotalSpending.StringFixed(2))

	return nil
}

func runSummary() error {
	summary, err := rangeSummary()
	if err != nil {
		return err
	}

	fmt.Printf("Total Spending: $%s (%d expenses)\n", summary.TotalSpending.StringFixed(2), summary.TotalExpenses)

	if len(summary.Categories) == 0 {
		return nil
	}

	line := strings.Repeat("-", 40)
	fmt.Println("\nSpending by Category:")
	fmt.Println(line)
	for _, c := range summary.Categories {
		fmt.Printf("%-20s $%10s (%s%%)\n", c.Category, c.Total.StringFixed(2), c.Percentage.StringFixed(1))
	}
	fmt.Println(line)

	return nil
}

func rangeSummary() (*usecase.Summary, error) {
	from, err := domain.ParseDateFilter("from", filterFrom)
	if err != nil {
		return nil, err
	}

	to, err := domain.ParseDateFilter("to", filterTo)
	if err != nil {
		return nil, err
	}

	return newSummaryUseCase().Summary(context.Background(), usecase.SummaryInput{
		From: from,
		To:   to,
	})
}

func buildFilter() (domain.ExpenseFilter, error) {
	filter := domain.ExpenseFilter{Category: filterCategory}

	from, err := domain.ParseDateFilter("from", filterFrom)
	if err != nil {
		return domain.ExpenseFilter{}, err
	}
	filter.From = from

	to, err := domain.ParseDateFilter("to", filterTo)
	if err != nil {
		return domain.ExpenseFilter{}, err
	}
	filter.To = to

	if filterMinAmount != "" {
		min, err := decimal.NewFromString(filterMinAmount)
		if err != nil {
			return domain.ExpenseFilter{}, fmt.Errorf("invalid min-amount %q", filterMinAmount)
		}
		filter.MinAmount = &min
	}

	if filterMaxAmount != "" {
		max, err := decimal.NewFromString(filterMaxAmount)
		if err != nil {
			return domain.ExpenseFilter{}, fmt.Errorf("invalid max-amount %q", filterMaxAmount)
		}
		filter.MaxAmount = &max
	}

	return filter, nil
}
