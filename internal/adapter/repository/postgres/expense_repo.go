package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// ExpenseRepository implements usecase.ExpenseRepository over PostgreSQL.
// Deletes are soft: rows are flagged and excluded from every read.
type ExpenseRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool, retrier *Retrier) *ExpenseRepository {
	return &ExpenseRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// Create inserts a new expense and returns the stored record with its
// database-assigned ID.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	query := `
		INSERT INTO expenses (owner_id, amount, category, description, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING id
	`

	stored := *expense

	err := r.retrier.Retry(ctx, func() error {
		return r.pool.QueryRow(ctx, query,
			expense.OwnerID,
			decimalToNumeric(expense.Amount),
			expense.Category,
			expense.Description,
			timeToPgTimestamptz(expense.CreatedAt),
			timeToPgTimestamptz(expense.UpdatedAt),
		).Scan(&stored.ID)
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetByID retrieves a live expense by ID, scoped to ownerID when non-empty.
// Rows owned by other users are reported as not found.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
	query := `
		SELECT id, owner_id, amount, category, description, is_deleted, created_at, updated_at
		FROM expenses
		WHERE id = $1 AND NOT is_deleted AND ($2 = '' OR owner_id = $2)
	`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}

	return expense, err
}

// List retrieves one page of matching expenses plus the total match count.
func (r *ExpenseRepository) List(ctx context.Context, ownerID string, filter domain.ExpenseFilter, sort domain.SortSpec, limit, offset int) ([]*domain.Expense, int, error) {
	where, args := buildFilter(ownerID, filter)

	countQuery := `SELECT COUNT(*) FROM expenses ` + where

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, amount, category, description, is_deleted, created_at, updated_at
		FROM expenses
		%s
		ORDER BY %s, id ASC
		LIMIT $%d OFFSET $%d
	`, where, orderClause(sort), len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0, limit)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}

// ListAll retrieves every matching expense without pagination, ordered by
// insertion so aggregation tie-breaking stays stable.
func (r *ExpenseRepository) ListAll(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	where, args := buildFilter(ownerID, filter)

	query := `
		SELECT id, owner_id, amount, category, description, is_deleted, created_at, updated_at
		FROM expenses
	` + where + ` ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// Update persists changed fields of a live expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $2, category = $3, description = $4, updated_at = $5
		WHERE id = $1 AND NOT is_deleted
	`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, query,
			expense.ID,
			decimalToNumeric(expense.Amount),
			expense.Category,
			expense.Description,
			timeToPgTimestamptz(expense.UpdatedAt),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrExpenseNotFound
		}

		return nil
	})
}

// Delete soft-deletes a live expense. Missing, already deleted and
// foreign-owned rows all report not found.
func (r *ExpenseRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	query := `
		UPDATE expenses
		SET is_deleted = TRUE, updated_at = $3
		WHERE id = $1 AND NOT is_deleted AND ($2 = '' OR owner_id = $2)
	`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, query, id, ownerID, timeToPgTimestamptz(time.Now().UTC()))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrExpenseNotFound
		}

		return nil
	})
}

// buildFilter translates an ExpenseFilter into a WHERE clause with
// positional arguments.
func buildFilter(ownerID string, filter domain.ExpenseFilter) (string, []any) {
	conditions := []string{"NOT is_deleted"}
	args := []any{}

	if ownerID != "" {
		args = append(args, ownerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	if filter.Category != "" {
		args = append(args, "%"+escapeLike(filter.Category)+"%")
		conditions = append(conditions, fmt.Sprintf("category ILIKE $%d", len(args)))
	}

	if filter.From != nil {
		args = append(args, timeToPgTimestamptz(*filter.From))
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if filter.To != nil {
		// To is inclusive at day granularity.
		args = append(args, timeToPgTimestamptz(filter.To.AddDate(0, 0, 1)))
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if filter.MinAmount != nil {
		args = append(args, decimalToNumeric(*filter.MinAmount))
		conditions = append(conditions, fmt.Sprintf("amount >= $%d", len(args)))
	}

	if filter.MaxAmount != nil {
		args = append(args, decimalToNumeric(*filter.MaxAmount))
		conditions = append(conditions, fmt.Sprintf("amount <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(sort domain.SortSpec) string {
	column := "created_at"
	switch sort.By {
	case domain.SortByAmount:
		column = "amount"
	case domain.SortByCategory:
		column = "category"
	}

	direction := "DESC"
	if sort.Direction == domain.SortAsc {
		direction = "ASC"
	}

	return column + " " + direction
}

// escapeLike neutralizes LIKE metacharacters so the category filter stays a
// plain substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)

	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense   domain.Expense
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.OwnerID,
		&amount,
		&expense.Category,
		&expense.Description,
		&expense.Deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.CreatedAt = createdAt.Time
	expense.UpdatedAt = updatedAt.Time

	return &expense, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
