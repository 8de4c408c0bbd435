package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// Store implements usecase.ExpenseRepository on top of a single JSON file.
// It backs the CLI, which runs single-user, so owner scoping is a pass-through
// and deletes are hard.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// record is the persisted form of an expense. Amounts are stored as strings
// to keep them exact.
type record struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewStore creates a Store over the given file path. The file is created on
// the first write.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Create appends the expense with the highest existing ID plus one, so gaps
// left by interior deletions are never reused.
func (s *Store) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load()
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, e := range expenses {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	stored := *expense
	stored.ID = maxID + 1
	expenses = append(expenses, &stored)

	if err := s.save(expenses); err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetByID retrieves an expense by ID.
func (s *Store) GetByID(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}

	return nil, domain.ErrExpenseNotFound
}

// List retrieves one page of matching expenses plus the total match count.
func (s *Store) List(ctx context.Context, ownerID string, filter domain.ExpenseFilter, sort domain.SortSpec, limit, offset int) ([]*domain.Expense, int, error) {
	matched, err := s.ListAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	domain.SortExpenses(matched, sort)

	total := len(matched)
	if offset >= total {
		return []*domain.Expense{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return matched[offset:end], total, nil
}

// ListAll retrieves every matching expense in insertion order.
func (s *Store) ListAll(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load()
	if err != nil {
		return nil, err
	}

	return domain.FilterExpenses(expenses, filter), nil
}

// Update replaces the stored expense with the same ID.
func (s *Store) Update(ctx context.Context, expense *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load()
	if err != nil {
		return err
	}

	for i, e := range expenses {
		if e.ID == expense.ID {
			copied := *expense
			expenses[i] = &copied

			return s.save(expenses)
		}
	}

	return domain.ErrExpenseNotFound
}

// Delete removes the expense from the file entirely.
func (s *Store) Delete(ctx context.Context, id int64, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load()
	if err != nil {
		return err
	}

	for i, e := range expenses {
		if e.ID == id {
			expenses = append(expenses[:i], expenses[i+1:]...)

			return s.save(expenses)
		}
	}

	return domain.ErrExpenseNotFound
}

// load reads the ledger file. A missing file is an empty ledger. A corrupted
// file is logged and treated as empty rather than blocking the CLI.
func (s *Store) load() ([]*domain.Expense, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn().
			Err(err).
			Str("path", s.path).
			Msg("ledger file is corrupted, starting with an empty ledger")

		return nil, nil
	}

	expenses := make([]*domain.Expense, 0, len(records))
	for _, rec := range records {
		expense, err := recordToExpense(rec)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("id", rec.ID).
				Str("path", s.path).
				Msg("ledger file is corrupted, starting with an empty ledger")

			return nil, nil
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// save writes the full ledger atomically via a temp file rename.
func (s *Store) save(expenses []*domain.Expense) error {
	records := make([]record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, expenseToRecord(e))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".expenses-*.json")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func expenseToRecord(e *domain.Expense) record {
	return record{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func recordToExpense(rec record) (*domain.Expense, error) {
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", rec.Amount, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", rec.CreatedAt, err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad updated_at %q: %w", rec.UpdatedAt, err)
	}

	return &domain.Expense{
		ID:          rec.ID,
		Amount:      amount,
		Category:    rec.Category,
		Description: rec.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
