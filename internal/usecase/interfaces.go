package usecase

import (
	"context"
	"time"

	"github.com/iho/expensetracker/internal/domain"
)

// ExpenseRepository defines data access for expenses. An empty ownerID means
// the ledger is single-user and unscoped (CLI variant); otherwise every read
// and write is restricted to that owner and a miss is domain.ErrExpenseNotFound
// whether the expense is absent or belongs to someone else.
type ExpenseRepository interface {
	// Create stores the expense, assigns the next unique ID and returns the
	// stored record. IDs are monotonically increasing and never reused.
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetByID(ctx context.Context, id int64, ownerID string) (*domain.Expense, error)
	// List returns one page of matching expenses plus the total match count.
	List(ctx context.Context, ownerID string, filter domain.ExpenseFilter, sort domain.SortSpec, limit, offset int) ([]*domain.Expense, int, error)
	// ListAll returns every matching expense in insertion order, unpaginated.
	ListAll(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int64, ownerID string) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// IDGenerator generates unique principal IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
