package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/expensetracker/internal/domain"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository backed
// by an in-memory slice. Func fields override individual methods.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses []*domain.Expense
	nextID   int64

	CreateFunc  func(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetByIDFunc func(ctx context.Context, id int64, ownerID string) (*domain.Expense, error)
	ListFunc    func(ctx context.Context, ownerID string, filter domain.ExpenseFilter, sort domain.SortSpec, limit, offset int) ([]*domain.Expense, int, error)
	ListAllFunc func(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]*domain.Expense, error)
	UpdateFunc  func(ctx context.Context, expense *domain.Expense) error
	DeleteFunc  func(ctx context.Context, id int64, ownerID string) error
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{nextID: 1}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *expense
	stored.ID = m.nextID
	m.nextID++
	m.expenses = append(m.expenses, &stored)

	return &stored, nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id int64, ownerID string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.expenses {
		if e.ID == id && !e.Deleted && (ownerID == "" || e.OwnerID == ownerID) {
			copied := *e
			return &copied, nil
		}
	}

	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) List(ctx context.Context, ownerID string, filter domain.ExpenseFilter, sort domain.SortSpec, limit, offset int) ([]*domain.Expense, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter, sort, limit, offset)
	}

	matched, err := m.ListAll(ctx, ownerID, filter)
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

func (m *MockExpenseRepository) ListAll(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, ownerID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*domain.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		if e.Deleted || (ownerID != "" && e.OwnerID != ownerID) {
			continue
		}
		if filter.Matches(e) {
			copied := *e
			matched = append(matched, &copied)
		}
	}

	return matched, nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.expenses {
		if e.ID == expense.ID && !e.Deleted {
			copied := *expense
			m.expenses[i] = &copied
			return nil
		}
	}

	return domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.expenses {
		if e.ID == id && !e.Deleted && (ownerID == "" || e.OwnerID == ownerID) {
			e.Deleted = true
			return nil
		}
	}

	return domain.ErrExpenseNotFound
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)

	return nil
}
