package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/infrastructure/metrics"
)

// SummaryUseCase computes spending summaries over the ledger.
type SummaryUseCase struct {
	expenseRepo ExpenseRepository
	summaries   *SummaryCache
	metrics     *metrics.Metrics
}

// NewSummaryUseCase creates a new SummaryUseCase. summaries may be nil.
func NewSummaryUseCase(expenseRepo ExpenseRepository, summaries *SummaryCache) *SummaryUseCase {
	return &SummaryUseCase{
		expenseRepo: expenseRepo,
		summaries:   summaries,
	}
}

// WithMetrics attaches Prometheus instrumentation.
func (uc *SummaryUseCase) WithMetrics(m *metrics.Metrics) *SummaryUseCase {
	uc.metrics = m

	return uc
}

// SummaryInput scopes a summary to an owner and an optional date range.
type SummaryInput struct {
	OwnerID string
	From    *time.Time
	To      *time.Time
}

// Summary is the aggregate spending report.
type Summary struct {
	TotalSpending decimal.Decimal        `json:"total_spending"`
	TotalExpenses int                    `json:"total_expenses"`
	Categories    []domain.CategoryTotal `json:"categories"`
}

// Summary returns the total spending and per-category breakdown for the
// owner's expenses in the given range.
func (uc *SummaryUseCase) Summary(ctx context.Context, input SummaryInput) (*Summary, error) {
	start := time.Now()

	if cached, ok := uc.cachedSummary(ctx, input); ok {
		if uc.metrics != nil {
			uc.metrics.SummaryCacheHits.Inc()
		}

		return cached, nil
	}

	expenses, err := uc.expenseRepo.ListAll(ctx, input.OwnerID, domain.ExpenseFilter{
		From: input.From,
		To:   input.To,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalSpending: domain.TotalSpending(expenses),
		TotalExpenses: len(expenses),
		Categories:    domain.CategoryBreakdown(expenses),
	}

	uc.storeSummary(ctx, input, summary)

	if uc.metrics != nil {
		uc.metrics.SummariesComputed.Inc()
		uc.metrics.SummaryDuration.Observe(time.Since(start).Seconds())
	}

	return summary, nil
}

func (uc *SummaryUseCase) cachedSummary(ctx context.Context, input SummaryInput) (*Summary, bool) {
	if uc.summaries == nil {
		return nil, false
	}

	data, err := uc.summaries.Get(ctx, input)
	if err != nil || data == nil {
		return nil, false
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

func (uc *SummaryUseCase) storeSummary(ctx context.Context, input SummaryInput, summary *Summary) {
	if uc.summaries == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	_ = uc.summaries.Set(ctx, input, data)
}

// SummaryCache caches computed summaries. Every owner has a generation value
// baked into the data keys; bumping it on mutation orphans stale entries,
// which then age out through the TTL.
type SummaryCache struct {
	cache Cache
	ttl   time.Duration
}

// NewSummaryCache creates a new SummaryCache over a cache backend.
func NewSummaryCache(cache Cache, ttl time.Duration) *SummaryCache {
	return &SummaryCache{cache: cache, ttl: ttl}
}

// Get returns a cached summary payload, or nil on a miss.
func (c *SummaryCache) Get(ctx context.Context, input SummaryInput) ([]byte, error) {
	key, err := c.dataKey(ctx, input)
	if err != nil {
		return nil, err
	}

	return c.cache.Get(ctx, key)
}

// Set stores a summary payload under the owner's current generation.
func (c *SummaryCache) Set(ctx context.Context, input SummaryInput, data []byte) error {
	key, err := c.dataKey(ctx, input)
	if err != nil {
		return err
	}

	return c.cache.Set(ctx, key, data, c.ttl)
}

// Invalidate bumps the owner's generation so existing entries are never
// served again.
func (c *SummaryCache) Invalidate(ctx context.Context, ownerID string) {
	gen := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	_ = c.cache.Set(ctx, genKey(ownerID), []byte(gen), c.ttl)
}

func (c *SummaryCache) dataKey(ctx context.Context, input SummaryInput) (string, error) {
	gen, err := c.cache.Get(ctx, genKey(input.OwnerID))
	if err != nil {
		return "", err
	}
	if gen == nil {
		gen = []byte("0")
	}

	from, to := "", ""
	if input.From != nil {
		from = input.From.Format(domain.DateLayout)
	}
	if input.To != nil {
		to = input.To.Format(domain.DateLayout)
	}

	return fmt.Sprintf("summary:%s:%s:%s:%s", input.OwnerID, gen, from, to), nil
}

func genKey(ownerID string) string {
	return "summary:gen:" + ownerID
}
