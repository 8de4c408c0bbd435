package handler

import (
	"context"
	"net/http"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	"github.com/iho/expensetracker/internal/domain"
	"github.com/iho/expensetracker/internal/usecase"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	Summary(ctx context.Context, input usecase.SummaryInput) (*usecase.Summary, error)
}

// SummaryHandler handles spending summary requests.
type SummaryHandler struct {
	summaryUC SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// Get returns the total spending and per-category breakdown for the
// authenticated principal, optionally scoped to a date range.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	q := r.URL.Query()

	from, err := domain.ParseDateFilter("from_date", q.Get("from_date"))
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}

	to, err := domain.ParseDateFilter("to_date", q.Get("to_date"))
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}

	summary, err := h.summaryUC.Summary(r.Context(), usecase.SummaryInput{
		OwnerID: ownerID,
		From:    from,
		To:      to,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary, from, to))
}
