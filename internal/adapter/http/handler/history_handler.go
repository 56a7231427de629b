package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	List(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error)
	Get(ctx context.Context, id string) (*domain.Transaction, error)
}

// HistoryHandler handles transaction history HTTP requests.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List lists transactions newest-first, optionally filtered by status.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := usecase.HistoryQuery{
		Status: domain.TransactionStatus(r.URL.Query().Get("status")),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	}

	txs, err := h.historyUC.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// Get retrieves a transaction by ID.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.historyUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}
