package usecase

import (
	"context"

	"github.com/pocketbank/transfercore/internal/domain"
)

// HistoryUseCase exposes the transaction history, newest-first.
type HistoryUseCase struct {
	history TransactionHistory
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(history TransactionHistory) *HistoryUseCase {
	return &HistoryUseCase{history: history}
}

// List returns a page of transactions.
func (uc *HistoryUseCase) List(ctx context.Context, q HistoryQuery) ([]*domain.Transaction, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryPageSize
	}
	if q.Limit > MaxHistoryPageSize {
		q.Limit = MaxHistoryPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	return uc.history.List(ctx, q)
}

// Get returns a single transaction by ID.
func (uc *HistoryUseCase) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.history.GetByID(ctx, id)
}
