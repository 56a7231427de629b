package memory

import (
	"context"
	"sync"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// HistoryRepository keeps transaction records in memory, newest-first.
// Records are immutable once stored; List hands out copies.
type HistoryRepository struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

// NewHistoryRepository creates an empty HistoryRepository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Record prepends a transaction to the history.
func (r *HistoryRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.txs = append([]domain.Transaction{*tx}, r.txs...)

	return nil
}

// List returns a newest-first page of transactions.
func (r *HistoryRepository) List(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Transaction
	for i := range r.txs {
		if q.Status != "" && r.txs[i].Status != q.Status {
			continue
		}
		tx := r.txs[i]
		matched = append(matched, &tx)
	}

	if q.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return matched, nil
}

// GetByID returns one transaction.
func (r *HistoryRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.txs {
		if r.txs[i].ID == id {
			tx := r.txs[i]
			return &tx, nil
		}
	}

	return nil, domain.ErrTransactionNotFound
}
