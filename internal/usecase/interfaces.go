package usecase

import (
	"context"
	"time"

	"github.com/pocketbank/transfercore/internal/domain"
)

// StateStore owns the authoritative balance/limits state. The in-memory
// implementation is the deployment target; the interface does not assume it,
// a durable store is a valid substitute.
type StateStore interface {
	// State returns the current version-stamped snapshot for an account.
	State(ctx context.Context, accountID string) (domain.AccountState, error)
	// DefaultState returns the snapshot of the default source account.
	DefaultState(ctx context.Context) (domain.AccountState, error)
	// Commit persists next if and only if the stored version is exactly
	// next.Version-1; otherwise it returns domain.ErrVersionConflict.
	// Balance and limits land together or not at all.
	Commit(ctx context.Context, next domain.AccountState) error
	// ListAccounts returns all known accounts.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// HistoryQuery filters the transaction history listing.
type HistoryQuery struct {
	Status domain.TransactionStatus
	Limit  int
	Offset int
}

// TransactionHistory stores completed and failed transaction records,
// newest-first.
type TransactionHistory interface {
	Record(ctx context.Context, tx *domain.Transaction) error
	List(ctx context.Context, q HistoryQuery) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransferGateway is the remote transfer endpoint. Submit either commits
// the transfer authoritatively and returns the record, or fails with
// domain.ErrNetworkUnavailable (transient, retryable) or a
// *domain.TransferError (terminal).
type TransferGateway interface {
	Submit(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock abstracts time for limit window rollover and timestamps.
type Clock interface {
	Now() time.Time
}

// IdempotencyStore handles idempotency key storage for the HTTP facade.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
