package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// MockStateStore is an in-memory StateStore with pluggable overrides.
type MockStateStore struct {
	mu        sync.Mutex
	states    map[string]domain.AccountState
	defaultID string

	StateFunc        func(ctx context.Context, accountID string) (domain.AccountState, error)
	DefaultStateFunc func(ctx context.Context) (domain.AccountState, error)
	CommitFunc       func(ctx context.Context, next domain.AccountState) error

	Commits int
}

func NewMockStateStore() *MockStateStore {
	return &MockStateStore{states: make(map[string]domain.AccountState)}
}

// Seed installs a state snapshot; the first seeded account (or one marked
// Default) becomes the default source.
func (m *MockStateStore) Seed(state domain.AccountState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.Account.ID] = state
	if m.defaultID == "" || state.Account.Default {
		m.defaultID = state.Account.ID
	}
}

func (m *MockStateStore) State(ctx context.Context, accountID string) (domain.AccountState, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[accountID]
	if !ok {
		return domain.AccountState{}, domain.ErrAccountNotFound
	}
	return state, nil
}

func (m *MockStateStore) DefaultState(ctx context.Context) (domain.AccountState, error) {
	if m.DefaultStateFunc != nil {
		return m.DefaultStateFunc(ctx)
	}
	m.mu.Lock()
	id := m.defaultID
	m.mu.Unlock()
	return m.State(ctx, id)
}

func (m *MockStateStore) Commit(ctx context.Context, next domain.AccountState) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, next)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.states[next.Account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if stored.Version != next.Version-1 {
		return domain.ErrVersionConflict
	}
	m.states[next.Account.ID] = next
	m.Commits++
	return nil
}

func (m *MockStateStore) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := make([]*domain.Account, 0, len(m.states))
	for _, s := range m.states {
		acc := s.Account
		accounts = append(accounts, &acc)
	}
	return accounts, nil
}

// MockHistory is an in-memory TransactionHistory, newest-first.
type MockHistory struct {
	mu  sync.Mutex
	txs []*domain.Transaction

	RecordFunc func(ctx context.Context, tx *domain.Transaction) error
}

func NewMockHistory() *MockHistory {
	return &MockHistory{}
}

func (m *MockHistory) Record(ctx context.Context, tx *domain.Transaction) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append([]*domain.Transaction{tx}, m.txs...)
	return nil
}

func (m *MockHistory) List(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range m.txs {
		if q.Status != "" && tx.Status != q.Status {
			continue
		}
		out = append(out, tx)
	}
	if q.Offset > len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MockHistory) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// All returns every recorded transaction, newest first.
func (m *MockHistory) All() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Transaction, len(m.txs))
	copy(out, m.txs)
	return out
}

// MockGateway scripts gateway behavior per call. Errors are consumed from
// Script in order; once exhausted, SubmitFunc (or a default success) runs.
type MockGateway struct {
	mu       sync.Mutex
	Script   []error
	Attempts int

	SubmitFunc func(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error)
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Submit(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	m.mu.Lock()
	m.Attempts++
	var scripted error
	if len(m.Script) > 0 {
		scripted = m.Script[0]
		m.Script = m.Script[1:]
	}
	m.mu.Unlock()

	if scripted != nil {
		return nil, scripted
	}
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &domain.Transaction{
		ID:            fmt.Sprintf("tx-%d", m.Attempts),
		FromAccountID: req.FromAccountID,
		Recipient:     req.Recipient,
		Amount:        req.Amount,
		Note:          req.Note,
		Status:        domain.TransactionCompleted,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// MockIDGenerator yields deterministic sequential IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%04d", m.n)
}

// MockClock returns a settable fixed time.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to a specific instant.
func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
