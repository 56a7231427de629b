package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// StateStore is the in-memory authoritative store for account balance and
// limits. Commits serialize through one mutex and a version compare-and-swap,
// so two concurrent transfers can never interleave their read-modify-write.
// Daily and monthly usage reset lazily when their window rolls over; no
// background tasks are involved.
type StateStore struct {
	mu        sync.Mutex
	records   map[string]*record
	order     []string
	defaultID string
	clock     usecase.Clock
	logger    zerolog.Logger
}

type record struct {
	state domain.AccountState
	day   time.Time
	month time.Time
}

// NewStateStore creates an empty StateStore.
func NewStateStore(clock usecase.Clock, logger zerolog.Logger) *StateStore {
	return &StateStore{
		records: make(map[string]*record),
		clock:   clock,
		logger:  logger,
	}
}

// Seed installs an account state. The first account, or any marked Default,
// becomes the default transfer source.
func (s *StateStore) Seed(state domain.AccountState) error {
	if err := state.Limits.CheckIntegrity(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	if _, exists := s.records[state.Account.ID]; !exists {
		s.order = append(s.order, state.Account.ID)
	}
	s.records[state.Account.ID] = &record{
		state: state,
		day:   startOfDay(now),
		month: startOfMonth(now),
	}
	if s.defaultID == "" || state.Account.Default {
		s.defaultID = state.Account.ID
	}

	return nil
}

// State returns the current snapshot for an account, applying any pending
// limit window rollover first.
func (s *StateStore) State(ctx context.Context, accountID string) (domain.AccountState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[accountID]
	if !ok {
		return domain.AccountState{}, domain.ErrAccountNotFound
	}
	s.rolloverLocked(rec)

	return rec.state, nil
}

// DefaultState returns the snapshot of the default source account.
func (s *StateStore) DefaultState(ctx context.Context) (domain.AccountState, error) {
	s.mu.Lock()
	id := s.defaultID
	s.mu.Unlock()

	if id == "" {
		return domain.AccountState{}, domain.ErrAccountNotFound
	}

	return s.State(ctx, id)
}

// Commit persists next if the stored version is exactly next.Version-1.
// Balance and limits are swapped in together under the lock, so readers
// always see a consistent pair.
func (s *StateStore) Commit(ctx context.Context, next domain.AccountState) error {
	if err := next.Limits.CheckIntegrity(); err != nil {
		s.logger.Error().Err(err).Str("account_id", next.Account.ID).
			Msg("rejecting commit of corrupt limits snapshot")
		return err
	}
	if next.Account.Balance.IsNegative() {
		return domain.ErrBalanceUnderflow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[next.Account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	s.rolloverLocked(rec)

	if rec.state.Version != next.Version-1 {
		return domain.ErrVersionConflict
	}

	rec.state = next

	return nil
}

// ListAccounts returns all accounts in seed order.
func (s *StateStore) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		s.rolloverLocked(rec)
		acc := rec.state.Account
		accounts = append(accounts, &acc)
	}

	return accounts, nil
}

// rolloverLocked resets the daily and monthly bands when their window has
// passed. A rollover bumps the version: it is a state change, and any commit
// computed against the pre-rollover snapshot must lose its CAS.
func (s *StateStore) rolloverLocked(rec *record) {
	now := s.clock.Now().UTC()

	changed := false
	if day := startOfDay(now); !day.Equal(rec.day) {
		rec.state.Limits.Daily = domain.NewLimitBand(rec.state.Limits.Daily.Limit, decimal.Zero)
		rec.day = day
		changed = true
	}
	if month := startOfMonth(now); !month.Equal(rec.month) {
		rec.state.Limits.Monthly = domain.NewLimitBand(rec.state.Limits.Monthly.Limit, decimal.Zero)
		rec.month = month
		changed = true
	}
	if changed {
		rec.state.Version++
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
