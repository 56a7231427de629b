package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase/mocks"
)

func testState() domain.AccountState {
	return domain.AccountState{
		Account: domain.Account{
			ID:      "acc-1",
			Name:    "Checking",
			Balance: decimal.NewFromInt(10000),
			Default: true,
		},
		Limits: domain.TransferLimits{
			Daily:          domain.NewLimitBand(decimal.NewFromInt(10000), decimal.Zero),
			Monthly:        domain.NewLimitBand(decimal.NewFromInt(50000), decimal.Zero),
			PerTransaction: decimal.NewFromInt(5000),
		},
		Version: 1,
	}
}

func newTestStore(t *testing.T, clock *mocks.MockClock) *StateStore {
	t.Helper()
	store := NewStateStore(clock, zerolog.Nop())
	if err := store.Seed(testState()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return store
}

func TestStateStore_CommitCAS(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	state, err := store.State(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := state.ApplyTransfer(decimal.NewFromInt(2000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Commit(ctx, next); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	// A second commit computed from the same stale snapshot must lose.
	stale, _ := state.ApplyTransfer(decimal.NewFromInt(3000))
	if err := store.Commit(ctx, stale); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	current, _ := store.State(ctx, "acc-1")
	if !current.Account.Balance.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("balance = %s, want 8000", current.Account.Balance)
	}
	if !current.Limits.Daily.Used.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("daily used = %s, want 2000", current.Limits.Daily.Used)
	}
}

func TestStateStore_ConcurrentCommitsSerialize(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	// Many goroutines each move 100 through a read-apply-commit loop.
	// With the CAS closing the check-then-act race, the final state must
	// account for every successful commit exactly once.
	const workers = 20
	const amount = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				state, err := store.State(ctx, "acc-1")
				if err != nil {
					t.Error(err)
					return
				}
				next, err := state.ApplyTransfer(decimal.NewFromInt(amount))
				if err != nil {
					t.Error(err)
					return
				}
				err = store.Commit(ctx, next)
				if err == nil {
					return
				}
				if !errors.Is(err, domain.ErrVersionConflict) {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	final, _ := store.State(ctx, "acc-1")
	if !final.Account.Balance.Equal(decimal.NewFromInt(10000 - workers*amount)) {
		t.Errorf("balance = %s, want %d", final.Account.Balance, 10000-workers*amount)
	}
	if !final.Limits.Daily.Used.Equal(decimal.NewFromInt(workers * amount)) {
		t.Errorf("daily used = %s, want %d", final.Limits.Daily.Used, workers*amount)
	}
	if err := final.Limits.CheckIntegrity(); err != nil {
		t.Errorf("integrity broken after concurrent commits: %v", err)
	}
}

func TestStateStore_DailyRollover(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	state, _ := store.State(ctx, "acc-1")
	next, _ := state.ApplyTransfer(decimal.NewFromInt(4000))
	if err := store.Commit(ctx, next); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// Cross midnight: daily resets, monthly carries.
	clock.Advance(2 * time.Hour)

	fresh, _ := store.State(ctx, "acc-1")
	if !fresh.Limits.Daily.Used.IsZero() {
		t.Errorf("daily used after rollover = %s, want 0", fresh.Limits.Daily.Used)
	}
	if !fresh.Limits.Daily.Remaining.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("daily remaining after rollover = %s, want 10000", fresh.Limits.Daily.Remaining)
	}
	if !fresh.Limits.Monthly.Used.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("monthly used = %s, want 4000", fresh.Limits.Monthly.Used)
	}
	if fresh.Version != next.Version+1 {
		t.Errorf("rollover must bump the version: got %d, want %d", fresh.Version, next.Version+1)
	}
}

func TestStateStore_MonthlyRollover(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	state, _ := store.State(ctx, "acc-1")
	next, _ := state.ApplyTransfer(decimal.NewFromInt(4000))
	if err := store.Commit(ctx, next); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	clock.Advance(2 * time.Hour) // July 1st

	fresh, _ := store.State(ctx, "acc-1")
	if !fresh.Limits.Daily.Used.IsZero() || !fresh.Limits.Monthly.Used.IsZero() {
		t.Errorf("both bands reset on month rollover, got daily %s monthly %s",
			fresh.Limits.Daily.Used, fresh.Limits.Monthly.Used)
	}
}

func TestStateStore_RolloverInvalidatesStaleCommit(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	state, _ := store.State(ctx, "acc-1")
	next, _ := state.ApplyTransfer(decimal.NewFromInt(1000))

	clock.Advance(2 * time.Minute)

	if err := store.Commit(ctx, next); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("commit computed before a rollover must conflict, got %v", err)
	}
}

func TestStateStore_RejectsCorruptCommit(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	store := newTestStore(t, clock)
	ctx := context.Background()

	state, _ := store.State(ctx, "acc-1")
	corrupt := state
	corrupt.Version++
	corrupt.Limits.Daily.Remaining = decimal.NewFromInt(1)

	if err := store.Commit(ctx, corrupt); !errors.Is(err, domain.ErrCorruptLimits) {
		t.Fatalf("expected ErrCorruptLimits, got %v", err)
	}
}

func TestStateStore_DefaultState(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	store := NewStateStore(clock, zerolog.Nop())

	if _, err := store.DefaultState(context.Background()); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on empty store, got %v", err)
	}

	savings := testState()
	savings.Account.ID = "acc-2"
	savings.Account.Default = false
	if err := store.Seed(savings); err != nil {
		t.Fatal(err)
	}

	def := testState()
	if err := store.Seed(def); err != nil {
		t.Fatal(err)
	}

	state, err := store.DefaultState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Account.ID != "acc-1" {
		t.Errorf("default account = %s, want acc-1", state.Account.ID)
	}
}
