// Package gateway simulates the bank's remote transfer endpoint in-process.
// It owns the authoritative validation pass: the client-side check is never
// trusted alone, since state may have moved between the two.
package gateway

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/infrastructure/metrics"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// Options configure the simulated transport.
type Options struct {
	// Latency is the artificial round-trip delay per submit.
	Latency time.Duration
	// FailureRate is the probability (0..1) of a transient network failure
	// per submit, on top of any scripted failures.
	FailureRate float64
	// Seed feeds the failure-rate RNG; 0 means seed from the clock.
	Seed int64
}

// Mock is the in-process stand-in for the remote transfer endpoint. Submit
// re-validates against the authoritative snapshot and commits balance and
// limits together through the store's compare-and-swap.
type Mock struct {
	store     usecase.StateStore
	idGen     usecase.IDGenerator
	clock     usecase.Clock
	threshold decimal.Decimal
	opts      Options
	logger    zerolog.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	failNext int
}

// NewMock creates a new mock gateway.
func NewMock(
	store usecase.StateStore,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	threshold decimal.Decimal,
	opts Options,
	logger zerolog.Logger,
) *Mock {
	seed := opts.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}

	return &Mock{
		store:     store,
		idGen:     idGen,
		clock:     clock,
		threshold: threshold,
		opts:      opts,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// FailNext forces the next n submits to fail with a transient network
// error.
func (m *Mock) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = n
}

// Submit runs one authoritative transfer attempt. It returns the committed
// transaction, domain.ErrNetworkUnavailable for a simulated transient
// outage, or a *domain.TransferError with the specific terminal kind.
func (m *Mock) Submit(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	if m.opts.Latency > 0 {
		select {
		case <-time.After(m.opts.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.tripNetworkFault() {
		return nil, domain.ErrNetworkUnavailable
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state, err := m.store.State(ctx, req.FromAccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, domain.NewTransferError(domain.FailureInvalidAccount, "unknown source account")
			}
			return nil, err
		}

		if err := state.Limits.CheckIntegrity(); err != nil {
			m.logger.Error().Err(err).Str("account_id", req.FromAccountID).
				Msg("authoritative snapshot failed integrity check")
			return nil, err
		}

		result := domain.Validate(req.Amount, state.Account.Balance, state.Limits, m.threshold)
		if !result.IsValid {
			kind := domain.FailureKindOfResult(result)
			msg := result.FirstMessage()
			if msg == "" {
				msg = domain.ErrInvalidAmount.Error()
			}
			return nil, domain.NewTransferError(kind, msg)
		}

		next, err := state.ApplyTransfer(req.Amount)
		if err != nil {
			// Unreachable after a valid pass; keep it typed anyway.
			return nil, domain.NewTransferError(domain.FailureInsufficientFunds, err.Error())
		}

		err = m.store.Commit(ctx, next)
		if errors.Is(err, domain.ErrVersionConflict) {
			// Lost the race against a concurrent commit. Loop and
			// re-validate against the fresh state rather than retrying
			// the write blindly.
			metrics.CommitConflicts.Inc()
			continue
		}
		if err != nil {
			return nil, err
		}

		return &domain.Transaction{
			ID:            m.idGen.Generate(),
			FromAccountID: req.FromAccountID,
			Recipient:     req.Recipient,
			Amount:        req.Amount,
			Note:          req.Note,
			Status:        domain.TransactionCompleted,
			BalanceAfter:  next.Account.Balance,
			CreatedAt:     m.clock.Now().UTC(),
		}, nil
	}
}

func (m *Mock) tripNetworkFault() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext > 0 {
		m.failNext--
		return true
	}
	if m.opts.FailureRate > 0 && m.rng.Float64() < m.opts.FailureRate {
		return true
	}

	return false
}
