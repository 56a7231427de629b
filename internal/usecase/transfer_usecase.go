package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/infrastructure/metrics"
)

// RetryPolicy bounds the submit retry loop. Only transient network failures
// are retried; the delay before attempt n+1 is BaseDelay*2^(n-1), capped at
// MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns the production retry budget.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultRetryAttempts,
		BaseDelay:   DefaultRetryBaseDelay,
		MaxDelay:    DefaultRetryMaxDelay,
	}
}

// TransferUseCase orchestrates a transfer attempt: instant client-side
// pre-check, authoritative submit through the gateway with bounded retries,
// and history bookkeeping. Each attempt walks
// Idle -> ClientValidating -> (Rejected | AuthoritativeCheck) -> (Committed | Failed).
type TransferUseCase struct {
	store     StateStore
	history   TransactionHistory
	gateway   TransferGateway
	idGen     IDGenerator
	clock     Clock
	retry     RetryPolicy
	threshold decimal.Decimal
	logger    zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	store StateStore,
	history TransactionHistory,
	gateway TransferGateway,
	idGen IDGenerator,
	clock Clock,
	retry RetryPolicy,
	threshold decimal.Decimal,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		store:     store,
		history:   history,
		gateway:   gateway,
		idGen:     idGen,
		clock:     clock,
		retry:     retry,
		threshold: threshold,
		logger:    logger,
	}
}

// Check runs the instant client-side validation against the latest known
// snapshot. It is stateless and safe to call per keystroke.
func (uc *TransferUseCase) Check(ctx context.Context, amount decimal.Decimal) (domain.ValidationResult, error) {
	state, err := uc.store.DefaultState(ctx)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	if err := state.Limits.CheckIntegrity(); err != nil {
		uc.logger.Error().Err(err).Str("account_id", state.Account.ID).
			Msg("refusing to validate against corrupt limits snapshot")
		return domain.ValidationResult{}, err
	}

	result := domain.Validate(amount, state.Account.Balance, state.Limits, uc.threshold)

	if result.IsValid {
		metrics.ValidationChecks.WithLabelValues("valid").Inc()
	} else {
		metrics.ValidationChecks.WithLabelValues("invalid").Inc()
	}
	for _, w := range result.Warnings {
		metrics.LimitWarnings.WithLabelValues(string(w.Type)).Inc()
	}

	return result, nil
}

// Execute runs a full transfer attempt. On success it returns the committed
// transaction; every failure resolves to a *domain.TransferError with one of
// the closed failure kinds, except caller cancellation which surfaces as the
// context error. A cancelled attempt never mutates shared state.
func (uc *TransferUseCase) Execute(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	start := time.Now()
	defer func() {
		metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}()

	if req.FromAccountID == "" {
		state, err := uc.store.DefaultState(ctx)
		if err != nil {
			return nil, err
		}
		req.FromAccountID = state.Account.ID
	}

	// ClientValidating: fast-fail against the local snapshot, no simulated
	// network traffic on rejection.
	state, err := uc.store.State(ctx, req.FromAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.TransfersTotal.WithLabelValues("rejected").Inc()
			return nil, domain.NewTransferError(domain.FailureInvalidAccount, "unknown source account")
		}
		return nil, err
	}

	if err := state.Limits.CheckIntegrity(); err != nil {
		uc.logger.Error().Err(err).Str("account_id", req.FromAccountID).
			Msg("refusing transfer against corrupt limits snapshot")
		return nil, err
	}

	result := domain.Validate(req.Amount, state.Account.Balance, state.Limits, uc.threshold)
	if !result.IsValid {
		kind := domain.FailureKindOfResult(result)
		metrics.TransfersTotal.WithLabelValues("rejected").Inc()
		metrics.TransferFailures.WithLabelValues(string(kind)).Inc()

		msg := result.FirstMessage()
		if msg == "" {
			msg = domain.ErrInvalidAmount.Error()
		}
		return nil, domain.NewTransferError(kind, msg)
	}

	// AuthoritativeCheck: the gateway re-validates against the server
	// snapshot and commits; the client-side pass above is never trusted
	// alone since state may have moved in between.
	tx, err := uc.submitWithRetry(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			metrics.TransfersTotal.WithLabelValues("cancelled").Inc()
			return nil, ctx.Err()
		}

		var te *domain.TransferError
		if errors.As(err, &te) {
			metrics.TransfersTotal.WithLabelValues("failed").Inc()
			metrics.TransferFailures.WithLabelValues(string(te.Kind)).Inc()
			uc.recordFailed(ctx, req, te)
			return nil, te
		}
		return nil, err
	}

	if err := uc.history.Record(ctx, tx); err != nil {
		// The commit already happened; losing the history entry is a
		// bookkeeping defect worth shouting about, not a transfer failure.
		uc.logger.Error().Err(err).Str("transaction_id", tx.ID).
			Msg("failed to record completed transaction")
	}

	metrics.TransfersTotal.WithLabelValues("committed").Inc()
	amount, _ := tx.Amount.Float64()
	metrics.TransferAmount.Observe(amount)

	uc.logger.Info().
		Str("transaction_id", tx.ID).
		Str("account_id", tx.FromAccountID).
		Str("amount", tx.Amount.String()).
		Msg("transfer committed")

	return tx, nil
}

// submitWithRetry drives the gateway call through exponential backoff.
// domain.ErrNetworkUnavailable is the only retried failure; everything else
// is permanent. The waits are suspend points: cancellation stops the loop
// without a further attempt.
func (uc *TransferUseCase) submitWithRetry(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = uc.retry.BaseDelay
	b.MaxInterval = uc.retry.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempts := 0

	var tx *domain.Transaction
	operation := func() error {
		attempts++

		result, err := uc.gateway.Submit(ctx, req)
		if err == nil {
			tx = result
			return nil
		}

		if !errors.Is(err, domain.ErrNetworkUnavailable) {
			return backoff.Permanent(err)
		}

		if attempts >= uc.retry.MaxAttempts {
			return backoff.Permanent(domain.NewTransferError(domain.FailureNetwork,
				fmt.Sprintf("transfer could not reach the bank after %d attempts", attempts)))
		}

		metrics.GatewayRetries.Inc()
		uc.logger.Warn().Int("attempt", attempts).Msg("transient network failure, retrying")

		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return tx, nil
}

// recordFailed appends a failed transaction record for attempts that reached
// the authoritative side. Pre-check rejections never produce records.
func (uc *TransferUseCase) recordFailed(ctx context.Context, req domain.TransferRequest, te *domain.TransferError) {
	tx := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: req.FromAccountID,
		Recipient:     req.Recipient,
		Amount:        req.Amount,
		Note:          req.Note,
		Status:        domain.TransactionFailed,
		FailureKind:   te.Kind,
		CreatedAt:     uc.clock.Now().UTC(),
	}

	if err := uc.history.Record(ctx, tx); err != nil {
		uc.logger.Error().Err(err).Str("transaction_id", tx.ID).
			Msg("failed to record failed transaction")
	}
}
