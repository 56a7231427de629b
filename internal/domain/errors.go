package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrBalanceUnderflow = errors.New("balance would become negative")

	// Transfer errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNetworkUnavailable is the transient transport failure. It is the
	// only error kind the orchestrator retries.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrVersionConflict signals a lost compare-and-swap on a state commit.
	ErrVersionConflict = errors.New("state version conflict")

	// ErrCorruptLimits signals a snapshot where remaining != limit - used.
	// This is a programmer error, never a user-facing validation outcome.
	ErrCorruptLimits = errors.New("limits snapshot failed integrity check")
)

// FailureKind is the closed set of terminal transfer failures. Every
// non-success path of a transfer attempt resolves to exactly one of these;
// raw transport errors never leak past the orchestrator.
type FailureKind string

const (
	FailureInsufficientFunds   FailureKind = "INSUFFICIENT_FUNDS"
	FailureNetwork             FailureKind = "NETWORK_ERROR"
	FailureDailyLimit          FailureKind = "DAILY_LIMIT_EXCEEDED"
	FailureMonthlyLimit        FailureKind = "MONTHLY_LIMIT_EXCEEDED"
	FailurePerTransactionLimit FailureKind = "PER_TRANSACTION_LIMIT_EXCEEDED"
	FailureInvalidAmount       FailureKind = "INVALID_AMOUNT"
	FailureInvalidAccount      FailureKind = "INVALID_ACCOUNT"
)

// TransferError is a terminal transfer failure carrying its kind.
type TransferError struct {
	Kind    FailureKind
	Message string
}

func (e *TransferError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// NewTransferError creates a TransferError with the given kind and message.
func NewTransferError(kind FailureKind, message string) *TransferError {
	return &TransferError{Kind: kind, Message: message}
}

// FailureKindOf extracts the failure kind from an error, or "" if the error
// is not a TransferError.
func FailureKindOf(err error) FailureKind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
