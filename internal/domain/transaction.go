package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a recorded transfer.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Recipient describes where money goes. The account number is an opaque
// descriptor; this system never reaches the receiving side.
type Recipient struct {
	Name          string
	AccountNumber string
}

// TransferRequest is a proposed money movement as submitted by a caller.
type TransferRequest struct {
	FromAccountID string
	Recipient     Recipient
	Amount        decimal.Decimal
	Note          string
}

// Transaction is the immutable record of a transfer attempt that reached
// the authoritative side. History keeps them newest-first.
type Transaction struct {
	ID            string
	FromAccountID string
	Recipient     Recipient
	Amount        decimal.Decimal
	Note          string
	Status        TransactionStatus
	FailureKind   FailureKind
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}
