package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultWarningThreshold is the fraction of a limit at which "approaching
// limit" warnings start. The validator and any display logic both consume
// this one value so they never disagree about when to warn.
var DefaultWarningThreshold = decimal.NewFromFloat(0.8)

// LimitBand tracks one accumulating spending limit.
type LimitBand struct {
	Limit     decimal.Decimal
	Used      decimal.Decimal
	Remaining decimal.Decimal
}

// NewLimitBand builds a band with remaining derived from limit and used.
func NewLimitBand(limit, used decimal.Decimal) LimitBand {
	return LimitBand{
		Limit:     limit,
		Used:      used,
		Remaining: limit.Sub(used),
	}
}

// Consume returns a new band with amount recorded against it. The receiver
// is unmodified.
func (b LimitBand) Consume(amount decimal.Decimal) LimitBand {
	return NewLimitBand(b.Limit, b.Used.Add(amount))
}

// Capacity is the spendable headroom. A band constructed in an
// already-exceeded state has negative Remaining; capacity floors at zero.
func (b LimitBand) Capacity() decimal.Decimal {
	if b.Remaining.IsNegative() {
		return decimal.Zero
	}
	return b.Remaining
}

// Approaching reports whether usage has reached the warning threshold,
// expressed as a fraction of the limit.
func (b LimitBand) Approaching(threshold decimal.Decimal) bool {
	return b.Used.GreaterThanOrEqual(b.Limit.Mul(threshold))
}

// TransferLimits is the full limits snapshot for one account. Daily and
// monthly accumulate; PerTransaction is a stateless ceiling re-checked on
// every transfer.
type TransferLimits struct {
	Daily          LimitBand
	Monthly        LimitBand
	PerTransaction decimal.Decimal
}

// ApplySpend returns a new snapshot with amount recorded against the daily
// and monthly bands. Pure: the receiver is unmodified, so concurrent readers
// never observe a half-updated snapshot.
func (l TransferLimits) ApplySpend(amount decimal.Decimal) TransferLimits {
	return TransferLimits{
		Daily:          l.Daily.Consume(amount),
		Monthly:        l.Monthly.Consume(amount),
		PerTransaction: l.PerTransaction,
	}
}

// CheckIntegrity verifies remaining == limit - used on both bands and that
// used never went negative. A failure here means corrupted state, not bad
// user input; callers log it loudly instead of validating against garbage.
func (l TransferLimits) CheckIntegrity() error {
	if !l.Daily.Remaining.Equal(l.Daily.Limit.Sub(l.Daily.Used)) {
		return fmt.Errorf("%w: daily remaining %s, limit %s, used %s",
			ErrCorruptLimits, l.Daily.Remaining, l.Daily.Limit, l.Daily.Used)
	}
	if !l.Monthly.Remaining.Equal(l.Monthly.Limit.Sub(l.Monthly.Used)) {
		return fmt.Errorf("%w: monthly remaining %s, limit %s, used %s",
			ErrCorruptLimits, l.Monthly.Remaining, l.Monthly.Limit, l.Monthly.Used)
	}
	if l.Daily.Used.IsNegative() || l.Monthly.Used.IsNegative() {
		return fmt.Errorf("%w: negative used amount", ErrCorruptLimits)
	}
	return nil
}
