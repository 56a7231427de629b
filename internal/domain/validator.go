package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationKind tags a validation error with the rule that failed. The tag
// is attached at creation time; callers must never infer the rule from the
// human-readable message, which exists only for display.
type ValidationKind string

const (
	KindInsufficientFunds   ValidationKind = ValidationKind(FailureInsufficientFunds)
	KindDailyLimit          ValidationKind = ValidationKind(FailureDailyLimit)
	KindMonthlyLimit        ValidationKind = ValidationKind(FailureMonthlyLimit)
	KindPerTransactionLimit ValidationKind = ValidationKind(FailurePerTransactionLimit)
)

// WarningType identifies an "approaching limit" warning.
type WarningType string

const (
	WarningDailyLimit   WarningType = "daily_limit_warning"
	WarningMonthlyLimit WarningType = "monthly_limit_warning"
)

// ValidationError is one failed rule. Field is always "amount" under the
// current rule set; the shape allows per-field errors later.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

// ValidationWarning is advisory only and never blocks a transfer.
type ValidationWarning struct {
	Type    WarningType
	Message string
}

// ValidationResult is the full outcome of a validation pass. Errors and
// warnings are mutually exclusive populations: warnings only appear on a
// clean pass.
type ValidationResult struct {
	IsValid  bool
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasKind reports whether any error carries the given kind.
func (r ValidationResult) HasKind(kind ValidationKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// FirstMessage returns the message of the highest-priority error, or "".
func (r ValidationResult) FirstMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// FailureKindOfResult maps an invalid result to a terminal failure kind.
// When several rules failed at once the most fundamental one wins:
// insufficient funds, then daily, monthly, per-transaction limits. An
// invalid result with no errors is the zero/negative amount case.
func FailureKindOfResult(r ValidationResult) FailureKind {
	priority := []ValidationKind{
		KindInsufficientFunds,
		KindDailyLimit,
		KindMonthlyLimit,
		KindPerTransactionLimit,
	}
	for _, k := range priority {
		if r.HasKind(k) {
			return FailureKind(k)
		}
	}
	return FailureInvalidAmount
}

// Validate decides whether a proposed transfer amount is admissible against
// the balance and limits snapshot. Pure: no side effects, all outcomes are
// data, nothing is ever thrown.
//
// A non-positive amount means "nothing to validate yet" and yields an
// invalid result with no errors; callers must not surface it as a failure.
// All applicable checks run; every violated rule contributes its own error.
// Boundary equality passes on every dimension.
func Validate(amount, balance decimal.Decimal, limits TransferLimits, threshold decimal.Decimal) ValidationResult {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ValidationResult{IsValid: false}
	}

	var errs []ValidationError

	if amount.GreaterThan(balance) {
		errs = append(errs, ValidationError{
			Field: "amount",
			Kind:  KindInsufficientFunds,
			Message: fmt.Sprintf("Insufficient funds. Available balance: %s",
				balance.StringFixed(2)),
		})
	}

	if amount.GreaterThan(limits.Daily.Remaining) {
		errs = append(errs, ValidationError{
			Field: "amount",
			Kind:  KindDailyLimit,
			Message: fmt.Sprintf("Amount exceeds your remaining daily limit of %s",
				limits.Daily.Capacity().StringFixed(2)),
		})
	}

	if amount.GreaterThan(limits.Monthly.Remaining) {
		errs = append(errs, ValidationError{
			Field: "amount",
			Kind:  KindMonthlyLimit,
			Message: fmt.Sprintf("Amount exceeds your remaining monthly limit of %s",
				limits.Monthly.Capacity().StringFixed(2)),
		})
	}

	if amount.GreaterThan(limits.PerTransaction) {
		errs = append(errs, ValidationError{
			Field: "amount",
			Kind:  KindPerTransactionLimit,
			Message: fmt.Sprintf("Amount exceeds the per-transaction limit of %s",
				limits.PerTransaction.StringFixed(2)),
		})
	}

	if len(errs) > 0 {
		return ValidationResult{IsValid: false, Errors: errs}
	}

	// Clean pass: project post-transfer usage and warn if it lands at or
	// past the threshold. Daily and monthly warn independently.
	var warnings []ValidationWarning

	if limits.Daily.Consume(amount).Approaching(threshold) {
		warnings = append(warnings, ValidationWarning{
			Type:    WarningDailyLimit,
			Message: "This transfer brings you close to your daily limit",
		})
	}

	if limits.Monthly.Consume(amount).Approaching(threshold) {
		warnings = append(warnings, ValidationWarning{
			Type:    WarningMonthlyLimit,
			Message: "This transfer brings you close to your monthly limit",
		})
	}

	return ValidationResult{IsValid: true, Warnings: warnings}
}
