package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func standardLimits() TransferLimits {
	return TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(10000), decimal.Zero),
		Monthly:        NewLimitBand(decimal.NewFromInt(50000), decimal.Zero),
		PerTransaction: decimal.NewFromInt(5000),
	}
}

func TestValidate_ZeroAndNegativeAmounts(t *testing.T) {
	balance := decimal.NewFromInt(10000)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		result := Validate(amount, balance, standardLimits(), DefaultWarningThreshold)

		if result.IsValid {
			t.Errorf("amount %s: expected invalid result", amount)
		}
		if len(result.Errors) != 0 {
			t.Errorf("amount %s: expected no errors, got %d", amount, len(result.Errors))
		}
		if len(result.Warnings) != 0 {
			t.Errorf("amount %s: expected no warnings, got %d", amount, len(result.Warnings))
		}
	}
}

func TestValidate_BoundaryEquality(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		balance int64
		limits  TransferLimits
	}{
		{
			name:    "exactly per-transaction limit",
			amount:  5000,
			balance: 10000,
			limits:  standardLimits(),
		},
		{
			name:    "exactly daily remaining",
			amount:  3000,
			balance: 10000,
			limits: TransferLimits{
				Daily:          NewLimitBand(decimal.NewFromInt(10000), decimal.NewFromInt(7000)),
				Monthly:        NewLimitBand(decimal.NewFromInt(50000), decimal.Zero),
				PerTransaction: decimal.NewFromInt(5000),
			},
		},
		{
			name:    "exactly monthly remaining",
			amount:  2000,
			balance: 10000,
			limits: TransferLimits{
				Daily:          NewLimitBand(decimal.NewFromInt(10000), decimal.Zero),
				Monthly:        NewLimitBand(decimal.NewFromInt(50000), decimal.NewFromInt(48000)),
				PerTransaction: decimal.NewFromInt(5000),
			},
		},
		{
			name:    "exactly balance",
			amount:  4000,
			balance: 4000,
			limits:  standardLimits(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(decimal.NewFromInt(tt.amount), decimal.NewFromInt(tt.balance), tt.limits, DefaultWarningThreshold)

			if len(result.Errors) != 0 {
				t.Fatalf("expected boundary amount to pass, got errors: %v", result.Errors)
			}
			if !result.IsValid {
				t.Fatal("expected valid result at boundary")
			}
		})
	}
}

func TestValidate_Monotonicity(t *testing.T) {
	// Pushing the amount one unit past a single boundary flips exactly that
	// check, independent of the others.
	balance := decimal.NewFromInt(100000)
	limits := TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(50000), decimal.NewFromInt(44000)), // remaining 6000
		Monthly:        NewLimitBand(decimal.NewFromInt(90000), decimal.NewFromInt(83000)), // remaining 7000
		PerTransaction: decimal.NewFromInt(5000),
	}

	result := Validate(decimal.NewFromInt(5001), balance, limits, DefaultWarningThreshold)
	if result.IsValid {
		t.Fatal("expected invalid result past per-transaction limit")
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != KindPerTransactionLimit {
		t.Fatalf("expected single per-transaction error, got %v", result.Errors)
	}

	limits.PerTransaction = decimal.NewFromInt(20000)

	result = Validate(decimal.NewFromInt(6001), balance, limits, DefaultWarningThreshold)
	if len(result.Errors) != 1 || result.Errors[0].Kind != KindDailyLimit {
		t.Fatalf("expected single daily error, got %v", result.Errors)
	}

	result = Validate(decimal.NewFromInt(7001), balance, limits, DefaultWarningThreshold)
	if !result.HasKind(KindDailyLimit) || !result.HasKind(KindMonthlyLimit) {
		t.Fatalf("expected daily and monthly errors, got %v", result.Errors)
	}
}

func TestValidate_ErrorAccumulation(t *testing.T) {
	// One amount over every ceiling at once: four independent errors.
	limits := TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(1000), decimal.Zero),
		Monthly:        NewLimitBand(decimal.NewFromInt(2000), decimal.Zero),
		PerTransaction: decimal.NewFromInt(500),
	}

	result := Validate(decimal.NewFromInt(5000), decimal.NewFromInt(100), limits, DefaultWarningThreshold)

	if result.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	for _, kind := range []ValidationKind{KindInsufficientFunds, KindDailyLimit, KindMonthlyLimit, KindPerTransactionLimit} {
		if !result.HasKind(kind) {
			t.Errorf("missing error kind %s", kind)
		}
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings must be empty when errors are present, got %v", result.Warnings)
	}
}

func TestValidate_PerTransactionScenario(t *testing.T) {
	result := Validate(decimal.NewFromInt(5001), decimal.NewFromInt(10000), standardLimits(), DefaultWarningThreshold)

	if result.IsValid {
		t.Fatal("expected invalid result")
	}
	if !result.HasKind(KindPerTransactionLimit) {
		t.Fatalf("expected per-transaction error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "per-transaction") {
		t.Errorf("message should mention the per-transaction limit: %q", result.Errors[0].Message)
	}
}

func TestValidate_InsufficientFundsMessage(t *testing.T) {
	result := Validate(decimal.NewFromInt(1000), decimal.NewFromInt(500), standardLimits(), DefaultWarningThreshold)

	if result.IsValid {
		t.Fatal("expected invalid result")
	}

	msg := result.Errors[0].Message
	if !strings.Contains(msg, "Insufficient funds") {
		t.Errorf("message missing 'Insufficient funds': %q", msg)
	}
	if !strings.Contains(msg, "500.00") {
		t.Errorf("message missing available balance '500.00': %q", msg)
	}
}

func TestValidate_DailyWarning(t *testing.T) {
	result := Validate(decimal.NewFromInt(8500), decimal.NewFromInt(10000), standardLimits(), DefaultWarningThreshold)

	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}

	found := false
	for _, w := range result.Warnings {
		if w.Type == WarningDailyLimit {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected daily limit warning, got %v", result.Warnings)
	}
}

func TestValidate_BothWarningsCanSurface(t *testing.T) {
	limits := TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(1000), decimal.NewFromInt(700)),
		Monthly:        NewLimitBand(decimal.NewFromInt(1000), decimal.NewFromInt(700)),
		PerTransaction: decimal.NewFromInt(5000),
	}

	result := Validate(decimal.NewFromInt(150), decimal.NewFromInt(10000), limits, DefaultWarningThreshold)

	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected both warnings, got %v", result.Warnings)
	}
}

func TestValidate_ThresholdBoundary(t *testing.T) {
	// Projected usage exactly at limit*threshold warns.
	result := Validate(decimal.NewFromInt(8000), decimal.NewFromInt(10000), standardLimits(), DefaultWarningThreshold)

	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning at exact threshold")
	}

	result = Validate(decimal.NewFromInt(4000), decimal.NewFromInt(10000), standardLimits(), DefaultWarningThreshold)
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings below threshold, got %v", result.Warnings)
	}
}

func TestValidate_ExceededBandBlocksEverything(t *testing.T) {
	// Negative remaining behaves as zero capacity: any positive amount fails.
	limits := TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(1000), decimal.NewFromInt(1500)),
		Monthly:        NewLimitBand(decimal.NewFromInt(50000), decimal.Zero),
		PerTransaction: decimal.NewFromInt(5000),
	}

	result := Validate(decimal.NewFromInt(1), decimal.NewFromInt(10000), limits, DefaultWarningThreshold)

	if result.IsValid {
		t.Fatal("expected invalid result against exhausted band")
	}
	if !result.HasKind(KindDailyLimit) {
		t.Fatalf("expected daily error, got %v", result.Errors)
	}
}

func TestFailureKindOfResult_Priority(t *testing.T) {
	limits := TransferLimits{
		Daily:          NewLimitBand(decimal.NewFromInt(1000), decimal.Zero),
		Monthly:        NewLimitBand(decimal.NewFromInt(2000), decimal.Zero),
		PerTransaction: decimal.NewFromInt(500),
	}

	result := Validate(decimal.NewFromInt(5000), decimal.NewFromInt(100), limits, DefaultWarningThreshold)
	if kind := FailureKindOfResult(result); kind != FailureInsufficientFunds {
		t.Fatalf("expected insufficient funds to win, got %s", kind)
	}

	result = Validate(decimal.NewFromInt(5000), decimal.NewFromInt(100000), limits, DefaultWarningThreshold)
	if kind := FailureKindOfResult(result); kind != FailureDailyLimit {
		t.Fatalf("expected daily limit to win, got %s", kind)
	}

	result = Validate(decimal.Zero, decimal.NewFromInt(100), limits, DefaultWarningThreshold)
	if kind := FailureKindOfResult(result); kind != FailureInvalidAmount {
		t.Fatalf("expected invalid amount for empty result, got %s", kind)
	}
}
