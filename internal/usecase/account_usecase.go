package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
)

// AccountUseCase exposes read access to accounts and their limits.
type AccountUseCase struct {
	store     StateStore
	threshold decimal.Decimal
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(store StateStore, threshold decimal.Decimal) *AccountUseCase {
	return &AccountUseCase{store: store, threshold: threshold}
}

// ListAccounts returns all known accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.store.ListAccounts(ctx)
}

// GetAccount returns one account's current state.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (domain.AccountState, error) {
	return uc.store.State(ctx, id)
}

// LimitsView is the current limits snapshot plus the approaching flags the
// UI renders as badges. The flags use the same threshold as the validator's
// warnings, so the two can never disagree.
type LimitsView struct {
	Limits              domain.TransferLimits
	DailyApproaching    bool
	MonthlyApproaching  bool
	WarningThreshold    decimal.Decimal
}

// Limits returns the default account's limits view.
func (uc *AccountUseCase) Limits(ctx context.Context) (LimitsView, error) {
	state, err := uc.store.DefaultState(ctx)
	if err != nil {
		return LimitsView{}, err
	}

	return LimitsView{
		Limits:             state.Limits,
		DailyApproaching:   state.Limits.Daily.Approaching(uc.threshold),
		MonthlyApproaching: state.Limits.Monthly.Approaching(uc.threshold),
		WarningThreshold:   uc.threshold,
	}, nil
}
