package domain

import "github.com/shopspring/decimal"

// AccountState is a version-stamped view of one account's mutable ledger
// state. Balance and limits always travel together under a single version,
// so a reader can never observe an updated balance with stale limits.
type AccountState struct {
	Account Account
	Limits  TransferLimits
	Version int64
}

// ApplyTransfer returns the post-transfer state: balance debited, daily and
// monthly usage recorded, version bumped. Pure; the receiver is unmodified.
// The underflow check is defensive, validation must already have passed.
func (s AccountState) ApplyTransfer(amount decimal.Decimal) (AccountState, error) {
	if err := s.Account.ValidateDebit(amount); err != nil {
		return AccountState{}, err
	}

	next := s
	next.Account.Balance = s.Account.ApplyDebit(amount)
	next.Limits = s.Limits.ApplySpend(amount)
	next.Version = s.Version + 1

	return next, nil
}
