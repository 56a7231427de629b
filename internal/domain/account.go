package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a single-currency balance. Exactly one account is the
// default source of outgoing transfers at a time.
type Account struct {
	ID        string
	Name      string
	Number    string
	Balance   decimal.Decimal
	Default   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount. The
// validator is the primary control; this is a defensive backstop.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrBalanceUnderflow
	}
	return nil
}

// ApplyDebit returns the new balance after the debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
