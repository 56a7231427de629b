package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// ErrorResponse is the error envelope. Kind carries the closed failure
// kind for transfer failures so clients branch on it, never on Message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// ValidationErrorPayload is one failed validation rule.
type ValidationErrorPayload struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationWarningPayload is one approaching-limit warning.
type ValidationWarningPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ValidationResultResponse mirrors domain.ValidationResult on the wire.
type ValidationResultResponse struct {
	IsValid  bool                       `json:"is_valid"`
	Errors   []ValidationErrorPayload   `json:"errors"`
	Warnings []ValidationWarningPayload `json:"warnings"`
}

// ValidationResultFromDomain converts a validation result to a response.
func ValidationResultFromDomain(r domain.ValidationResult) ValidationResultResponse {
	resp := ValidationResultResponse{
		IsValid:  r.IsValid,
		Errors:   make([]ValidationErrorPayload, 0, len(r.Errors)),
		Warnings: make([]ValidationWarningPayload, 0, len(r.Warnings)),
	}
	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, ValidationErrorPayload{
			Field:   e.Field,
			Kind:    string(e.Kind),
			Message: e.Message,
		})
	}
	for _, w := range r.Warnings {
		resp.Warnings = append(resp.Warnings, ValidationWarningPayload{
			Type:    string(w.Type),
			Message: w.Message,
		})
	}
	return resp
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string           `json:"id"`
	FromAccountID string           `json:"from_account_id"`
	Recipient     RecipientPayload `json:"recipient"`
	Amount        decimal.Decimal  `json:"amount"`
	Note          string           `json:"note,omitempty"`
	Status        string           `json:"status"`
	FailureKind   string           `json:"failure_kind,omitempty"`
	BalanceAfter  decimal.Decimal  `json:"balance_after"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		Recipient: RecipientPayload{
			Name:          t.Recipient.Name,
			AccountNumber: t.Recipient.AccountNumber,
		},
		Amount:       t.Amount,
		Note:         t.Note,
		Status:       string(t.Status),
		FailureKind:  string(t.FailureKind),
		BalanceAfter: t.BalanceAfter,
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Number  string          `json:"number,omitempty"`
	Balance decimal.Decimal `json:"balance"`
	Default bool            `json:"default"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Number:  a.Number,
		Balance: a.Balance,
		Default: a.Default,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// LimitBandResponse is one limit band with its display flag.
type LimitBandResponse struct {
	Limit       decimal.Decimal `json:"limit"`
	Used        decimal.Decimal `json:"used"`
	Remaining   decimal.Decimal `json:"remaining"`
	Approaching bool            `json:"approaching"`
}

// LimitsResponse is the full limits view.
type LimitsResponse struct {
	Daily            LimitBandResponse `json:"daily"`
	Monthly          LimitBandResponse `json:"monthly"`
	PerTransaction   decimal.Decimal   `json:"per_transaction"`
	WarningThreshold decimal.Decimal   `json:"warning_threshold"`
}

// LimitsFromView converts a limits view to a response.
func LimitsFromView(v usecase.LimitsView) LimitsResponse {
	return LimitsResponse{
		Daily: LimitBandResponse{
			Limit:       v.Limits.Daily.Limit,
			Used:        v.Limits.Daily.Used,
			Remaining:   v.Limits.Daily.Remaining,
			Approaching: v.DailyApproaching,
		},
		Monthly: LimitBandResponse{
			Limit:       v.Limits.Monthly.Limit,
			Used:        v.Limits.Monthly.Used,
			Remaining:   v.Limits.Monthly.Remaining,
			Approaching: v.MonthlyApproaching,
		},
		PerTransaction:   v.Limits.PerTransaction,
		WarningThreshold: v.WarningThreshold,
	}
}
