package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/domain"
)

// RecipientPayload describes where the money goes.
type RecipientPayload struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
}

// CreateTransferRequest represents a request to execute a transfer.
// FromAccountID is optional; the default account is used when empty.
type CreateTransferRequest struct {
	Amount        decimal.Decimal  `json:"amount"`
	FromAccountID string           `json:"from_account_id,omitempty"`
	Recipient     RecipientPayload `json:"recipient"`
	Note          string           `json:"note,omitempty"`
}

// ToDomain converts to the domain transfer request.
func (r *CreateTransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID: r.FromAccountID,
		Recipient: domain.Recipient{
			Name:          r.Recipient.Name,
			AccountNumber: r.Recipient.AccountNumber,
		},
		Amount: r.Amount,
		Note:   r.Note,
	}
}

// ValidateAmountRequest represents an instant validation request, issued
// per keystroke from the amount entry screen.
type ValidateAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
