package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Execute(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error)
	Check(ctx context.Context, amount decimal.Decimal) (domain.ValidationResult, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create executes a transfer end to end: pre-check, gateway submit with
// retries, commit, history record.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.transferUC.Execute(r.Context(), req.ToDomain())
	if err != nil {
		var te *domain.TransferError
		if errors.As(err, &te) {
			writeTransferError(w, te)
			return
		}
		writeError(w, mapDomainError(err), "failed to execute transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Validate runs the instant client-side check against the latest snapshot.
// It never mutates state and never talks to the gateway.
func (h *TransferHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Check(r.Context(), req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to validate amount", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ValidationResultFromDomain(result))
}
