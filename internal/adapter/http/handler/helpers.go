package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeTransferError writes a failure response carrying the failure kind so
// clients can branch on it instead of parsing messages.
func writeTransferError(w http.ResponseWriter, te *domain.TransferError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(te.Kind))
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   "transfer failed",
		Message: te.Message,
		Kind:    string(te.Kind),
	})
}

// statusForKind maps a failure kind to an HTTP status code.
func statusForKind(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureInvalidAccount:
		return http.StatusNotFound
	case domain.FailureNetwork:
		return http.StatusServiceUnavailable
	case domain.FailureInvalidAmount:
		return http.StatusBadRequest
	case domain.FailureInsufficientFunds,
		domain.FailureDailyLimit,
		domain.FailureMonthlyLimit,
		domain.FailurePerTransactionLimit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBalanceUnderflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away mid-transfer; nothing was committed.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
