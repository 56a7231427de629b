package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	GetAccount(ctx context.Context, id string) (domain.AccountState, error)
	Limits(ctx context.Context) (usecase.LimitsView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// List lists all accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Get retrieves one account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	state, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(&state.Account))
}

// Limits returns the default account's current limits with approaching flags.
func (h *AccountHandler) Limits(w http.ResponseWriter, r *http.Request) {
	view, err := h.accountUC.Limits(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get limits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LimitsFromView(view))
}
