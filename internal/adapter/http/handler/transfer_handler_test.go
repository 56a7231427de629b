package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
)

type transferServiceStub struct {
	executeFn func(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error)
	checkFn   func(ctx context.Context, amount decimal.Decimal) (domain.ValidationResult, error)
}

func (s *transferServiceStub) Execute(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	return s.executeFn(ctx, req)
}

func (s *transferServiceStub) Check(ctx context.Context, amount decimal.Decimal) (domain.ValidationResult, error) {
	return s.checkFn(ctx, amount)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	return rec
}

func TestTransferHandler_Create_Success(t *testing.T) {
	tx := &domain.Transaction{
		ID:           "tx-1",
		Amount:       decimal.NewFromInt(100),
		Status:       domain.TransactionCompleted,
		BalanceAfter: decimal.NewFromInt(9900),
	}

	var captured domain.TransferRequest
	h := NewTransferHandler(&transferServiceStub{
		executeFn: func(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
			captured = req
			return tx, nil
		},
	})

	rec := postJSON(t, h.Create, "/api/v1/transfers", dto.CreateTransferRequest{
		Amount:    decimal.NewFromInt(100),
		Recipient: dto.RecipientPayload{Name: "Dana", AccountNumber: "9912"},
		Note:      "rent",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if captured.Recipient.Name != "Dana" || captured.Note != "rent" {
		t.Errorf("captured request = %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.Status != string(domain.TransactionCompleted) {
		t.Errorf("response = %+v", resp)
	}
}

func TestTransferHandler_Create_FailureKindStatuses(t *testing.T) {
	tests := []struct {
		kind       domain.FailureKind
		wantStatus int
	}{
		{domain.FailureInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.FailureDailyLimit, http.StatusUnprocessableEntity},
		{domain.FailureMonthlyLimit, http.StatusUnprocessableEntity},
		{domain.FailurePerTransactionLimit, http.StatusUnprocessableEntity},
		{domain.FailureInvalidAmount, http.StatusBadRequest},
		{domain.FailureInvalidAccount, http.StatusNotFound},
		{domain.FailureNetwork, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			h := NewTransferHandler(&transferServiceStub{
				executeFn: func(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
					return nil, domain.NewTransferError(tt.kind, "nope")
				},
			})

			rec := postJSON(t, h.Create, "/api/v1/transfers", dto.CreateTransferRequest{
				Amount: decimal.NewFromInt(100),
			})

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Kind != string(tt.kind) {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.kind)
			}
		})
	}
}

func TestTransferHandler_Create_InvalidBody(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		executeFn: func(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
			t.Fatal("Execute should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTransferHandler_Validate(t *testing.T) {
	result := domain.ValidationResult{
		IsValid: true,
		Errors:  []domain.ValidationError{},
		Warnings: []domain.ValidationWarning{
			{Type: domain.WarningDailyLimit, Message: "You're approaching your daily transfer limit"},
		},
	}

	h := NewTransferHandler(&transferServiceStub{
		checkFn: func(ctx context.Context, amount decimal.Decimal) (domain.ValidationResult, error) {
			if !amount.Equal(decimal.NewFromInt(8500)) {
				t.Errorf("amount = %s, want 8500", amount)
			}
			return result, nil
		},
	})

	rec := postJSON(t, h.Validate, "/api/v1/transfers/validate", dto.ValidateAmountRequest{
		Amount: decimal.NewFromInt(8500),
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp dto.ValidationResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsValid {
		t.Error("IsValid = false, want true")
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Type != string(domain.WarningDailyLimit) {
		t.Errorf("warnings = %+v", resp.Warnings)
	}
	if resp.Errors == nil {
		t.Error("errors should encode as [], not null")
	}
}
