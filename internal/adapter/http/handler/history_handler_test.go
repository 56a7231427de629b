package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
	"github.com/pocketbank/transfercore/internal/domain"
	"github.com/pocketbank/transfercore/internal/usecase"
)

type historyServiceStub struct {
	listFn func(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error)
	getFn  func(ctx context.Context, id string) (*domain.Transaction, error)
}

func (s *historyServiceStub) List(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error) {
	return s.listFn(ctx, q)
}

func (s *historyServiceStub) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func TestHistoryHandler_List_QueryParams(t *testing.T) {
	var captured usecase.HistoryQuery
	h := NewHistoryHandler(&historyServiceStub{
		listFn: func(ctx context.Context, q usecase.HistoryQuery) ([]*domain.Transaction, error) {
			captured = q
			return []*domain.Transaction{
				{ID: "tx-2", Amount: decimal.NewFromInt(50), Status: domain.TransactionFailed, FailureKind: domain.FailureNetwork},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?status=failed&limit=10&offset=5", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if captured.Status != domain.TransactionFailed || captured.Limit != 10 || captured.Offset != 5 {
		t.Errorf("query = %+v", captured)
	}

	var resp []*dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].FailureKind != string(domain.FailureNetwork) {
		t.Errorf("response = %+v", resp)
	}
}

func TestHistoryHandler_Get_NotFound(t *testing.T) {
	h := NewHistoryHandler(&historyServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	rec := getWithParam(h.Get, "/api/v1/transactions/missing", "id", "missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
