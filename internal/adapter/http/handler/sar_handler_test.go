package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gosar/internal/adapter/http/dto"
	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

var handlerNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return handlerNow }

type sarServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error)
	getFn    func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	listFn   func(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error)
	updateFn func(ctx context.Context, id string, input usecase.UpdateReportInput) (*domain.SuspiciousActivityReport, error)
	deleteFn func(ctx context.Context, id string) error
	submitFn func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	fileFn   func(ctx context.Context, id, ref string) (*domain.SuspiciousActivityReport, error)
}

func (s *sarServiceStub) CreateReport(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error) {
	return s.createFn(ctx, input)
}

func (s *sarServiceStub) GetReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	return s.getFn(ctx, id)
}

func (s *sarServiceStub) ListReports(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error) {
	return s.listFn(ctx, query)
}

func (s *sarServiceStub) UpdateReport(ctx context.Context, id string, input usecase.UpdateReportInput) (*domain.SuspiciousActivityReport, error) {
	return s.updateFn(ctx, id, input)
}

func (s *sarServiceStub) DeleteReport(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *sarServiceStub) SubmitReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	return s.submitFn(ctx, id)
}

func (s *sarServiceStub) FileReport(ctx context.Context, id, ref string) (*domain.SuspiciousActivityReport, error) {
	return s.fileFn(ctx, id, ref)
}

func validCreateRequest() dto.CreateSarRequest {
	return dto.CreateSarRequest{
		Customer: dto.CustomerPayload{
			FirstName:            "Jane",
			LastName:             "Doe",
			DateOfBirth:          time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
			SocialSecurityNumber: "123-45-6789",
			Address: dto.AddressPayload{
				Street:  "200 Main St",
				City:    "Springfield",
				State:   "IL",
				ZipCode: "62701",
			},
			AccountNumber: "ACC-1001",
		},
		Transactions: []dto.TransactionPayload{
			{
				TransactionID:   "TX-1",
				TransactionDate: handlerNow.AddDate(0, 0, -3),
				Amount:          decimal.NewFromInt(9500),
				TransactionType: "Cash Deposit",
			},
		},
		Suspicion: dto.SuspicionPayload{
			PrimaryReason: string(domain.ReasonStructuredTransaction),
			Description:   "Repeated cash deposits just below the reporting threshold",
		},
	}
}

func sampleDomainReport(id string) *domain.SuspiciousActivityReport {
	return &domain.SuspiciousActivityReport{
		ID:        id,
		Status:    domain.StatusDraft,
		CreatedAt: handlerNow,
		UpdatedAt: handlerNow,
		Customer: domain.CustomerInformation{
			FirstName:     "Jane",
			LastName:      "Doe",
			AccountNumber: "ACC-1001",
		},
		Transactions: []domain.TransactionDetail{
			{TransactionID: "TX-1", Amount: decimal.NewFromInt(9500)},
		},
		Suspicion: domain.SuspicionDetails{
			PrimaryReason: domain.ReasonStructuredTransaction,
			Description:   "Repeated cash deposits just below the reporting threshold",
		},
	}
}

func newSarHandler(stub *sarServiceStub) *SarHandler {
	return NewSarHandler(stub, fixedClock{})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()

	var resp dto.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestSarHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateReportInput
	handler := newSarHandler(&sarServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error) {
			captured = input
			return sampleDomainReport("sar-1"), nil
		},
	})

	body, _ := json.Marshal(validCreateRequest())
	req := httptest.NewRequest(http.MethodPost, "/sars", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Customer.FirstName != "Jane" || len(captured.Transactions) != 1 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	resp := decodeEnvelope(t, rec)
	if !resp.Success {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
}

func TestSarHandler_Create_InvalidJSON(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error) {
			t.Fatal("CreateReport should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sars", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSarHandler_Create_ValidationFailure(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error) {
			t.Fatal("CreateReport should not be called for invalid input")
			return nil, nil
		},
	})

	request := validCreateRequest()
	request.Customer.FirstName = ""
	request.Suspicion.Description = "too short"

	body, _ := json.Marshal(request)
	req := httptest.NewRequest(http.MethodPost, "/sars", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	if resp.Success || len(resp.Errors) < 2 {
		t.Fatalf("expected validation errors, got %+v", resp)
	}
}

func TestSarHandler_Create_RequiresTransactions(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error) {
			t.Fatal("CreateReport should not be called without transactions")
			return nil, nil
		},
	})

	request := validCreateRequest()
	request.Transactions = nil

	body, _ := json.Marshal(request)
	req := httptest.NewRequest(http.MethodPost, "/sars", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSarHandler_Get(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
			if id != "sar-1" {
				t.Fatalf("expected id sar-1, got %s", id)
			}
			return sampleDomainReport(id), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sars/sar-1", nil)
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSarHandler_Get_NotFound(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sars/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Success {
		t.Fatalf("expected failure envelope, got %+v", resp)
	}
}

func TestSarHandler_List(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		listFn: func(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error) {
			if query.Limit != 5 {
				t.Fatalf("expected limit=5, got %+v", query)
			}
			if query.Status == nil || *query.Status != domain.StatusDraft {
				t.Fatalf("expected status filter Draft, got %+v", query.Status)
			}
			if query.CustomerName != "jane" {
				t.Fatalf("expected customerName filter, got %q", query.CustomerName)
			}
			return &usecase.ListResult{
				Reports: []domain.ReportSummary{
					{ID: "sar-1", CustomerName: "Jane Doe"},
					{ID: "sar-2", CustomerName: "Jane Roe"},
				},
				TotalCount: 2,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sars?limit=5&status=Draft&customerName=jane", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSarHandler_List_InvalidStatus(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		listFn: func(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error) {
			t.Fatal("ListReports should not be called for an invalid status")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sars?status=Bogus", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSarHandler_List_ParsesDateRange(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	handler := newSarHandler(&sarServiceStub{
		listFn: func(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error) {
			if query.CreatedAfter == nil || !query.CreatedAfter.Equal(start) {
				t.Fatalf("expected startDate %v, got %v", start, query.CreatedAfter)
			}
			if query.CreatedBefore == nil || !query.CreatedBefore.Equal(end) {
				t.Fatalf("expected endDate %v, got %v", end, query.CreatedBefore)
			}
			return &usecase.ListResult{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/sars?startDate=2025-05-01T00%3A00%3A00Z&endDate=2025-05-31T00%3A00%3A00Z", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSarHandler_Update_PartialPayload(t *testing.T) {
	var captured usecase.UpdateReportInput
	handler := newSarHandler(&sarServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateReportInput) (*domain.SuspiciousActivityReport, error) {
			captured = input
			return sampleDomainReport(id), nil
		},
	})

	body := []byte(`{"suspicionDetails":{"primaryReason":"GeographicRisk","description":"Transfers routed through a high-risk jurisdiction"}}`)
	req := httptest.NewRequest(http.MethodPut, "/sars/sar-1", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Customer != nil || captured.Transactions != nil {
		t.Fatalf("expected only suspicion to be set, got %+v", captured)
	}
	if captured.Suspicion == nil || captured.Suspicion.PrimaryReason != domain.ReasonGeographicRisk {
		t.Fatalf("expected suspicion update, got %+v", captured.Suspicion)
	}
}

func TestSarHandler_Update_Immutable(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateReportInput) (*domain.SuspiciousActivityReport, error) {
			return nil, domain.ErrReportFiled
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/sars/sar-1", bytes.NewBufferString(`{}`))
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSarHandler_Delete(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "sar-1" {
				t.Fatalf("expected id sar-1, got %s", id)
			}
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/sars/sar-1", nil)
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSarHandler_Delete_NotFound(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrReportNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/sars/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSarHandler_Submit_InvalidTransition(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		submitFn: func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
			return nil, domain.ErrInvalidTransition
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sars/sar-1/submit", nil)
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSarHandler_File_Success(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		fileFn: func(ctx context.Context, id, ref string) (*domain.SuspiciousActivityReport, error) {
			if ref != "FIL-2025-001" {
				t.Fatalf("expected filing reference to be forwarded, got %q", ref)
			}
			report := sampleDomainReport(id)
			report.Status = domain.StatusFiled
			report.FilingReference = ref
			filedAt := handlerNow
			report.FiledAt = &filedAt
			return report, nil
		},
	})

	body := []byte(`{"filingReference":"FIL-2025-001"}`)
	req := httptest.NewRequest(http.MethodPost, "/sars/sar-1/file", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.File(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSarHandler_StoreUnavailableMapsTo503(t *testing.T) {
	handler := newSarHandler(&sarServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
			return nil, domain.ErrStoreUnavailable
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/sars/sar-1", nil)
	req = setChiURLParam(req, "id", "sar-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
