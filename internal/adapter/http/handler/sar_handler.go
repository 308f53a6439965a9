package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gosar/internal/adapter/http/dto"
	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

// SarService defines the behavior needed by SarHandler.
type SarService interface {
	CreateReport(ctx context.Context, input usecase.CreateReportInput) (*domain.SuspiciousActivityReport, error)
	GetReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	ListReports(ctx context.Context, query usecase.ListQuery) (*usecase.ListResult, error)
	UpdateReport(ctx context.Context, id string, input usecase.UpdateReportInput) (*domain.SuspiciousActivityReport, error)
	DeleteReport(ctx context.Context, id string) error
	SubmitReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	FileReport(ctx context.Context, id, filingReference string) (*domain.SuspiciousActivityReport, error)
}

// SarHandler handles report HTTP requests.
type SarHandler struct {
	reportUC SarService
	clock    usecase.Clock
}

// NewSarHandler creates a new SarHandler.
func NewSarHandler(reportUC SarService, clock usecase.Clock) *SarHandler {
	return &SarHandler{reportUC: reportUC, clock: clock}
}

// Create validates and creates a new draft report.
func (h *SarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", []string{err.Error()})
		return
	}

	input := req.ToUseCaseInput()

	now := h.clock.Now()
	var fieldErrs []domain.FieldError
	fieldErrs = append(fieldErrs, domain.ValidateCustomer(input.Customer, now)...)
	fieldErrs = append(fieldErrs, domain.ValidateTransactions(input.Transactions, now)...)
	fieldErrs = append(fieldErrs, domain.ValidateSuspicion(input.Suspicion, now)...)
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	report, err := h.reportUC.CreateReport(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create SAR", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusCreated, dto.SarFromDomain(report), "SAR created successfully")
}

// Get retrieves a report by ID.
func (h *SarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.reportUC.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get SAR", []string{err.Error()})
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "SAR not found", nil)
		return
	}

	writeSuccess(w, http.StatusOK, dto.SarFromDomain(report), "")
}

// List returns a filtered page of report summaries.
func (h *SarHandler) List(w http.ResponseWriter, r *http.Request) {
	query, fieldErrs := listQueryFromRequest(r)
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	result, err := h.reportUC.ListReports(r.Context(), query)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list SARs", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusOK, dto.ListFromResult(result), "")
}

// Update applies a partial update to a report that is not yet filed.
func (h *SarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateSarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", []string{err.Error()})
		return
	}

	input := req.ToUseCaseInput()

	now := h.clock.Now()
	var fieldErrs []domain.FieldError
	if input.Customer != nil {
		fieldErrs = append(fieldErrs, domain.ValidateCustomer(*input.Customer, now)...)
	}
	if input.Transactions != nil {
		fieldErrs = append(fieldErrs, domain.ValidateTransactions(input.Transactions, now)...)
	}
	if input.Suspicion != nil {
		fieldErrs = append(fieldErrs, domain.ValidateSuspicion(*input.Suspicion, now)...)
	}
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	report, err := h.reportUC.UpdateReport(r.Context(), id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update SAR", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusOK, dto.SarFromDomain(report), "SAR updated successfully")
}

// Delete removes a report that is not yet filed.
func (h *SarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reportUC.DeleteReport(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete SAR", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusOK, nil, "SAR deleted successfully")
}

// Submit moves a draft report to Submitted.
func (h *SarHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.reportUC.SubmitReport(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit SAR", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusOK, dto.SarFromDomain(report), "SAR submitted successfully")
}

// File moves a submitted report to Filed under a filing reference.
func (h *SarHandler) File(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.FileSarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", []string{err.Error()})
		return
	}

	report, err := h.reportUC.FileReport(r.Context(), id, req.FilingReference)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to file SAR", []string{err.Error()})
		return
	}

	writeSuccess(w, http.StatusOK, dto.SarFromDomain(report), "SAR filed successfully")
}

// listQueryFromRequest parses list filters from query parameters. Dates are
// RFC 3339 timestamps.
func listQueryFromRequest(r *http.Request) (usecase.ListQuery, []domain.FieldError) {
	q := r.URL.Query()

	query := usecase.ListQuery{
		CustomerName:  q.Get("customerName"),
		AccountNumber: q.Get("accountNumber"),
		Limit:         parseIntQuery(r, "limit", 0),
		NextToken:     q.Get("nextToken"),
	}

	var errs []domain.FieldError

	if raw := q.Get("status"); raw != "" {
		status := domain.ReportStatus(raw)
		if !status.Valid() {
			errs = append(errs, domain.FieldError{Field: "status", Message: "must be Draft, Submitted or Filed"})
		} else {
			query.Status = &status
		}
	}

	if raw := q.Get("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "startDate", Message: "must be an RFC 3339 timestamp"})
		} else {
			query.CreatedAfter = &t
		}
	}

	if raw := q.Get("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "endDate", Message: "must be an RFC 3339 timestamp"})
		} else {
			query.CreatedBefore = &t
		}
	}

	return query, errs
}
