package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/infrastructure/metrics"
)

const reportCacheTTL = 5 * time.Minute

// ReportUseCase orchestrates the report lifecycle: creation, lookup, listing,
// partial update, deletion and the submit/file transitions. It owns the
// in-flight mutation of a record during a request; the store owns durability.
//
// A load-check-save sequence is not atomic: concurrent operations on the same
// id race and the later store write wins.
type ReportUseCase struct {
	store   RecordStore
	idGen   IDGenerator
	clock   Clock
	cache   ReportCache
	metrics *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. cache and metrics may be nil.
func NewReportUseCase(store RecordStore, idGen IDGenerator, clock Clock, cache ReportCache, m *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{
		store:   store,
		idGen:   idGen,
		clock:   clock,
		cache:   cache,
		metrics: m,
	}
}

// CreateReportInput represents input for creating a report.
type CreateReportInput struct {
	Customer     domain.CustomerInformation
	Transactions []domain.TransactionDetail
	Suspicion    domain.SuspicionDetails
}

// CreateReport normalizes the inputs and persists a new draft report.
func (uc *ReportUseCase) CreateReport(ctx context.Context, input CreateReportInput) (*domain.SuspiciousActivityReport, error) {
	if len(input.Transactions) == 0 {
		return nil, fmt.Errorf("%w: at least one transaction is required", domain.ErrInvalidArgument)
	}

	now := uc.clock.Now()

	report := &domain.SuspiciousActivityReport{
		ID:           uc.idGen.Generate(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Status:       domain.StatusDraft,
		Customer:     domain.NormalizeCustomer(input.Customer),
		Transactions: domain.NormalizeTransactions(input.Transactions),
		Suspicion:    domain.NormalizeSuspicion(input.Suspicion, now),
	}

	if err := uc.store.Save(ctx, report); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsCreated.Inc()
	}

	return report, nil
}

// GetReport retrieves a report by id. A missing id yields (nil, nil).
func (uc *ReportUseCase) GetReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, id); err == nil {
			var report domain.SuspiciousActivityReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				if uc.metrics != nil {
					uc.metrics.CacheHits.Inc()
				}
				return &report, nil
			}
		}
	}

	report, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	uc.cacheReport(ctx, report)

	return report, nil
}

// ListReports resolves a filtered list query into a bounded summary page.
func (uc *ReportUseCase) ListReports(ctx context.Context, query ListQuery) (*ListResult, error) {
	start := uc.clock.Now()

	result, err := runListQuery(ctx, uc.store, query)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ListDuration.Observe(uc.clock.Now().Sub(start).Seconds())
	}

	return result, nil
}

// UpdateReportInput represents a partial update. Nil fields keep their prior
// value; replaced sub-structures are re-normalized.
type UpdateReportInput struct {
	Customer     *domain.CustomerInformation
	Transactions []domain.TransactionDetail
	Suspicion    *domain.SuspicionDetails
}

// UpdateReport applies the supplied fields to a report that is not yet filed.
func (uc *ReportUseCase) UpdateReport(ctx context.Context, id string, input UpdateReportInput) (*domain.SuspiciousActivityReport, error) {
	report, err := uc.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := report.EnsureMutable(); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if input.Customer != nil {
		report.Customer = domain.NormalizeCustomer(*input.Customer)
	}
	if input.Transactions != nil {
		if len(input.Transactions) == 0 {
			return nil, fmt.Errorf("%w: at least one transaction is required", domain.ErrInvalidArgument)
		}
		report.Transactions = domain.NormalizeTransactions(input.Transactions)
	}
	if input.Suspicion != nil {
		report.Suspicion = domain.NormalizeSuspicion(*input.Suspicion, now)
	}

	report.UpdatedAt = now

	if err := uc.store.Save(ctx, report); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	return report, nil
}

// DeleteReport removes a report that is not yet filed.
func (uc *ReportUseCase) DeleteReport(ctx context.Context, id string) error {
	report, err := uc.loadForMutation(ctx, id)
	if err != nil {
		return err
	}

	if err := report.EnsureMutable(); err != nil {
		return err
	}

	if _, err := uc.store.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, id)

	if uc.metrics != nil {
		uc.metrics.ReportsDeleted.Inc()
	}

	return nil
}

// SubmitReport moves a draft report to Submitted.
func (uc *ReportUseCase) SubmitReport(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	report, err := uc.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := report.Submit(uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, report); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	if uc.metrics != nil {
		uc.metrics.ReportsSubmitted.Inc()
	}

	return report, nil
}

// FileReport moves a submitted report to Filed under the supplied filing
// reference. Filed reports are terminal.
func (uc *ReportUseCase) FileReport(ctx context.Context, id, filingReference string) (*domain.SuspiciousActivityReport, error) {
	report, err := uc.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := report.File(filingReference, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, report); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	if uc.metrics != nil {
		uc.metrics.ReportsFiled.Inc()
	}

	return report, nil
}

// loadForMutation loads the record fresh from the store; mutations never act
// on a record loaded in a different operation.
func (uc *ReportUseCase) loadForMutation(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	report, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (uc *ReportUseCase) cacheReport(ctx context.Context, report *domain.SuspiciousActivityReport) {
	if uc.cache == nil {
		return
	}
	if data, err := json.Marshal(report); err == nil {
		_ = uc.cache.Set(ctx, report.ID, string(data), reportCacheTTL)
	}
}

func (uc *ReportUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, id)
}
