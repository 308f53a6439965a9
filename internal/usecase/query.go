package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/gosar/internal/domain"
)

// List pagination bounds. The continuation token only signals that more data
// may exist; it does not encode a resumable position.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100

	// NextTokenMore is the marker returned when a page filled up.
	NextTokenMore = "hasMore"
)

// ListQuery describes a filtered, paginated list request.
type ListQuery struct {
	Status        *domain.ReportStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	CustomerName  string
	AccountNumber string
	Limit         int
	NextToken     string
}

// ListResult is one result page plus the total matched count.
type ListResult struct {
	Reports    []domain.ReportSummary
	TotalCount int
	NextToken  string
}

// pushdown splits the query into the predicates the store can evaluate.
func (q ListQuery) pushdown() ScanPredicate {
	return ScanPredicate{
		Status:        q.Status,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: q.CreatedBefore,
	}
}

// matchesResidual applies the filters the store cannot push down: customer
// name case-insensitive substring on "first last" and account number
// case-insensitive exact match.
func (q ListQuery) matchesResidual(r *domain.SuspiciousActivityReport) bool {
	if q.CustomerName != "" {
		fullName := strings.ToLower(r.Customer.FullName())
		if !strings.Contains(fullName, strings.ToLower(q.CustomerName)) {
			return false
		}
	}
	if q.AccountNumber != "" {
		if !strings.EqualFold(r.Customer.AccountNumber, q.AccountNumber) {
			return false
		}
	}
	return true
}

// clampLimit bounds the requested page size to [1, MaxListLimit], defaulting
// when unset.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// runListQuery resolves a list query against the store: scan with pushdown
// predicates, residual-filter each batch, stop once limit matches accumulated.
// Result order follows the underlying scan and is not guaranteed.
func runListQuery(ctx context.Context, store RecordStore, q ListQuery) (*ListResult, error) {
	limit := clampLimit(q.Limit)

	cursor, err := store.Scan(ctx, q.pushdown())
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var matched []*domain.SuspiciousActivityReport
	for len(matched) < limit {
		batch, err := cursor.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, r := range batch {
			if q.matchesResidual(r) {
				matched = append(matched, r)
			}
		}
	}

	page := matched
	if len(page) > limit {
		page = page[:limit]
	}

	summaries := make([]domain.ReportSummary, len(page))
	for i, r := range page {
		summaries[i] = r.Summarize()
	}

	result := &ListResult{
		Reports:    summaries,
		TotalCount: len(matched),
	}
	if len(matched) >= limit {
		result.NextToken = NextTokenMore
	}

	return result, nil
}
