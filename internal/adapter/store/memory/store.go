// Package memory provides an in-process RecordStore used by the CLI's local
// mode and by integration tests that do not need PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

const scanBatchSize = 25

// Store implements usecase.RecordStore over a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	records map[string]*domain.SuspiciousActivityReport
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*domain.SuspiciousActivityReport),
	}
}

// Save inserts or replaces the record under its ID.
func (s *Store) Save(ctx context.Context, report *domain.SuspiciousActivityReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[report.ID] = cloneReport(report)

	return nil
}

// Load returns the record for id, or (nil, nil) when absent.
func (s *Store) Load(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}

	return cloneReport(r), nil
}

// Delete removes the record for id and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[id]
	delete(s.records, id)

	return ok, nil
}

// Scan snapshots the matching records under the read lock and returns a
// cursor over the snapshot. Writes after Scan do not affect the cursor.
func (s *Store) Scan(ctx context.Context, pred usecase.ScanPredicate) (usecase.ScanCursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.SuspiciousActivityReport, 0, len(s.records))
	for _, r := range s.records {
		if pred.Matches(r) {
			matched = append(matched, cloneReport(r))
		}
	}

	return &snapshotCursor{records: matched}, nil
}

type snapshotCursor struct {
	records []*domain.SuspiciousActivityReport
	offset  int
}

func (c *snapshotCursor) Next(ctx context.Context) ([]*domain.SuspiciousActivityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.offset >= len(c.records) {
		return nil, nil
	}

	end := c.offset + scanBatchSize
	if end > len(c.records) {
		end = len(c.records)
	}

	batch := c.records[c.offset:end]
	c.offset = end

	return batch, nil
}

func (c *snapshotCursor) Close() error {
	return nil
}

// cloneReport deep-copies a report so callers cannot mutate stored state.
func cloneReport(r *domain.SuspiciousActivityReport) *domain.SuspiciousActivityReport {
	cp := *r

	cp.Transactions = make([]domain.TransactionDetail, len(r.Transactions))
	copy(cp.Transactions, r.Transactions)

	cp.Suspicion.AdditionalReasons = append([]domain.SuspicionReason(nil), r.Suspicion.AdditionalReasons...)

	if r.FiledAt != nil {
		t := *r.FiledAt
		cp.FiledAt = &t
	}

	return &cp
}
