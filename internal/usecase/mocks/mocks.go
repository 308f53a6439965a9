package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

// MockRecordStore is a mock implementation of usecase.RecordStore backed by a
// map. Individual operations can be overridden through the Func fields.
type MockRecordStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.SuspiciousActivityReport

	// BatchSize controls how many records a scan cursor yields per Next call.
	BatchSize int

	SaveFunc   func(ctx context.Context, report *domain.SuspiciousActivityReport) error
	LoadFunc   func(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	DeleteFunc func(ctx context.Context, id string) (bool, error)
	ScanFunc   func(ctx context.Context, pred usecase.ScanPredicate) (usecase.ScanCursor, error)
}

func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		reports:   make(map[string]*domain.SuspiciousActivityReport),
		BatchSize: 10,
	}
}

// Seed stores a deep-enough copy of the report without going through Save.
func (m *MockRecordStore) Seed(report *domain.SuspiciousActivityReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = cloneReport(report)
}

// Stored returns the currently persisted copy of the report, or nil.
func (m *MockRecordStore) Stored(id string) *domain.SuspiciousActivityReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reports[id]; ok {
		return cloneReport(r)
	}
	return nil
}

// Len returns the number of stored reports.
func (m *MockRecordStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}

func (m *MockRecordStore) Save(ctx context.Context, report *domain.SuspiciousActivityReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = cloneReport(report)
	return nil
}

func (m *MockRecordStore) Load(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reports[id]; ok {
		return cloneReport(r), nil
	}
	return nil, nil
}

func (m *MockRecordStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return false, nil
	}
	delete(m.reports, id)
	return true, nil
}

func (m *MockRecordStore) Scan(ctx context.Context, pred usecase.ScanPredicate) (usecase.ScanCursor, error) {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx, pred)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*domain.SuspiciousActivityReport
	for _, r := range m.reports {
		if pred.Matches(r) {
			matched = append(matched, cloneReport(r))
		}
	}

	return &sliceCursor{records: matched, batchSize: m.BatchSize}, nil
}

// sliceCursor serves a snapshot in fixed-size batches.
type sliceCursor struct {
	records   []*domain.SuspiciousActivityReport
	batchSize int
	pos       int
	closed    bool
}

func (c *sliceCursor) Next(ctx context.Context) ([]*domain.SuspiciousActivityReport, error) {
	if c.closed {
		return nil, fmt.Errorf("cursor closed")
	}
	if c.pos >= len(c.records) {
		return nil, nil
	}
	end := c.pos + c.batchSize
	if end > len(c.records) {
		end = len(c.records)
	}
	batch := c.records[c.pos:end]
	c.pos = end
	return batch, nil
}

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}

func cloneReport(r *domain.SuspiciousActivityReport) *domain.SuspiciousActivityReport {
	cp := *r
	cp.Transactions = append([]domain.TransactionDetail(nil), r.Transactions...)
	cp.Suspicion.AdditionalReasons = append([]domain.SuspicionReason(nil), r.Suspicion.AdditionalReasons...)
	if r.FiledAt != nil {
		filedAt := *r.FiledAt
		cp.FiledAt = &filedAt
	}
	return &cp
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a Clock pinned to a fixed instant, advanceable by tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockReportCache is a map-backed ReportCache.
type MockReportCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockReportCache() *MockReportCache {
	return &MockReportCache{entries: make(map[string]string)}
}

func (m *MockReportCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss")
}

func (m *MockReportCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockReportCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
