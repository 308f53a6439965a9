package usecase

import (
	"context"
	"time"

	"github.com/iho/gosar/internal/domain"
)

// RecordStore defines keyed durable storage for reports.
//
// Load returns (nil, nil) when the id does not exist; absence on the read path
// is not an error. Save is an upsert and the store's last write wins; there is
// no version check on save.
type RecordStore interface {
	Save(ctx context.Context, report *domain.SuspiciousActivityReport) error
	Load(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// Scan starts a fresh batched scan over records matching pred. Each call
	// returns an independent cursor; the caller must Close it on every path.
	Scan(ctx context.Context, pred ScanPredicate) (ScanCursor, error)
}

// ScanPredicate carries the filters a store can push down into its scan:
// exact status match and an inclusive created-at range. Anything finer is the
// query engine's residual pass.
type ScanPredicate struct {
	Status        *domain.ReportStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Matches reports whether a record satisfies the pushdown predicates. Store
// implementations that cannot index these fields may apply it per record.
func (p ScanPredicate) Matches(r *domain.SuspiciousActivityReport) bool {
	if p.Status != nil && r.Status != *p.Status {
		return false
	}
	if p.CreatedAfter != nil && r.CreatedAt.Before(*p.CreatedAfter) {
		return false
	}
	if p.CreatedBefore != nil && r.CreatedAt.After(*p.CreatedBefore) {
		return false
	}
	return true
}

// ScanCursor streams scan results in batches. Next returns an empty batch once
// the scan is exhausted.
type ScanCursor interface {
	Next(ctx context.Context) ([]*domain.SuspiciousActivityReport, error)
	Close() error
}

// Clock supplies the current time so timestamping and normalization defaults
// are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator generates unique report IDs.
type IDGenerator interface {
	Generate() string
}

// ReportCache caches serialized reports by id. A miss returns ErrCacheMiss
// from the implementation's client; callers treat any error as a miss.
type ReportCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
