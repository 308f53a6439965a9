// Package postgres implements the report store on PostgreSQL. Reports are
// stored as JSONB documents with the scannable fields promoted to columns.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

const scanBatchSize = 50

// ReportStore implements usecase.RecordStore.
type ReportStore struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewReportStore creates a ReportStore backed by the given pool.
func NewReportStore(pool *pgxpool.Pool, retrier *Retrier) *ReportStore {
	return &ReportStore{
		pool:    pool,
		retrier: retrier,
	}
}

// Save upserts the report document keyed by its ID.
func (s *ReportStore) Save(ctx context.Context, report *domain.SuspiciousActivityReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return s.retrier.Retry(ctx, func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO reports (id, status, created_at, updated_at, data)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				updated_at = EXCLUDED.updated_at,
				data = EXCLUDED.data`,
			report.ID, string(report.Status), report.CreatedAt, report.UpdatedAt, data,
		)
		if err != nil {
			return storeErr("save report", err)
		}

		return nil
	})
}

// Load returns the report for id, or (nil, nil) when no row exists.
func (s *ReportStore) Load(ctx context.Context, id string) (*domain.SuspiciousActivityReport, error) {
	var data []byte

	err := s.retrier.Retry(ctx, func() error {
		return s.pool.QueryRow(ctx, `SELECT data FROM reports WHERE id = $1`, id).Scan(&data)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, storeErr("load report", err)
	}

	return decodeReport(data)
}

// Delete removes the report for id and reports whether a row was deleted.
func (s *ReportStore) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool

	err := s.retrier.Retry(ctx, func() error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
		if err != nil {
			return storeErr("delete report", err)
		}

		deleted = tag.RowsAffected() > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// Scan returns a cursor that pages through matching rows in ID order. The
// pushdown predicates become WHERE clauses; each batch is a separate query
// keyed past the last seen ID, so the scan holds no connection between calls.
func (s *ReportStore) Scan(ctx context.Context, pred usecase.ScanPredicate) (usecase.ScanCursor, error) {
	where := ""
	args := []any{}

	addClause := func(clause string, arg any) {
		args = append(args, arg)
		cond := fmt.Sprintf(clause, len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if pred.Status != nil {
		addClause("status = $%d", string(*pred.Status))
	}
	if pred.CreatedAfter != nil {
		addClause("created_at >= $%d", *pred.CreatedAfter)
	}
	if pred.CreatedBefore != nil {
		addClause("created_at <= $%d", *pred.CreatedBefore)
	}

	return &keysetCursor{store: s, where: where, args: args}, nil
}

type keysetCursor struct {
	store     *ReportStore
	where     string
	args      []any
	lastID    string
	exhausted bool
}

func (c *keysetCursor) Next(ctx context.Context) ([]*domain.SuspiciousActivityReport, error) {
	if c.exhausted {
		return nil, nil
	}

	args := append([]any{}, c.args...)
	args = append(args, c.lastID, scanBatchSize)

	where := c.where
	idCond := fmt.Sprintf("id > $%d", len(args)-1)
	if where == "" {
		where = " WHERE " + idCond
	} else {
		where += " AND " + idCond
	}

	query := fmt.Sprintf(
		"SELECT data FROM reports%s ORDER BY id LIMIT $%d",
		where, len(args),
	)

	var batch []*domain.SuspiciousActivityReport

	err := c.store.retrier.Retry(ctx, func() error {
		rows, err := c.store.pool.Query(ctx, query, args...)
		if err != nil {
			return storeErr("scan reports", err)
		}
		defer rows.Close()

		batch = batch[:0]
		for rows.Next() {
			var data []byte
			if err := rows.Scan(&data); err != nil {
				return storeErr("scan reports", err)
			}

			r, err := decodeReport(data)
			if err != nil {
				return err
			}

			batch = append(batch, r)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	if len(batch) < scanBatchSize {
		c.exhausted = true
	}
	if len(batch) > 0 {
		c.lastID = batch[len(batch)-1].ID
	}

	return batch, nil
}

func (c *keysetCursor) Close() error {
	return nil
}

func decodeReport(data []byte) (*domain.SuspiciousActivityReport, error) {
	var r domain.SuspiciousActivityReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return &r, nil
}

// storeErr wraps a database failure so callers can map it to an
// unavailability response while keeping the underlying cause.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
