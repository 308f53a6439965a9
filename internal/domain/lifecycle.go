package domain

import (
	"fmt"
	"strings"
	"time"
)

// Submit moves a draft report to Submitted. Only drafts can be submitted.
func (r *SuspiciousActivityReport) Submit(now time.Time) error {
	if r.Status != StatusDraft {
		return fmt.Errorf("%w: only draft reports can be submitted (status %s)", ErrInvalidTransition, r.Status)
	}

	r.Status = StatusSubmitted
	r.UpdatedAt = now

	return nil
}

// File moves a submitted report to Filed, stamping the filing reference and
// filing time together, exactly once. Filed is terminal.
func (r *SuspiciousActivityReport) File(reference string, now time.Time) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: filing reference is required", ErrInvalidArgument)
	}
	if r.Status != StatusSubmitted {
		return fmt.Errorf("%w: only submitted reports can be filed (status %s)", ErrInvalidTransition, r.Status)
	}

	filedAt := now
	r.Status = StatusFiled
	r.FilingReference = reference
	r.FiledAt = &filedAt
	r.UpdatedAt = now

	return nil
}

// EnsureMutable rejects updates and deletes once a report is filed.
func (r *SuspiciousActivityReport) EnsureMutable() error {
	if r.Status == StatusFiled {
		return ErrReportFiled
	}
	return nil
}
