package domain

import "errors"

var (
	// ErrReportNotFound is returned by mutating operations that target a
	// nonexistent report id. Read-path lookups return an absent value instead.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidTransition is returned when submit or file is attempted from a
	// status that does not permit it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReportFiled is returned when any mutation is attempted on a filed
	// report. Filed reports are immutable except for reads.
	ErrReportFiled = errors.New("report has been filed and is immutable")

	// ErrInvalidArgument is returned for structurally invalid input that
	// reaches the core, such as an empty filing reference.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the backing store failed or timed
	// out. It is surfaced as-is, never retried by the core.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
