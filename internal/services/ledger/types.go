package ledger

import "time"

// EntryRef carries the optional payment/trip references stamped onto a
// ledger entry, plus a free-form description.
type EntryRef struct {
	PaymentID   *uint
	TripID      *uint
	Description string
}

// HistoryFilter narrows ledger history queries. Zero values mean "no
// filter".
type HistoryFilter struct {
	Direction string
	Reason    string
	Page      int
	Limit     int
}

// MetricsCollector receives ledger operation metrics.
type MetricsCollector interface {
	RecordPosting(direction, reason string, amount int64)
	RecordError(operation, errType string)
	RecordOperationDuration(operation string, duration time.Duration)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPosting(direction, reason string, amount int64) {}

func (NoopMetricsCollector) RecordError(operation, errType string) {}

func (NoopMetricsCollector) RecordOperationDuration(operation string, duration time.Duration) {}
