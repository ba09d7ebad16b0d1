package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys for watchlist metrics.
var (
	AttrOperation = attribute.Key("operation")
	AttrOutcome   = attribute.Key("outcome")
	AttrWatched   = attribute.Key("watched")
)

// Outcomes reported on watchlist_operation_total.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeFault    = "storage_fault"
)

// WatchlistMetrics counts watchlist operations by outcome.
// A nil *WatchlistMetrics is valid and records nothing.
type WatchlistMetrics struct {
	operations *Counter
	toggles    *Counter
}

// NewWatchlistMetrics registers the watchlist instruments on meter.
func NewWatchlistMetrics(meter metric.Meter) (*WatchlistMetrics, error) {
	operations, err := NewCounter(meter,
		"watchlist_operation_total",
		"Watchlist operations by name and outcome",
		"{operation}",
	)
	if err != nil {
		return nil, err
	}
	toggles, err := NewCounter(meter,
		"watchlist_toggle_total",
		"Watched-state flips by resulting state",
		"{toggle}",
	)
	if err != nil {
		return nil, err
	}
	return &WatchlistMetrics{operations: operations, toggles: toggles}, nil
}

// RecordOperation counts one operation with its outcome.
func (m *WatchlistMetrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.Inc(ctx, AttrOperation.String(operation), AttrOutcome.String(outcome))
}

// RecordToggle counts a successful toggle to the given watched state.
func (m *WatchlistMetrics) RecordToggle(ctx context.Context, watched bool) {
	if m == nil {
		return
	}
	m.toggles.Inc(ctx, AttrWatched.Bool(watched))
}
