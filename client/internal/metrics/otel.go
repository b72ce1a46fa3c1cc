package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

const statusAttr = "status"

// otelMetrics is the OpenTelemetry implementation of StatusMetrics
type otelMetrics struct {
	statusChanges    metric.Int64Counter
	listenerFailures metric.Int64Counter
	queryErrors      metric.Int64Counter
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	statusChanges, err := meter.Int64Counter(
		"netstatus_status_changes_total",
		metric.WithDescription("Connectivity statuses broadcast to listeners"),
	)
	if err != nil {
		return nil, fmt.Errorf("status changes counter: %w", err)
	}

	listenerFailures, err := meter.Int64Counter(
		"netstatus_listener_failures_total",
		metric.WithDescription("Listener callbacks that returned an error or panicked"),
	)
	if err != nil {
		return nil, fmt.Errorf("listener failures counter: %w", err)
	}

	queryErrors, err := meter.Int64Counter(
		"netstatus_query_errors_total",
		metric.WithDescription("Failed reads of the active network"),
	)
	if err != nil {
		return nil, fmt.Errorf("query errors counter: %w", err)
	}

	return &otelMetrics{
		statusChanges:    statusChanges,
		listenerFailures: listenerFailures,
		queryErrors:      queryErrors,
	}, nil
}

func (m *otelMetrics) RecordStatus(ctx context.Context, status connstatus.ConnectStatus) {
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String(statusAttr, status.String())))
}

func (m *otelMetrics) RecordListenerFailures(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	m.listenerFailures.Add(ctx, int64(count))
}

func (m *otelMetrics) RecordQueryError(ctx context.Context) {
	m.queryErrors.Add(ctx, 1)
}
