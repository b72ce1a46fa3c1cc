package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// StatusMetrics records connectivity monitor activity
type StatusMetrics interface {
	// RecordStatus counts one broadcast of status
	RecordStatus(ctx context.Context, status connstatus.ConnectStatus)
	// RecordListenerFailures counts listener failures of a single dispatch
	RecordListenerFailures(ctx context.Context, count int)
	// RecordQueryError counts a failed read of the active network
	RecordQueryError(ctx context.Context)
}

// NewStatusMetrics returns the OpenTelemetry implementation, or a no-op one when meter is nil
func NewStatusMetrics(meter metric.Meter) (StatusMetrics, error) {
	if meter == nil {
		return Noop(), nil
	}
	m, err := newOtelMetrics(meter)
	if err != nil {
		return nil, err
	}
	return m, nil
}
