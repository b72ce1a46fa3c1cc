package metrics

import (
	"context"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// noopMetrics is a no-op implementation of StatusMetrics
type noopMetrics struct{}

// Noop returns a StatusMetrics that discards everything
func Noop() StatusMetrics {
	return &noopMetrics{}
}

func (s *noopMetrics) RecordStatus(_ context.Context, _ connstatus.ConnectStatus) {
	// No-op
}

func (s *noopMetrics) RecordListenerFailures(_ context.Context, _ int) {
	// No-op
}

func (s *noopMetrics) RecordQueryError(_ context.Context) {
	// No-op
}
