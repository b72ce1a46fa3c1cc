package networkmonitor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultPollInterval = 10 * time.Second

// PollingWatcher signals on a fixed interval. It is the fallback for hosts without
// event-driven network notifications; pair it with WithDedup.
type PollingWatcher struct {
	interval time.Duration
}

func NewPollingWatcher(interval time.Duration) *PollingWatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollingWatcher{interval: interval}
}

func (w *PollingWatcher) Watch(ctx context.Context, signal func()) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Debugf("Network monitor: polling every %s", w.interval)

	// initial reading
	signal()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			signal()
		}
	}
}
