package networkmonitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollingWatcher_SignalsUntilCancelled(t *testing.T) {
	w := NewPollingWatcher(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var signals atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Watch(ctx, func() {
			signals.Add(1)
		})
	}()

	require.Eventually(t, func() bool {
		return signals.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewPollingWatcher_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultPollInterval, NewPollingWatcher(0).interval)
	assert.Equal(t, time.Second, NewPollingWatcher(time.Second).interval)
}
