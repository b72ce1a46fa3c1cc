package networkmonitor

import (
	"context"
	"errors"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	nberrors "github.com/netbirdio/netstatus/client/errors"
	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/dispatcher"
	"github.com/netbirdio/netstatus/client/internal/listener"
	"github.com/netbirdio/netstatus/client/internal/metrics"
)

var (
	ErrNilProvider = errors.New("network provider is nil")
	ErrNilWatcher  = errors.New("network watcher is nil")
)

// Provider reads the current state of the host's active network
type Provider interface {
	ActiveNetwork() (connstatus.RawNetworkState, error)
}

// Watcher calls signal whenever the host's network configuration may have changed.
// Watch blocks until ctx is done or the subscription fails. The signal carries no payload;
// the receiver re-reads the state from a Provider.
type Watcher interface {
	Watch(ctx context.Context, signal func()) error
}

// Option configures a NetworkMonitor
type Option func(*NetworkMonitor)

// WithClassifier replaces connstatus.DefaultClassifier
func WithClassifier(c *connstatus.Classifier) Option {
	return func(nm *NetworkMonitor) {
		if c != nil {
			nm.classifier.Store(c)
		}
	}
}

// WithMetrics records broadcasts and failures
func WithMetrics(m metrics.StatusMetrics) Option {
	return func(nm *NetworkMonitor) {
		if m != nil {
			nm.metrics = m
		}
	}
}

// WithDedup skips broadcasting when the classified statuses did not change since the last
// signal. Used with polling watchers, which signal on every tick.
func WithDedup() Option {
	return func(nm *NetworkMonitor) {
		nm.dedup = true
	}
}

// NetworkMonitor re-reads and classifies the active network on every watcher signal and
// notifies its listeners.
type NetworkMonitor struct {
	provider   Provider
	watcher    Watcher
	classifier atomic.Pointer[connstatus.Classifier]
	dispatcher *dispatcher.StatusDispatcher
	metrics    metrics.StatusMetrics
	dedup      bool

	lastMu sync.Mutex
	last   []connstatus.ConnectStatus

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new network monitor. watcher may be nil when change signals are delivered
// by calling OnChange directly.
func New(provider Provider, watcher Watcher, opts ...Option) (*NetworkMonitor, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	nm := &NetworkMonitor{
		provider:   provider,
		watcher:    watcher,
		dispatcher: dispatcher.NewStatusDispatcher(),
		metrics:    metrics.Noop(),
	}
	nm.classifier.Store(connstatus.DefaultClassifier)
	for _, opt := range opts {
		opt(nm)
	}
	return nm, nil
}

// Start subscribes to the watcher in the background. A running subscription is stopped first.
func (nm *NetworkMonitor) Start(ctx context.Context) error {
	if nm.watcher == nil {
		return ErrNilWatcher
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()

	if nm.cancel != nil {
		log.Warn("Network monitor: already running, stopping previous watcher")
		nm.stopWatcherLocked()
	}

	if ctx.Err() != nil {
		log.Info("Network monitor: not starting, context is already cancelled")
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	nm.cancel = cancel

	nm.wg.Add(1)
	go nm.run(ctx)

	log.Info("Network monitor: started")
	return nil
}

func (nm *NetworkMonitor) run(ctx context.Context) {
	defer nm.wg.Done()

	// recover in case sys ops panic
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Network monitor: panic occurred: %v, stack trace: %s", r, string(debug.Stack()))
		}
	}()

	err := nm.watcher.Watch(ctx, func() {
		if err := nm.OnChange(); err != nil {
			log.Warnf("Network monitor: %v", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Network monitor: watcher stopped: %v", err)
	}
}

// Stop tears down the subscription and drops all listeners. Start and Stop are serialized and
// must not be called from a listener callback.
func (nm *NetworkMonitor) Stop() {
	nm.stopWatcher()
	nm.dispatcher.Clear()

	nm.lastMu.Lock()
	nm.last = nil
	nm.lastMu.Unlock()
}

func (nm *NetworkMonitor) stopWatcher() {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.stopWatcherLocked()
}

// stopWatcherLocked must be called with nm.mu held. The watcher goroutine never takes nm.mu.
func (nm *NetworkMonitor) stopWatcherLocked() {
	if nm.cancel == nil {
		return
	}
	nm.cancel()
	nm.cancel = nil
	nm.wg.Wait()
	log.Info("Network monitor: stopped")
}

// OnChange handles one change signal: it re-reads the active network, classifies it and
// notifies the listeners of every status the reading broadcasts.
func (nm *NetworkMonitor) OnChange() error {
	state := nm.Current()
	statuses := nm.Classifier().Broadcast(state)

	if nm.dedup && !nm.swapLast(statuses) {
		log.Tracef("Network monitor: %s unchanged", state)
		return nil
	}

	log.Infof("Network monitor: network changed: %s -> %v", state, statuses)

	ctx := context.Background()
	var merr *multierror.Error
	for _, status := range statuses {
		nm.metrics.RecordStatus(ctx, status)
		if err := nm.dispatcher.Notify(status); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	// Append flattens the dispatcher's multierrors, so each entry is one listener failure
	if merr != nil {
		nm.metrics.RecordListenerFailures(ctx, len(merr.Errors))
	}
	return nberrors.FormatErrorOrNil(merr)
}

// swapLast stores statuses and reports whether they differ from the previous ones
func (nm *NetworkMonitor) swapLast(statuses []connstatus.ConnectStatus) bool {
	nm.lastMu.Lock()
	defer nm.lastMu.Unlock()
	if nm.last != nil && slices.Equal(nm.last, statuses) {
		return false
	}
	nm.last = statuses
	return true
}

// Current reads the active network. A failed read is logged and reported as no active network.
func (nm *NetworkMonitor) Current() connstatus.RawNetworkState {
	state, err := nm.provider.ActiveNetwork()
	if err != nil {
		log.Warnf("Network monitor: failed to read active network: %v", err)
		nm.metrics.RecordQueryError(context.Background())
		return connstatus.NoActiveNetwork
	}
	return state
}

// Status classifies the current reading
func (nm *NetworkMonitor) Status() connstatus.ConnectStatus {
	return nm.Classifier().Classify(nm.Current())
}

// Classifier returns the classifier in use
func (nm *NetworkMonitor) Classifier() *connstatus.Classifier {
	return nm.classifier.Load()
}

// SetClassifier replaces the classifier for the following signals. The next signal is
// broadcast even when deduplicating, so listeners see the reclassified status.
func (nm *NetworkMonitor) SetClassifier(c *connstatus.Classifier) {
	if c == nil {
		return
	}
	nm.classifier.Store(c)

	nm.lastMu.Lock()
	nm.last = nil
	nm.lastMu.Unlock()
}

func (nm *NetworkMonitor) AddListener(l listener.NetConnChangedListener) error {
	return nm.dispatcher.AddListener(l)
}

func (nm *NetworkMonitor) RemoveListener(l listener.NetConnChangedListener) bool {
	return nm.dispatcher.RemoveListener(l)
}

// Listeners returns the number of registered listeners
func (nm *NetworkMonitor) Listeners() int {
	return nm.dispatcher.Len()
}
