package dispatcher

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	nberrors "github.com/netbirdio/netstatus/client/errors"
	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/listener"
)

var (
	ErrNilListener           = errors.New("listener is nil")
	ErrNotComparableListener = errors.New("listener is not comparable")
)

// StatusDispatcher keeps an ordered list of listeners and notifies them of status changes.
// The same listener may be added more than once and is then notified once per registration.
type StatusDispatcher struct {
	listeners []listener.NetConnChangedListener
	mu        sync.Mutex
}

func NewStatusDispatcher() *StatusDispatcher {
	return &StatusDispatcher{}
}

// AddListener appends l to the dispatch order
func (d *StatusDispatcher) AddListener(l listener.NetConnChangedListener) error {
	if isNil(l) {
		return ErrNilListener
	}
	if !reflect.TypeOf(l).Comparable() {
		return fmt.Errorf("%w: %T", ErrNotComparableListener, l)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
	log.Debugf("status dispatcher: added listener %T, %d registered", l, len(d.listeners))
	return nil
}

// RemoveListener removes every registration of l and reports whether any was found
func (d *StatusDispatcher) RemoveListener(l listener.NetConnChangedListener) bool {
	if isNil(l) || !reflect.TypeOf(l).Comparable() {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.listeners[:0]
	for _, registered := range d.listeners {
		if registered != l {
			kept = append(kept, registered)
		}
	}
	removed := len(kept) != len(d.listeners)
	clear(d.listeners[len(kept):])
	d.listeners = kept

	log.Debugf("status dispatcher: remove listener %T: %t", l, removed)
	return removed
}

// Clear drops all listeners
func (d *StatusDispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = nil
}

// Len returns the number of registrations
func (d *StatusDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Notify calls every listener registered at the time of the call, in registration order.
// Listeners run outside the lock, so they may add or remove listeners; such changes apply
// from the next Notify on. A failing or panicking listener does not stop the others; all
// failures are returned together.
func (d *StatusDispatcher) Notify(status connstatus.ConnectStatus) error {
	d.mu.Lock()
	snapshot := make([]listener.NetConnChangedListener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	var merr *multierror.Error
	for i, l := range snapshot {
		if err := call(l, status); err != nil {
			log.Warnf("status dispatcher: listener %d (%T) failed on %s: %v", i, l, status, err)
			merr = multierror.Append(merr, &nberrors.ListenerError{Index: i, Status: status, Err: err})
		}
	}

	return nberrors.FormatErrorOrNil(merr)
}

func call(l listener.NetConnChangedListener, status connstatus.ConnectStatus) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("status dispatcher: listener panic: %v, stack trace: %s", r, string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return l.OnNetConnChanged(status)
}

func isNil(l listener.NetConnChangedListener) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}
