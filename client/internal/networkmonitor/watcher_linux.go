//go:build linux && !android

package networkmonitor

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

var errSubscriptionClosed = errors.New("netlink subscription closed")

// NetlinkWatcher signals on default route changes in the main table and on link state changes
type NetlinkWatcher struct {
	newBackOff     func() backoff.BackOff
	routeSubscribe func(chan<- netlink.RouteUpdate, <-chan struct{}) error
	linkSubscribe  func(chan<- netlink.LinkUpdate, <-chan struct{}) error
}

func NewNetlinkWatcher() *NetlinkWatcher {
	return &NetlinkWatcher{
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		routeSubscribe: netlink.RouteSubscribe,
		linkSubscribe:  netlink.LinkSubscribe,
	}
}

// Watch resubscribes when the kernel closes a subscription and returns only when ctx is done
// or resubscribing keeps failing past the backoff limit.
func (w *NetlinkWatcher) Watch(ctx context.Context, signal func()) error {
	for {
		err := w.watch(ctx, signal)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, errSubscriptionClosed) {
			return err
		}
		log.Warnf("Network monitor: %v, resubscribing", err)
		// the kernel state may have moved while unsubscribed
		signal()
	}
}

func (w *NetlinkWatcher) watch(ctx context.Context, signal func()) error {
	var (
		routeChan chan netlink.RouteUpdate
		linkChan  chan netlink.LinkUpdate
		done      chan struct{}
	)

	// netlink closes the update channels once done is closed, so every attempt gets its own
	subscribe := func() error {
		rc := make(chan netlink.RouteUpdate)
		lc := make(chan netlink.LinkUpdate)
		d := make(chan struct{})

		if err := w.routeSubscribe(rc, d); err != nil {
			close(d)
			return fmt.Errorf("subscribe to route updates: %v", err)
		}
		if err := w.linkSubscribe(lc, d); err != nil {
			close(d)
			return fmt.Errorf("subscribe to link updates: %v", err)
		}

		routeChan, linkChan, done = rc, lc, d
		return nil
	}

	if err := backoff.Retry(subscribe, backoff.WithContext(w.newBackOff(), ctx)); err != nil {
		return err
	}
	defer close(done)

	log.Info("Network monitor: netlink subscription started")

	operStates := make(map[int]netlink.LinkOperState)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case route, ok := <-routeChan:
			if !ok {
				return fmt.Errorf("route: %w", errSubscriptionClosed)
			}
			if isDefaultRouteChange(route) {
				log.Infof("Network monitor: default route changed: via %s, interface %d", route.Gw, route.LinkIndex)
				signal()
			}
		case link, ok := <-linkChan:
			if !ok {
				return fmt.Errorf("link: %w", errSubscriptionClosed)
			}
			attrs := link.Attrs()
			if attrs == nil {
				continue
			}
			if link.Header.Type == syscall.RTM_DELLINK {
				delete(operStates, attrs.Index)
				log.Infof("Network monitor: interface %s (%d) removed", attrs.Name, attrs.Index)
				signal()
				continue
			}
			if prev, seen := operStates[attrs.Index]; seen && prev == attrs.OperState {
				continue
			}
			operStates[attrs.Index] = attrs.OperState
			log.Debugf("Network monitor: interface %s (%d) is %s", attrs.Name, attrs.Index, attrs.OperState)
			signal()
		}
	}
}

func isDefaultRouteChange(route netlink.RouteUpdate) bool {
	if route.Table != syscall.RT_TABLE_MAIN || !isDefaultDst(route.Dst) {
		return false
	}
	return route.Type == syscall.RTM_NEWROUTE || route.Type == syscall.RTM_DELROUTE
}
