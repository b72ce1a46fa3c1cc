//go:build linux && !android

package networkmonitor

import "time"

// NewHost returns the provider, watcher and options suited to the running host
func NewHost(_ time.Duration) (Provider, Watcher, []Option) {
	return NewNetlinkProvider(), NewNetlinkWatcher(), nil
}
