//go:build !linux || android

package networkmonitor

import "time"

// NewHost returns the provider, watcher and options suited to the running host
func NewHost(pollInterval time.Duration) (Provider, Watcher, []Option) {
	return NewInterfaceProvider(), NewPollingWatcher(pollInterval), []Option{WithDedup()}
}
