package networkmonitor

import (
	"strings"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// ProviderFunc adapts a function to Provider
type ProviderFunc func() (connstatus.RawNetworkState, error)

func (f ProviderFunc) ActiveNetwork() (connstatus.RawNetworkState, error) {
	return f()
}

// name prefixes used by cellular modems across kernels and vendors
var mobilePrefixes = []string{"wwan", "rmnet", "ccmni", "pdp", "usb_rmnet", "qmimux"}

// wireless interfaces without sysfs hints
var wifiPrefixes = []string{"wlan", "wlp", "wlx", "wifi", "ath"}

// transportOf maps a host interface to a transport. wireless reports whether the kernel
// exposes the interface as 802.11.
func transportOf(name, linkType string, wireless bool) connstatus.TransportType {
	if wireless {
		return connstatus.TransportWifi
	}
	if linkType == "wwan" || hasPrefix(name, mobilePrefixes) {
		return connstatus.TransportMobile
	}
	if hasPrefix(name, wifiPrefixes) {
		return connstatus.TransportWifi
	}
	return connstatus.TransportOther
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
