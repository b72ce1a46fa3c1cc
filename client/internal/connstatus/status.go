package connstatus

import (
	"fmt"
	"strings"
)

const (
	// NoNetwork indicates the host reports no active network at all
	NoNetwork ConnectStatus = iota
	// Wifi indicates the active network is a connected Wi-Fi network
	Wifi
	// Mobile is the coarse signal for a connected cellular network
	Mobile
	// Mobile2G indicates a connected cellular network on a 2G technology
	Mobile2G
	// Mobile3G indicates a connected cellular network on a 3G technology
	Mobile3G
	// Mobile4G indicates a connected cellular network on a 4G technology
	Mobile4G
	// MobileUnknown indicates a connected cellular network with an unrecognized subtype
	MobileUnknown
	// Other indicates a connected network on any other transport (ethernet, bluetooth, vpn)
	Other
	// NoConnected indicates an active network exists but is not connected
	NoConnected
)

// ConnectStatus describe the classified state of the active network
type ConnectStatus int32

var statusNames = []string{
	NoNetwork:     "NO_NETWORK",
	Wifi:          "WIFI",
	Mobile:        "MOBILE",
	Mobile2G:      "MOBILE_2G",
	Mobile3G:      "MOBILE_3G",
	Mobile4G:      "MOBILE_4G",
	MobileUnknown: "MOBILE_UNKNOWN",
	Other:         "OTHER",
	NoConnected:   "NO_CONNECTED",
}

// AllStatuses returns every status in declaration order
func AllStatuses() []ConnectStatus {
	all := make([]ConnectStatus, 0, len(statusNames))
	for i := range statusNames {
		all = append(all, ConnectStatus(i))
	}
	return all
}

func (s ConnectStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("INVALID_CONNECT_STATUS(%d)", int32(s))
	}
	return statusNames[s]
}

// Valid reports whether s is one of the declared statuses
func (s ConnectStatus) Valid() bool {
	return s >= NoNetwork && int(s) < len(statusNames)
}

// Connected reports whether the status describes a usable network
func (s ConnectStatus) Connected() bool {
	return s.Valid() && s != NoNetwork && s != NoConnected
}

// IsMobile reports whether the status is the coarse or any refined cellular status
func (s ConnectStatus) IsMobile() bool {
	switch s {
	case Mobile, Mobile2G, Mobile3G, Mobile4G, MobileUnknown:
		return true
	default:
		return false
	}
}

// ParseConnectStatus is the inverse of String. Matching ignores case and accepts '-' for '_'.
func ParseConnectStatus(s string) (ConnectStatus, error) {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for i, n := range statusNames {
		if n == name {
			return ConnectStatus(i), nil
		}
	}
	return NoNetwork, fmt.Errorf("unknown connect status %q", s)
}
