package networkmonitor

import (
	"fmt"
	"net"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// InterfaceProvider reads the active network from the standard interface list. It picks the
// first non-loopback interface that is up and has a global unicast address.
type InterfaceProvider struct {
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

func NewInterfaceProvider() *InterfaceProvider {
	return &InterfaceProvider{
		interfaces: net.Interfaces,
		addrs: func(iface net.Interface) ([]net.Addr, error) {
			return iface.Addrs()
		},
	}
}

func (p *InterfaceProvider) ActiveNetwork() (connstatus.RawNetworkState, error) {
	ifaces, err := p.interfaces()
	if err != nil {
		return connstatus.NoActiveNetwork, fmt.Errorf("list interfaces: %w", err)
	}

	var candidate *net.Interface
	for i := range ifaces {
		iface := ifaces[i]
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if !p.hasGlobalAddr(iface) {
			continue
		}
		if iface.Flags&net.FlagRunning != 0 {
			return stateOf(iface, true), nil
		}
		if candidate == nil {
			candidate = &iface
		}
	}

	if candidate != nil {
		return stateOf(*candidate, false), nil
	}
	return connstatus.NoActiveNetwork, nil
}

func (p *InterfaceProvider) hasGlobalAddr(iface net.Interface) bool {
	addrs, err := p.addrs(iface)
	if err != nil {
		return false
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if ok && ipNet.IP.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

func stateOf(iface net.Interface, connected bool) connstatus.RawNetworkState {
	return connstatus.RawNetworkState{
		HasActive: true,
		Connected: connected,
		Transport: transportOf(iface.Name, "", false),
		Subtype:   connstatus.SubtypeUnknown,
		Interface: iface.Name,
	}
}
