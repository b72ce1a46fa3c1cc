//go:build linux && !android

package networkmonitor

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/vishvananda/netlink"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

const defaultSysfsNet = "/sys/class/net"

// NetlinkProvider reads the active network from the kernel routing table: the active network
// is the interface carrying the preferred default route.
type NetlinkProvider struct {
	sysfsNet string
}

func NewNetlinkProvider() *NetlinkProvider {
	return &NetlinkProvider{sysfsNet: defaultSysfsNet}
}

func (p *NetlinkProvider) ActiveNetwork() (connstatus.RawNetworkState, error) {
	route, err := defaultRoute()
	if err != nil {
		return connstatus.NoActiveNetwork, err
	}
	if route == nil {
		return connstatus.NoActiveNetwork, nil
	}

	link, err := netlink.LinkByIndex(route.LinkIndex)
	if err != nil {
		return connstatus.NoActiveNetwork, fmt.Errorf("get link %d: %w", route.LinkIndex, err)
	}

	attrs := link.Attrs()
	return connstatus.RawNetworkState{
		HasActive: true,
		Connected: linkConnected(attrs),
		Transport: transportOf(attrs.Name, link.Type(), p.isWireless(attrs.Name)),
		Subtype:   connstatus.SubtypeUnknown,
		Interface: attrs.Name,
	}, nil
}

func (p *NetlinkProvider) isWireless(name string) bool {
	for _, marker := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(p.sysfsNet, name, marker)); err == nil {
			return true
		}
	}
	return false
}

// defaultRoute returns the main-table default route with the lowest metric, IPv4 first
func defaultRoute() (*netlink.Route, error) {
	var merr *multierror.Error
	for _, family := range []int{netlink.FAMILY_V4, netlink.FAMILY_V6} {
		routes, err := netlink.RouteListFiltered(family, &netlink.Route{Table: syscall.RT_TABLE_MAIN}, netlink.RT_FILTER_TABLE)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("list routes (family %d): %w", family, err))
			continue
		}

		var best *netlink.Route
		for i := range routes {
			r := &routes[i]
			if !isDefaultDst(r.Dst) || r.LinkIndex == 0 {
				continue
			}
			if best == nil || r.Priority < best.Priority {
				best = r
			}
		}
		if best != nil {
			return best, nil
		}
	}

	// a single failing family is fine as long as the other one answered
	if merr != nil && len(merr.Errors) == 2 {
		return nil, merr
	}
	return nil, nil
}

func isDefaultDst(dst *net.IPNet) bool {
	if dst == nil {
		return true
	}
	ones, _ := dst.Mask.Size()
	return ones == 0
}

func linkConnected(attrs *netlink.LinkAttrs) bool {
	if attrs.Flags&net.FlagUp == 0 {
		return false
	}
	switch attrs.OperState {
	case netlink.OperUp:
		return true
	case netlink.OperUnknown:
		// tun devices and some modems never report an operational state
		return attrs.RawFlags&syscall.IFF_RUNNING != 0
	default:
		return false
	}
}
