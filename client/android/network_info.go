package android

import (
	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// ConnectStatus values passed to NetConnChangedListener, exported for the Java client
const (
	ConnectStatusNoNetwork     = int(connstatus.NoNetwork)
	ConnectStatusWifi          = int(connstatus.Wifi)
	ConnectStatusMobile        = int(connstatus.Mobile)
	ConnectStatusMobile2G      = int(connstatus.Mobile2G)
	ConnectStatusMobile3G      = int(connstatus.Mobile3G)
	ConnectStatusMobile4G      = int(connstatus.Mobile4G)
	ConnectStatusMobileUnknown = int(connstatus.MobileUnknown)
	ConnectStatusOther         = int(connstatus.Other)
	ConnectStatusNoConnected   = int(connstatus.NoConnected)
)

// StatusName returns the name of a ConnectStatus value, e.g. MOBILE_4G
func StatusName(status int) string {
	return connstatus.ConnectStatus(status).String()
}

// NetworkInfo mirrors the fields of android.net.NetworkInfo the classifier needs
type NetworkInfo struct {
	connected   bool
	networkType int
	subtype     int
}

// NewNetworkInfo creates a NetworkInfo from NetworkInfo.isConnected(), getType() and getSubtype()
func NewNetworkInfo(connected bool, networkType int, subtype int) *NetworkInfo {
	return &NetworkInfo{
		connected:   connected,
		networkType: networkType,
		subtype:     subtype,
	}
}

func (n *NetworkInfo) IsConnected() bool {
	return n.connected
}

func (n *NetworkInfo) GetType() int {
	return n.networkType
}

func (n *NetworkInfo) GetSubtype() int {
	return n.subtype
}

func (n *NetworkInfo) rawState() connstatus.RawNetworkState {
	if n == nil {
		return connstatus.NoActiveNetwork
	}
	return connstatus.RawNetworkState{
		HasActive: true,
		Connected: n.connected,
		Transport: connstatus.TransportFromAndroid(n.networkType),
		Subtype:   connstatus.Subtype(n.subtype),
	}
}
