package android

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/listener"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
)

// ConnectivityManager is implemented by the Java client over android.net.ConnectivityManager
type ConnectivityManager interface {
	// GetActiveNetworkInfo returns nil when there is no active network
	GetActiveNetworkInfo() *NetworkInfo
}

// TelephonyManager is implemented by the Java client over android.telephony.TelephonyManager
type TelephonyManager interface {
	GetNetworkOperatorName() string
	GetPhoneType() int
}

// ReceiverRegistrar registers the CONNECTIVITY_ACTION broadcast receiver whose onReceive calls
// NetUtil.OnReceive
type ReceiverRegistrar interface {
	RegisterReceiver() error
	UnregisterReceiver() error
}

// NetConnChangedListener receives one of the ConnectStatus* values
type NetConnChangedListener interface {
	OnNetConnChanged(status int) error
}

// NetUtil export the connectivity classifier and the status listeners for mobile
type NetUtil struct {
	connectivity ConnectivityManager
	telephony    TelephonyManager
	registrar    ReceiverRegistrar
	monitor      *networkmonitor.NetworkMonitor

	listenersMu sync.Mutex
	listeners   map[int64]*listener.FuncListener
	nextID      int64
	registered  bool
}

// NewNetUtil instantiate a new NetUtil. telephony may be nil on devices without telephony
// support; registrar may be nil when the Java client manages the receiver itself.
func NewNetUtil(connectivity ConnectivityManager, telephony TelephonyManager, registrar ReceiverRegistrar) (*NetUtil, error) {
	if connectivity == nil {
		return nil, errors.New("connectivity manager is nil")
	}

	n := &NetUtil{
		connectivity: connectivity,
		telephony:    telephony,
		registrar:    registrar,
		listeners:    make(map[int64]*listener.FuncListener),
	}

	provider := networkmonitor.ProviderFunc(func() (connstatus.RawNetworkState, error) {
		return n.connectivity.GetActiveNetworkInfo().rawState(), nil
	})

	monitor, err := networkmonitor.New(provider, nil)
	if err != nil {
		return nil, err
	}
	n.monitor = monitor
	return n, nil
}

func (n *NetUtil) state() connstatus.RawNetworkState {
	return n.monitor.Current()
}

// IsNetConnected reports whether the active network is connected
func (n *NetUtil) IsNetConnected() bool {
	return connstatus.IsNetConnected(n.state())
}

func (n *NetUtil) IsWifiConnected() bool {
	return connstatus.IsWifiConnected(n.state())
}

func (n *NetUtil) IsMobileConnected() bool {
	return connstatus.IsMobileConnected(n.state())
}

func (n *NetUtil) Is2GConnected() bool {
	return connstatus.Is2GConnected(n.state())
}

func (n *NetUtil) Is3GConnected() bool {
	return connstatus.Is3GConnected(n.state())
}

func (n *NetUtil) Is4GConnected() bool {
	return connstatus.Is4GConnected(n.state())
}

// GetConnectStatus returns the ConnectStatus* value of the active network
func (n *NetUtil) GetConnectStatus() int {
	return int(n.monitor.Status())
}

// GetNetworkOperatorName returns the mobile network operator name, empty without telephony
func (n *NetUtil) GetNetworkOperatorName() string {
	if n.telephony == nil {
		return ""
	}
	return n.telephony.GetNetworkOperatorName()
}

// GetPhoneType returns a TelephonyManager.PHONE_TYPE_* value, PHONE_TYPE_NONE without telephony
func (n *NetUtil) GetPhoneType() int {
	if n.telephony == nil {
		return int(connstatus.PhoneTypeNone)
	}
	return n.telephony.GetPhoneType()
}

// RegisterNetConnChangedReceiver asks the Java client to register the broadcast receiver
func (n *NetUtil) RegisterNetConnChangedReceiver() error {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()

	if n.registered {
		return nil
	}
	if n.registrar != nil {
		if err := n.registrar.RegisterReceiver(); err != nil {
			return fmt.Errorf("register receiver: %w", err)
		}
	}
	n.registered = true
	log.Debug("net conn changed receiver registered")
	return nil
}

// UnregisterNetConnChangedReceiver unregisters the broadcast receiver and drops all listeners
func (n *NetUtil) UnregisterNetConnChangedReceiver() error {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()

	var err error
	if n.registered && n.registrar != nil {
		if uerr := n.registrar.UnregisterReceiver(); uerr != nil {
			err = fmt.Errorf("unregister receiver: %w", uerr)
		}
	}
	n.registered = false

	n.monitor.Stop()
	clear(n.listeners)
	log.Debug("net conn changed receiver unregistered")
	return err
}

// OnReceive is called from the broadcast receiver's onReceive. It re-reads the active network
// and notifies every listener. The returned error lists the listeners that failed. Broadcasts
// arriving while the receiver is unregistered are dropped.
func (n *NetUtil) OnReceive() error {
	n.listenersMu.Lock()
	registered := n.registered
	n.listenersMu.Unlock()

	if !registered {
		log.Debug("onReceive: receiver not registered, ignoring")
		return nil
	}

	log.Debug("onReceive")
	return n.monitor.OnChange()
}

// AddNetConnChangedListener registers l and returns the id to remove it with. Java objects
// crossing the bridge get a new Go proxy every time, so removal goes by id.
func (n *NetUtil) AddNetConnChangedListener(l NetConnChangedListener) (int64, error) {
	if l == nil {
		return 0, errors.New("listener is nil")
	}

	adapter := listener.NewFunc(func(status connstatus.ConnectStatus) error {
		return l.OnNetConnChanged(int(status))
	})

	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()

	if err := n.monitor.AddListener(adapter); err != nil {
		return 0, err
	}
	n.nextID++
	n.listeners[n.nextID] = adapter

	log.Debugf("addNetConnChangedListener: %d", n.nextID)
	return n.nextID, nil
}

// RemoveNetConnChangedListener removes the listener registered under id
func (n *NetUtil) RemoveNetConnChangedListener(id int64) bool {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()

	adapter, ok := n.listeners[id]
	if !ok {
		return false
	}
	delete(n.listeners, id)
	removed := n.monitor.RemoveListener(adapter)

	log.Debugf("removeNetConnChangedListener %d: %t", id, removed)
	return removed
}

// ListenerCount returns the number of registered listeners
func (n *NetUtil) ListenerCount() int {
	return n.monitor.Listeners()
}

// SetTraceLogLevel configure the logger to trace level
func (n *NetUtil) SetTraceLogLevel() {
	log.SetLevel(log.TraceLevel)
}

// SetInfoLogLevel configure the logger to info level
func (n *NetUtil) SetInfoLogLevel() {
	log.SetLevel(log.InfoLevel)
}
