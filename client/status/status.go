package status

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/version"
)

type NetworkStateOutput struct {
	Active    bool   `json:"active" yaml:"active"`
	Connected bool   `json:"connected" yaml:"connected"`
	Transport string `json:"transport" yaml:"transport"`
	Subtype   string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Interface string `json:"interface,omitempty" yaml:"interface,omitempty"`
}

type PredicatesOutput struct {
	Connected       bool `json:"connected" yaml:"connected"`
	WifiConnected   bool `json:"wifiConnected" yaml:"wifiConnected"`
	MobileConnected bool `json:"mobileConnected" yaml:"mobileConnected"`
	Mobile2G        bool `json:"mobile2g" yaml:"mobile2g"`
	Mobile3G        bool `json:"mobile3g" yaml:"mobile3g"`
	Mobile4G        bool `json:"mobile4g" yaml:"mobile4g"`
}

type OutputOverview struct {
	Status     string             `json:"status" yaml:"status"`
	Broadcast  []string           `json:"broadcast" yaml:"broadcast"`
	Network    NetworkStateOutput `json:"network" yaml:"network"`
	Predicates PredicatesOutput   `json:"predicates" yaml:"predicates"`
	Version    string             `json:"version" yaml:"version"`
}

// ConvertToStatusOutputOverview classifies state and collects everything the status command prints
func ConvertToStatusOutputOverview(state connstatus.RawNetworkState, classifier *connstatus.Classifier) OutputOverview {
	if classifier == nil {
		classifier = connstatus.DefaultClassifier
	}

	broadcast := classifier.Broadcast(state)
	names := make([]string, 0, len(broadcast))
	for _, s := range broadcast {
		names = append(names, s.String())
	}

	network := NetworkStateOutput{
		Active:    state.HasActive,
		Connected: state.Connected,
		Transport: state.Transport.String(),
		Interface: state.Interface,
	}
	if state.Transport == connstatus.TransportMobile {
		network.Subtype = state.Subtype.String()
	}

	return OutputOverview{
		Status:    classifier.Classify(state).String(),
		Broadcast: names,
		Network:   network,
		Predicates: PredicatesOutput{
			Connected:       classifier.IsNetConnected(state),
			WifiConnected:   classifier.IsWifiConnected(state),
			MobileConnected: classifier.IsMobileConnected(state),
			Mobile2G:        classifier.Is2GConnected(state),
			Mobile3G:        classifier.Is3GConnected(state),
			Mobile4G:        classifier.Is4GConnected(state),
		},
		Version: version.NetstatusVersion(),
	}
}

// JSON returns the status overview as a JSON string.
func (o *OutputOverview) JSON() (string, error) {
	jsonBytes, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("json marshal failed")
	}
	return string(jsonBytes), nil
}

// YAML returns the status overview as a YAML string.
func (o *OutputOverview) YAML() (string, error) {
	yamlBytes, err := yaml.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("yaml marshal failed")
	}
	return string(yamlBytes), nil
}

// GeneralSummary returns a human readable summary of the status overview.
func (o *OutputOverview) GeneralSummary() string {
	var network string
	switch {
	case !o.Network.Active:
		network = "none"
	default:
		network = o.Network.Transport
		if o.Network.Subtype != "" {
			network += " (" + o.Network.Subtype + ")"
		}
		if o.Network.Interface != "" {
			network += " on " + o.Network.Interface
		}
		if o.Network.Connected {
			network += ", connected"
		} else {
			network += ", not connected"
		}
	}

	return fmt.Sprintf(
		"Status: %s\n"+
			"Broadcast: %s\n"+
			"Network: %s\n"+
			"Wifi: %s\n"+
			"Mobile: %s\n"+
			"Mobile 2G/3G/4G: %s/%s/%s\n"+
			"Version: %s\n",
		o.Status,
		strings.Join(o.Broadcast, ", "),
		network,
		yesNo(o.Predicates.WifiConnected),
		yesNo(o.Predicates.MobileConnected),
		yesNo(o.Predicates.Mobile2G),
		yesNo(o.Predicates.Mobile3G),
		yesNo(o.Predicates.Mobile4G),
		o.Version,
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
