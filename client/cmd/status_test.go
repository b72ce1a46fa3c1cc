package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
	nsStatus "github.com/netbirdio/netstatus/client/status"
)

var lteState = connstatus.RawNetworkState{
	HasActive: true,
	Connected: true,
	Transport: connstatus.TransportMobile,
	Subtype:   connstatus.SubtypeLTE,
	Interface: "wwan0",
}

func TestStatusCommand(t *testing.T) {
	withHost(t, lteState, nil)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: MOBILE_4G\n")
	assert.Contains(t, out, "Network: mobile (LTE) on wwan0, connected\n")
}

func TestStatusCommand_JSON(t *testing.T) {
	withHost(t, connstatus.RawNetworkState{HasActive: true, Connected: true, Transport: connstatus.TransportWifi}, nil)

	out, err := execute(t, "status", "--json")
	require.NoError(t, err)

	var overview nsStatus.OutputOverview
	require.NoError(t, json.Unmarshal([]byte(out), &overview))
	assert.Equal(t, "WIFI", overview.Status)
	assert.True(t, overview.Predicates.WifiConnected)
}

func TestStatusCommand_YAML(t *testing.T) {
	withHost(t, connstatus.NoActiveNetwork, nil)

	out, err := execute(t, "status", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: NO_NETWORK\n")
}

func TestStatusCommand_JSONAndYAMLExclusive(t *testing.T) {
	withHost(t, lteState, nil)

	_, err := execute(t, "status", "--json", "--yaml")
	assert.Error(t, err)
}
