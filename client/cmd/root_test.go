package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
	"github.com/netbirdio/netstatus/version"
)

func TestInitCommands(t *testing.T) {
	helpFlag := "-h"
	commandArgs := [][]string{{"root", helpFlag}}
	for _, command := range rootCmd.Commands() {
		commandArgs = append(commandArgs, []string{command.Name(), command.Name(), helpFlag})
	}

	t.Cleanup(resetFlags)
	for _, args := range commandArgs {
		t.Run(fmt.Sprintf("Testing Command %s", args[0]), func(t *testing.T) {
			defer func() {
				err := recover()
				if err != nil {
					t.Fatalf("got an panic error while running the command: %s -h. Error: %s", args[0], err)
				}
			}()

			rootCmd.SetArgs(args[1:])
			rootCmd.SetOut(io.Discard)
			if err := rootCmd.Execute(); err != nil {
				t.Errorf("expected no error while running %s command, got %v", args[0], err)
				return
			}
		})
	}
}

// withHost makes the commands read state instead of the host's network
func withHost(t *testing.T, state connstatus.RawNetworkState, watcher networkmonitor.Watcher) {
	t.Helper()
	old := newHost
	newHost = func(time.Duration) (networkmonitor.Provider, networkmonitor.Watcher, []networkmonitor.Option) {
		provider := networkmonitor.ProviderFunc(func() (connstatus.RawNetworkState, error) {
			return state, nil
		})
		return provider, watcher, nil
	}
	t.Cleanup(func() {
		newHost = old
	})
}

// resetFlags restores every flag to its default, cobra keeps parsed values between executions
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
	})

	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.json")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.NetstatusVersion()+"\n", out)
}
