package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.PersistentFlags().String("log-level", "info", "")
	cmd.PersistentFlags().Duration("poll-interval", 0, "")
	return cmd
}

func TestSetFlagsFromEnvVars(t *testing.T) {
	t.Setenv("NS_LOG_LEVEL", "debug")
	t.Setenv("NS_POLL_INTERVAL", "3s")

	cmd := newFlagsCmd()
	SetFlagsFromEnvVars(cmd)

	level, err := cmd.PersistentFlags().GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "debug", level)

	interval, err := cmd.PersistentFlags().GetDuration("poll-interval")
	require.NoError(t, err)
	assert.Equal(t, "3s", interval.String())
}

func TestSetFlagsFromEnvVars_CredentialsWin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LOG_LEVEL"), []byte("trace\n"), 0600))
	t.Setenv("CREDENTIALS_DIRECTORY", dir)
	t.Setenv("NS_LOG_LEVEL", "debug")

	cmd := newFlagsCmd()
	SetFlagsFromEnvVars(cmd)

	level, err := cmd.PersistentFlags().GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "trace", level)
}

func TestSetFlagsFromEnvVars_InvalidValueKeepsDefault(t *testing.T) {
	t.Setenv("NS_POLL_INTERVAL", "often")

	cmd := newFlagsCmd()
	SetFlagsFromEnvVars(cmd)

	interval, err := cmd.PersistentFlags().GetDuration("poll-interval")
	require.NoError(t, err)
	assert.Zero(t, interval)
}

func TestFlagNameToUpper(t *testing.T) {
	assert.Equal(t, "METRICS_PORT", flagNameToUpper("metrics-port"))
	assert.Equal(t, "CONFIG", flagNameToUpper("config"))
}
