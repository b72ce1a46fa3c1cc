package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
)

func TestReadConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netstatus", "config.json")

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFile)
	assert.Equal(t, networkmonitor.DefaultPollInterval, cfg.PollInterval.Duration)
	assert.Zero(t, cfg.MetricsPort)
	assert.FileExists(t, path)

	read, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, read)
}

func TestUpdateOrCreateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := ReadConfig(path)
	require.NoError(t, err)

	interval := 3 * time.Second
	port := 9090
	cfg, err := UpdateOrCreateConfig(ConfigInput{
		ConfigPath:       path,
		LogLevel:         "debug",
		PollInterval:     &interval,
		MetricsPort:      &port,
		SubtypeOverrides: map[string]string{"NR": "4g"},
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, interval, cfg.PollInterval.Duration)
	assert.Equal(t, 9090, cfg.MetricsPort)

	read, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, read)
}

func TestUpdateOrCreateConfig_InvalidInput(t *testing.T) {
	port := 70000
	testCases := []struct {
		name  string
		input ConfigInput
	}{
		{
			name:  "metrics port out of range",
			input: ConfigInput{MetricsPort: &port},
		},
		{
			name:  "unknown subtype",
			input: ConfigInput{SubtypeOverrides: map[string]string{"WIMAX": "4g"}},
		},
		{
			name:  "unknown generation",
			input: ConfigInput{SubtypeOverrides: map[string]string{"LTE": "5g"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.ConfigPath = filepath.Join(t.TempDir(), "config.json")
			_, err := UpdateOrCreateConfig(tc.input)
			assert.Error(t, err)
			assert.NoFileExists(t, tc.input.ConfigPath)
		})
	}
}

func TestReadConfig_DurationFormats(t *testing.T) {
	testCases := []struct {
		raw      string
		expected time.Duration
	}{
		{raw: `{"PollInterval": "1m30s"}`, expected: 90 * time.Second},
		{raw: `{"PollInterval": 2000000000}`, expected: 2 * time.Second},
		{raw: `{"PollInterval": "0s"}`, expected: networkmonitor.DefaultPollInterval},
	}

	for _, tc := range testCases {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(tc.raw), 0600))

		cfg, err := ReadConfig(path)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.expected, cfg.PollInterval.Duration, tc.raw)
	}
}

func TestReadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"PollInterval": true}`), 0600))

	_, err := ReadConfig(path)
	assert.Error(t, err)
}

func TestClassifier(t *testing.T) {
	cfg, err := CreateInMemoryConfig(ConfigInput{})
	require.NoError(t, err)

	classifier, err := cfg.Classifier()
	require.NoError(t, err)
	assert.Same(t, connstatus.DefaultClassifier, classifier)

	cfg, err = CreateInMemoryConfig(ConfigInput{SubtypeOverrides: map[string]string{
		"20":    "4g",
		"lte":   "unknown",
		"IWLAN": "3g",
	}})
	require.NoError(t, err)

	classifier, err = cfg.Classifier()
	require.NoError(t, err)
	assert.Equal(t, connstatus.Gen4G, classifier.Generation(connstatus.SubtypeNR))
	assert.Equal(t, connstatus.GenUnknown, classifier.Generation(connstatus.SubtypeLTE))
	assert.Equal(t, connstatus.Gen3G, classifier.Generation(connstatus.SubtypeIWLAN))
	assert.Equal(t, connstatus.Gen2G, classifier.Generation(connstatus.SubtypeGPRS))
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := ReadConfig(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) { changes <- cfg })
	}()

	// the watcher may not be registered yet, so keep rewriting until a change arrives
	port := 9100
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var got *Config
	for got == nil {
		select {
		case got = <-changes:
		case <-ticker.C:
			_, err := UpdateOrCreateConfig(ConfigInput{ConfigPath: path, MetricsPort: &port})
			require.NoError(t, err)
			port++
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
	assert.GreaterOrEqual(t, got.MetricsPort, 9100)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestLoad_DoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	port := 9200
	cfg, err := Load(ConfigInput{ConfigPath: path, MetricsPort: &port, LogLevel: "trace"})
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.MetricsPort)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.NoFileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte(`{"LogLevel": "warn", "MetricsPort": 9300}`), 0600))
	cfg, err = Load(ConfigInput{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9300, cfg.MetricsPort)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"LogLevel": "warn", "MetricsPort": 9300}`, string(data))
}
