package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netbirdio/netstatus/client/internal/config"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
	"github.com/netbirdio/netstatus/util"
)

const (
	configFlag       = "config"
	logLevelFlag     = "log-level"
	logFileFlag      = "log-file"
	metricsPortFlag  = "metrics-port"
	pollIntervalFlag = "poll-interval"
)

var (
	configPath   string
	logLevel     string
	logFile      string
	metricsPort  int
	pollInterval time.Duration
	rootCmd      = &cobra.Command{
		Use:          "netstatus",
		Short:        "Classify and watch the host's network connectivity",
		Long:         "",
		SilenceUsage: true,
	}

	// newHost is swapped in tests
	newHost = networkmonitor.NewHost
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, configFlag, "c", config.DefaultConfigPath, "Netstatus config file location")
	rootCmd.PersistentFlags().StringVarP(&logLevel, logLevelFlag, "l", config.DefaultLogLevel, "sets Netstatus log level")
	rootCmd.PersistentFlags().StringVar(&logFile, logFileFlag, util.LogConsole, "sets Netstatus log path. If console is specified the log will be output to stderr")
	rootCmd.PersistentFlags().IntVar(&metricsPort, metricsPortFlag, 0, "serves Prometheus metrics on this port while watching, 0 disables it")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, pollIntervalFlag, networkmonitor.DefaultPollInterval, "interval between reads on hosts without network change events")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// SetupCloseHandler handles SIGTERM signal and exits with success
func SetupCloseHandler(ctx context.Context, cancel context.CancelFunc) {
	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(termCh)
		select {
		case <-ctx.Done():
		case <-termCh:
			log.Info("shutdown signal received")
		}
		cancel()
	}()
}

// loadConfig reads the config file, applies the flags the user set explicitly and initializes
// logging from the result
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	util.SetFlagsFromEnvVars(rootCmd)

	flags := cmd.Flags()
	input := config.ConfigInput{ConfigPath: configPath}
	if flags.Changed(logLevelFlag) {
		input.LogLevel = logLevel
	}
	if flags.Changed(logFileFlag) {
		input.LogFile = logFile
	}
	if flags.Changed(metricsPortFlag) {
		input.MetricsPort = &metricsPort
	}
	if flags.Changed(pollIntervalFlag) {
		input.PollInterval = &pollInterval
	}

	cfg, err := config.Load(input)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	if err := util.InitLog(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed initializing log %v", err)
	}
	return cfg, nil
}
