package config

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	nberrors "github.com/netbirdio/netstatus/client/errors"
	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
	"github.com/netbirdio/netstatus/util"
)

const (
	// DefaultConfigPath is used when no --config flag is given
	DefaultConfigPath = "/etc/netstatus/config.json"
	DefaultLogLevel   = "info"
	maxMetricsPort    = 65535
)

// ConfigInput carries configuration changes from flags
type ConfigInput struct {
	ConfigPath       string
	LogLevel         string
	LogFile          string
	PollInterval     *time.Duration
	MetricsPort      *int
	SubtypeOverrides map[string]string
}

// Config Configuration type
type Config struct {
	LogLevel string
	// LogFile is a file path or "console"
	LogFile      string
	PollInterval Duration
	// MetricsPort serves /metrics when not zero
	MetricsPort int
	// SubtypeOverrides maps a mobile subtype, by name (LTE) or TelephonyManager code (13), to
	// one of 2g, 3g, 4g or unknown
	SubtypeOverrides map[string]string
}

// ReadConfig read config file and return with Config. If it is not exists create a new with default values
func ReadConfig(configPath string) (*Config, error) {
	if !util.FileExists(configPath) {
		return UpdateOrCreateConfig(ConfigInput{ConfigPath: configPath})
	}

	cfg := &Config{}
	if _, err := util.ReadJson(configPath, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.apply(ConfigInput{}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateOrCreateConfig reads existing config or generates a new one, then writes back the
// changes from input
func UpdateOrCreateConfig(input ConfigInput) (*Config, error) {
	if !util.FileExists(input.ConfigPath) {
		log.Infof("generating new config %s", input.ConfigPath)
		cfg := &Config{}
		if _, err := cfg.apply(input); err != nil {
			return nil, err
		}
		return cfg, WriteOutConfig(input.ConfigPath, cfg)
	}

	cfg := &Config{}
	if _, err := util.ReadJson(input.ConfigPath, cfg); err != nil {
		return nil, err
	}

	updated, err := cfg.apply(input)
	if err != nil {
		return nil, err
	}
	if updated {
		if err := WriteOutConfig(input.ConfigPath, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// CreateInMemoryConfig generate a new config but do not write out it to the store
func CreateInMemoryConfig(input ConfigInput) (*Config, error) {
	cfg := &Config{}
	if _, err := cfg.apply(input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file when present and applies input on top of it without writing
// the result back. Commands that only read use it so they work without write access.
func Load(input ConfigInput) (*Config, error) {
	cfg := &Config{}
	if util.FileExists(input.ConfigPath) {
		if _, err := util.ReadJson(input.ConfigPath, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := cfg.apply(input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteOutConfig write put the prepared config to the given path
func WriteOutConfig(path string, config *Config) error {
	return util.WriteJson(context.Background(), path, config)
}

func (config *Config) apply(input ConfigInput) (updated bool, err error) {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
		updated = true
	}
	if input.LogLevel != "" && input.LogLevel != config.LogLevel {
		log.Infof("new log level provided, updated to %s (old value %s)", input.LogLevel, config.LogLevel)
		config.LogLevel = input.LogLevel
		updated = true
	}

	if config.LogFile == "" {
		config.LogFile = util.LogConsole
		updated = true
	}
	if input.LogFile != "" && input.LogFile != config.LogFile {
		log.Infof("new log file provided, updated to %s (old value %s)", input.LogFile, config.LogFile)
		config.LogFile = input.LogFile
		updated = true
	}

	if config.PollInterval.Duration <= 0 {
		config.PollInterval.Duration = networkmonitor.DefaultPollInterval
		updated = true
	}
	if input.PollInterval != nil && *input.PollInterval > 0 && *input.PollInterval != config.PollInterval.Duration {
		log.Infof("new poll interval provided, updated to %s (old value %s)", *input.PollInterval, config.PollInterval)
		config.PollInterval.Duration = *input.PollInterval
		updated = true
	}

	if input.MetricsPort != nil && *input.MetricsPort != config.MetricsPort {
		log.Infof("new metrics port provided, updated to %d (old value %d)", *input.MetricsPort, config.MetricsPort)
		config.MetricsPort = *input.MetricsPort
		updated = true
	}
	if config.MetricsPort < 0 || config.MetricsPort > maxMetricsPort {
		return false, fmt.Errorf("invalid metrics port %d", config.MetricsPort)
	}

	if len(input.SubtypeOverrides) > 0 {
		if config.SubtypeOverrides == nil {
			config.SubtypeOverrides = make(map[string]string, len(input.SubtypeOverrides))
		}
		for subtype, gen := range input.SubtypeOverrides {
			if config.SubtypeOverrides[subtype] != gen {
				config.SubtypeOverrides[subtype] = gen
				updated = true
			}
		}
	}

	if _, err := config.Classifier(); err != nil {
		return false, err
	}

	return updated, nil
}

// Classifier builds a classifier from the default generation table and SubtypeOverrides
func (config *Config) Classifier() (*connstatus.Classifier, error) {
	if len(config.SubtypeOverrides) == 0 {
		return connstatus.DefaultClassifier, nil
	}

	var merr *multierror.Error
	overrides := make(map[connstatus.Subtype]connstatus.Generation, len(config.SubtypeOverrides))
	for name, genName := range config.SubtypeOverrides {
		subtype, err := connstatus.ParseSubtype(name)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		gen, err := connstatus.ParseGeneration(genName)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("subtype %s: %w", name, err))
			continue
		}
		overrides[subtype] = gen
	}

	if err := nberrors.FormatErrorOrNil(merr); err != nil {
		return nil, fmt.Errorf("invalid subtype overrides: %w", err)
	}
	return connstatus.NewClassifier(overrides), nil
}

