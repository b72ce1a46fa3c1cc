package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/netstatus/util"
)

// Watch calls onChange with the re-read config every time the file at configPath is written
// or replaced. The directory is watched, not the file, because WriteOutConfig replaces the
// file by rename. A config that fails to read or validate is logged and skipped. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, configPath string, onChange func(*Config)) error {
	configPath = filepath.Clean(configPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warnf("failed to close config watcher: %v", err)
		}
	}()

	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("config watcher closed unexpectedly")
			}
			if filepath.Clean(event.Name) != configPath || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
				continue
			}
			if !util.FileExists(configPath) {
				continue
			}

			cfg, err := ReadConfig(configPath)
			if err != nil {
				log.Warnf("ignoring config change in %s: %v", configPath, err)
				continue
			}
			log.Infof("config %s reloaded", configPath)
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("config watcher closed unexpectedly")
			}
			log.Warnf("config watcher error: %v", err)
		}
	}
}
