package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/netbirdio/netstatus/client/internal/config"
	"github.com/netbirdio/netstatus/client/internal/connstatus"
	"github.com/netbirdio/netstatus/client/internal/listener"
	"github.com/netbirdio/netstatus/client/internal/metrics"
	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
	sharedMetrics "github.com/netbirdio/netstatus/shared/metrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "prints every connectivity status change until interrupted",
	RunE:  watchFunc,
}

func watchFunc(cmd *cobra.Command, _ []string) error {
	cmd.SetOut(cmd.OutOrStdout())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	SetupCloseHandler(ctx, cancel)

	return runWatch(ctx, cmd, cfg)
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	var statusMetrics metrics.StatusMetrics = metrics.Noop()
	if cfg.MetricsPort != 0 {
		server, err := sharedMetrics.NewServer(cfg.MetricsPort, "")
		if err != nil {
			return fmt.Errorf("create metrics server: %w", err)
		}
		if statusMetrics, err = metrics.NewStatusMetrics(server.Meter); err != nil {
			return fmt.Errorf("create status metrics: %w", err)
		}
		g.Go(func() error {
			return server.Serve(ctx)
		})
	}

	provider, watcher, opts := newHost(cfg.PollInterval.Duration)
	opts = append(opts, networkmonitor.WithClassifier(classifier), networkmonitor.WithMetrics(statusMetrics))
	nm, err := networkmonitor.New(provider, watcher, opts...)
	if err != nil {
		return err
	}

	printer := listener.NewFunc(func(status connstatus.ConnectStatus) error {
		cmd.Printf("%s %s\n", time.Now().Format(time.RFC3339), status)
		return nil
	})
	if err := nm.AddListener(printer); err != nil {
		return err
	}

	// current status first, watchers only signal on changes
	if err := nm.OnChange(); err != nil {
		log.Warn(err)
	}

	if err := nm.Start(ctx); err != nil {
		return fmt.Errorf("start network monitor: %w", err)
	}
	defer nm.Stop()

	if configPath != "" {
		g.Go(func() error {
			err := config.Watch(ctx, configPath, func(updated *config.Config) {
				c, err := updated.Classifier()
				if err != nil {
					log.Warnf("keeping classifier: %v", err)
					return
				}
				nm.SetClassifier(c)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warnf("config reload disabled: %v", err)
			}
			return nil
		})
	}

	<-ctx.Done()
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}
