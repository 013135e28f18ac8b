// cmd/wififailover/run.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/wififailover/internal/api"
	"github.com/tamzrod/wififailover/internal/commands"
	"github.com/tamzrod/wififailover/internal/config"
	"github.com/tamzrod/wififailover/internal/controller"
	"github.com/tamzrod/wififailover/internal/failover"
	"github.com/tamzrod/wififailover/internal/logger"
	"github.com/tamzrod/wififailover/internal/poller"
	"github.com/tamzrod/wififailover/internal/publisher"
	"github.com/tamzrod/wififailover/internal/registry"
	"github.com/tamzrod/wififailover/internal/store"
	"github.com/tamzrod/wififailover/internal/telemetry"
	"github.com/tamzrod/wififailover/internal/vault"
)

func newRunCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the failover daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cfgPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml (defaults apply when empty)")
	return cmd
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func runDaemon(cfgPath string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	log := logger.WithComponent("main")

	// --------------------
	// Build components
	// --------------------

	storeLog := logger.WithComponent("store")
	st, err := store.Open(store.Config{
		Path:     cfg.Store.Path,
		InMemory: cfg.Store.InMemory,
		Logger:   &storeLog,
	})
	if err != nil {
		return fmt.Errorf("store open failed: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("store close failed")
		}
	}()

	reg := registry.New(st, logger.WithComponent("registry"))
	vlt := vault.NewKeyring(cfg.Vault.Service)

	ad, err := poller.BuildAdapter(cfg.Adapter)
	if err != nil {
		return fmt.Errorf("adapter build failed: %w", err)
	}

	p, err := poller.Build(cfg.Adapter, ad, reg)
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}

	promReg := telemetry.NewRegistry()
	metrics := telemetry.NewMetrics(promReg)

	exec := failover.NewExecutor(vlt, ad, ms(*cfg.Failover.CooldownMs), logger.WithComponent("failover"))

	hub := publisher.NewHub()
	pub := publisher.Multi(hub, publisher.LogPublisher{Log: logger.WithComponent("events")})

	loop, err := controller.New(controller.Config{
		Interval:       ms(cfg.Failover.IntervalMs),
		Threshold:      *cfg.Failover.ThresholdDBm,
		ConnectTimeout: ms(cfg.Adapter.ConnectTimeoutMs),
	}, controller.Deps{
		Sampler:   p,
		Executor:  exec,
		Publisher: pub,
		State:     publisher.NewStateWriter(pub),
		Metrics:   metrics,
		Log:       logger.WithComponent("loop"),
	})
	if err != nil {
		return fmt.Errorf("control loop build failed: %w", err)
	}

	svc := commands.NewService(ad, reg, vlt, logger.WithComponent("commands"))

	srv := api.NewServer(cfg.API.Listen, api.Deps{
		Commands: svc,
		Loop:     loop,
		Events:   hub,
		Gatherer: promReg,
		Log:      logger.WithComponent("api"),
	})

	// --------------------
	// Supervise until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		st.RunGC(gctx, ms(cfg.Store.GCIntervalMs), storeLog)
		return nil
	})

	log.Info().
		Str("driver", cfg.Adapter.Driver).
		Str("interface", cfg.Adapter.Interface).
		Str("listen", cfg.API.Listen).
		Msg("wififailover started")

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("wififailover stopped")
	return nil
}
