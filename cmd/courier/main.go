package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/courier/internal/config"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/host/termhost"
	"github.com/zeusync/courier/internal/host/wshost"
	"github.com/zeusync/courier/internal/injector"
)

var (
	configPath   = flag.String("config", "", "Config file (.yaml, .yml or .toml)")
	hostMode     = flag.String("host", "", "Host: term|ws (overrides the config)")
	listenAddr   = flag.String("addr", "", "Listen address for the ws host")
	physicsDelay = flag.Duration("physics-delay", -1, "Delay before the physics engine is ready (overrides the config)")
	logFile      = flag.String("log-file", "courier.log", "Log file used by the term host")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "courier:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	if *hostMode != "" {
		cfg.Host.Mode = *hostMode
	}
	if *listenAddr != "" {
		cfg.Host.Addr = *listenAddr
	}
	if *physicsDelay >= 0 {
		cfg.Physics.ReadyAfter = physicsDelay.String()
	}
	// the terminal host owns the screen
	if cfg.Host.Mode == "term" {
		cfg.Log.Outputs = []string{*logFile}
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	delay, err := cfg.ReadyDelay()
	if err != nil {
		return err
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	if l, ok := app.Logger.(*log.Logger); ok {
		defer func() { _ = l.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// the engine becomes ready asynchronously; the agent stays kinematic until then
	g.Go(func() error {
		select {
		case <-time.After(delay):
			app.Engine.Readiness().Resolve()
			app.Logger.Info("physics engine ready", log.Duration("after", delay))
		case <-ctx.Done():
		}
		return nil
	})

	switch cfg.Host.Mode {
	case "ws":
		h, err := wshost.New(app.Session, cfg.TickInterval(), app.Logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return h.Run(ctx) })
		g.Go(func() error { return h.ListenAndServe(ctx, cfg.Host.Addr) })
	default:
		screen, err := termhost.OpenScreen()
		if err != nil {
			return err
		}
		var chime termhost.Chime
		if tone, err := termhost.NewTone(880, 120*time.Millisecond); err != nil {
			app.Logger.Warn("audio unavailable", log.Error(err))
		} else {
			defer tone.Close()
			chime = tone
		}
		h, err := termhost.New(app.Session, screen, chime, termhost.Options{Interval: cfg.TickInterval()}, app.Logger)
		if err != nil {
			screen.Fini()
			return err
		}
		g.Go(func() error {
			if err := h.Run(ctx); !errors.Is(err, termhost.ErrQuit) {
				return err
			}
			stop()
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return err
	}
	app.Logger.Info("courier stopped", log.Uint64("score", app.Session.Score()))
	return nil
}
