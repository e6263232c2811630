// cmd/replicator/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tamzrod/pad-replicator/internal/backend"
	"github.com/tamzrod/pad-replicator/internal/bridge"
	brmodbus "github.com/tamzrod/pad-replicator/internal/bridge/modbus"
	"github.com/tamzrod/pad-replicator/internal/bus"
	"github.com/tamzrod/pad-replicator/internal/config"
	"github.com/tamzrod/pad-replicator/internal/poller"
	"github.com/tamzrod/pad-replicator/internal/render"
	"github.com/tamzrod/pad-replicator/internal/server"
)

// writeTimeout guards sends to a consumer that stopped reading.
const writeTimeout = 5 * time.Second

// shutdownGrace bounds how long runners may take to wind down.
const shutdownGrace = 2 * time.Second

func main() {
	var (
		cfgPath  = pflag.String("config", "", "path to YAML config")
		socket   = pflag.String("socket", "", "serve only this unix socket, overriding configured channels")
		driver   = pflag.String("backend", "", "input backend: evdev or synth")
		device   = pflag.String("device", "", "explicit evdev device path")
		index    = pflag.Int("index", 0, "Nth detected pad when auto-detecting")
		interval = pflag.Int("interval", 0, "sampling interval in milliseconds")
		noUI     = pflag.Bool("no-ui", false, "run headless, without the dashboard")
		logFile  = pflag.String("log-file", "", "append logs to this file")
		verbose  = pflag.Bool("verbose", false, "log at debug level")
	)
	pflag.Parse()

	// --------------------
	// Load + overlay + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	rc := &cfg.Replicator
	if *driver != "" {
		rc.Backend.Driver = *driver
	}
	if *device != "" {
		rc.Backend.Device = *device
	}
	if pflag.CommandLine.Changed("index") {
		rc.Backend.Index = *index
	}
	if *interval > 0 {
		rc.Poll.IntervalMs = *interval
	}
	if *socket != "" {
		rc.Channels = []config.ChannelConfig{{Type: config.ChannelUnix, Path: *socket}}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Logger
	// --------------------

	uiActive := !*noUI
	logger, closeLog, err := buildLogger(*logFile, uiActive, *verbose)
	if err != nil {
		log.Fatalf("log file failed: %v", err)
	}
	defer closeLog()

	// --------------------
	// Input backend
	// --------------------

	src, err := backend.Open(rc.Backend, logger)
	if err != nil {
		log.Fatalf("backend open failed: %v", err)
	}
	if err := src.Init(); err != nil {
		log.Fatalf("backend init failed: %v", err)
	}

	// --------------------
	// Bus + dashboard + poll loop
	// --------------------

	b := bus.New()

	var ui *render.UI
	var renderer poller.Renderer
	if uiActive {
		ui = render.New(logger)
		renderer = ui
	}

	p, err := poller.Build(rc.Poll, src, b, renderer)
	if err != nil {
		log.Fatalf("poller build failed: %v", err)
	}

	// --------------------
	// Output channels
	// --------------------

	backoff := time.Duration(rc.Retry.BackoffMs) * time.Millisecond

	var runners []func(context.Context)
	for _, ch := range rc.Channels {
		run, err := buildChannel(ch, b, backoff, logger)
		if err != nil {
			log.Fatalf("channel build failed (type=%s): %v", ch.Type, err)
		}
		runners = append(runners, run)
	}

	// --------------------
	// Run until signalled
	// --------------------

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx)
	}()
	for _, run := range runners {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx)
		}()
	}

	logger.Info("replicator up",
		"backend", rc.Backend.Driver,
		"interval_ms", rc.Poll.IntervalMs,
		"channels", len(rc.Channels),
	)

	// Operator quitting the dashboard stops the whole process.
	if ui != nil {
		ui.Start(cancel)
	}

	<-ctx.Done()

	if ui != nil {
		ui.Stop()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info("replicator down")
	case <-time.After(shutdownGrace):
		logger.Warn("shutdown grace expired")
		os.Exit(1)
	}
}

// buildChannel wires one configured output channel to the bus and
// returns its runner.
func buildChannel(ch config.ChannelConfig, b *bus.Bus, backoff time.Duration, logger *slog.Logger) (func(context.Context), error) {
	switch ch.Type {

	case config.ChannelUnix:
		srv, err := server.New(
			func() (server.Endpoint, error) { return server.OpenSocket("unix", ch.Path) },
			b,
			server.Config{Backoff: backoff, WriteTimeout: writeTimeout},
			logger.With("channel", "unix", "path", ch.Path),
		)
		if err != nil {
			return nil, err
		}
		return srv.Run, nil

	case config.ChannelTCP:
		srv, err := server.New(
			func() (server.Endpoint, error) { return server.OpenSocket("tcp", ch.Address) },
			b,
			server.Config{Backoff: backoff, WriteTimeout: writeTimeout},
			logger.With("channel", "tcp", "address", ch.Address),
		)
		if err != nil {
			return nil, err
		}
		return srv.Run, nil

	case config.ChannelSerial:
		srv, err := server.New(
			func() (server.Endpoint, error) { return server.OpenSerial(ch.Device, ch.BaudRate) },
			b,
			server.Config{Backoff: backoff},
			logger.With("channel", "serial", "device", ch.Device),
		)
		if err != nil {
			return nil, err
		}
		return srv.Run, nil

	case config.ChannelModbus:
		br, err := bridge.New(
			func() (bridge.RegisterWriter, error) {
				return brmodbus.NewEndpointClient(brmodbus.Config{
					Endpoint: ch.Endpoint,
					UnitID:   ch.UnitID,
					Timeout:  time.Duration(ch.TimeoutMs) * time.Millisecond,
				})
			},
			b,
			bridge.Config{BaseSlot: ch.BaseSlot, Backoff: backoff},
			logger.With("channel", "modbus", "endpoint", ch.Endpoint),
		)
		if err != nil {
			return nil, err
		}
		return br.Run, nil
	}

	return nil, fmt.Errorf("unknown channel type %q", ch.Type)
}

// buildLogger routes logs away from the terminal while the dashboard
// owns it.
func buildLogger(path string, uiActive, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { f.Close() }
	case uiActive:
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}
