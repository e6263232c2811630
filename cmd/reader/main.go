// cmd/reader/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tamzrod/pad-replicator/internal/client"
	"github.com/tamzrod/pad-replicator/internal/config"
	"github.com/tamzrod/pad-replicator/internal/pad"
	"github.com/tamzrod/pad-replicator/internal/render"
)

func main() {
	var (
		transport = pflag.String("transport", "unix", "transport: unix, tcp or serial")
		address   = pflag.String("address", config.DefaultSocketPath, "socket path, host:port or serial device")
		baud      = pflag.Int("baud", config.DefaultBaudRate, "baud rate for the serial transport")
		retryMs   = pflag.Int("retry", 250, "pause between connection attempts in milliseconds")
		timeoutMs = pflag.Int("timeout", 0, "per-attempt dial timeout in milliseconds, 0 means none")
		useUI     = pflag.Bool("ui", false, "render the dashboard instead of printing lines")
		raw       = pflag.Bool("raw", false, "print raw frames without decoding")
		verbose   = pflag.Bool("verbose", false, "log at debug level")
	)
	pflag.Parse()

	// --------------------
	// Logger
	// --------------------

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logOut := io.Writer(os.Stderr)
	if *useUI {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	// --------------------
	// Transport
	// --------------------

	ccfg := client.Config{
		Retry:   time.Duration(*retryMs) * time.Millisecond,
		Timeout: time.Duration(*timeoutMs) * time.Millisecond,
	}
	tr, err := buildTransport(*transport, *address, *baud, ccfg, logger)
	if err != nil {
		log.Fatalf("transport build failed: %v", err)
	}

	// --------------------
	// Run until signalled
	// --------------------

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A signal must unblock a pending ReceiveFrame.
	stop := context.AfterFunc(ctx, func() { tr.Close() })
	defer stop()

	var ui *render.UI
	if *useUI {
		ui = render.New(logger)
		ui.Start(cancel)
	}

	err = consume(ctx, tr, ui, *raw, logger)

	if ui != nil {
		ui.Stop()
	}
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "reader failed: %v\n", err)
		os.Exit(1)
	}
}

// consume connects, streams states, and reconnects when the producer
// goes away. Returns nil once the context ends.
func consume(ctx context.Context, tr client.Transport, ui *render.UI, raw bool, logger *slog.Logger) error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		if err := tr.Connect(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.Info("attached", "address", tr.Addr())

		err := stream(tr, ui, raw, out, logger)
		if ctx.Err() != nil {
			return nil
		}
		logger.Warn("producer went away", "error", err)
	}
}

// stream forwards states until the connection dies.
func stream(tr client.Transport, ui *render.UI, raw bool, out *bufio.Writer, logger *slog.Logger) error {
	for {
		if raw {
			frame, err := tr.ReceiveFrame()
			if err != nil {
				return err
			}
			out.Write(frame)
			out.Flush()
			continue
		}

		s, err := client.NextState(tr, logger)
		if err != nil {
			return err
		}
		if ui != nil {
			ui.Observe(s)
			continue
		}
		fmt.Fprintln(out, formatState(s))
		out.Flush()
	}
}

func buildTransport(kind, address string, baud int, ccfg client.Config, logger *slog.Logger) (client.Transport, error) {
	switch kind {
	case "unix", "tcp":
		return client.NewSocketTransport(kind, address, ccfg, logger)
	case "serial":
		return client.NewSerialTransport(address, baud, ccfg, logger)
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}

// formatState renders one state as a compact log line.
func formatState(s pad.Snapshot) string {
	var b strings.Builder

	if s.Connected {
		b.WriteString("pad=up  ")
	} else {
		b.WriteString("pad=down")
	}
	fmt.Fprintf(&b, " buttons=[%s]", strings.Join(pressedButtons(s.Buttons), " "))
	fmt.Fprintf(&b, " lt=%.2f rt=%.2f", s.Triggers.LT, s.Triggers.RT)
	fmt.Fprintf(&b, " lx=%+.2f ly=%+.2f rx=%+.2f ry=%+.2f",
		s.Sticks.LX, s.Sticks.LY, s.Sticks.RX, s.Sticks.RY)

	return b.String()
}

func pressedButtons(b pad.Buttons) []string {
	var out []string
	add := func(name string, bit pad.Bit) {
		if bit {
			out = append(out, name)
		}
	}
	add("A", b.A)
	add("B", b.B)
	add("X", b.X)
	add("Y", b.Y)
	add("LB", b.LB)
	add("RB", b.RB)
	add("Back", b.Back)
	add("Start", b.Start)
	add("LS", b.LS)
	add("RS", b.RS)
	add("DpadUp", b.DpadUp)
	add("DpadDown", b.DpadDown)
	add("DpadLeft", b.DpadLeft)
	add("DpadRight", b.DpadRight)
	return out
}
