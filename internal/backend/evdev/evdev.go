// internal/backend/evdev/evdev.go
package evdev

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	ev "github.com/holoplot/go-evdev"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Config selects the device.
type Config struct {
	Device string // explicit /dev/input/eventN; empty = auto-detect
	Index  int    // Nth detected pad when auto-detecting
}

// redetectInterval throttles reopen attempts while no pad is live.
const redetectInterval = time.Second

// Backend reads a gamepad through the kernel evdev interface.
//
// A pump goroutine folds device events into the current state; Poll copies
// that state without blocking, which keeps the sample rate decoupled from
// the kernel event rate. When the device dies the state collapses to the
// neutral disconnected snapshot and Poll probes for the pad coming back.
type Backend struct {
	cfg Config
	log *slog.Logger

	mu        sync.Mutex
	dev       *ev.InputDevice
	abs       map[ev.EvCode]ev.AbsInfo
	cur       pad.Snapshot
	closed    bool
	nextProbe time.Time
	pumpDone  chan struct{}
}

func New(cfg Config, log *slog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// Init acquires the configured device. An explicit device path must open.
// When auto-detecting, a missing pad is not fatal: the backend starts
// disconnected and keeps probing until one appears.
func (b *Backend) Init() error {
	if b.cfg.Device != "" {
		dev, err := ev.Open(b.cfg.Device)
		if err != nil {
			return fmt.Errorf("evdev: open %s: %w", b.cfg.Device, err)
		}
		b.adopt(dev)
		return nil
	}

	if dev := b.detect(); dev != nil {
		b.adopt(dev)
		return nil
	}

	b.log.Info("no pad present, waiting for one to appear")
	b.mu.Lock()
	b.nextProbe = time.Now().Add(redetectInterval)
	b.mu.Unlock()
	return nil
}

// Poll returns the current state. While no device is live it also drives
// the throttled re-probe so a re-plugged pad comes back without a restart.
func (b *Backend) Poll() pad.Snapshot {
	b.mu.Lock()
	if b.dev == nil && !b.closed && time.Now().After(b.nextProbe) {
		b.nextProbe = time.Now().Add(redetectInterval)
		b.mu.Unlock()
		b.reattach()
		b.mu.Lock()
	}
	s := b.cur
	b.mu.Unlock()
	return s
}

// Shutdown closes the device and waits for the pump to drain out.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	b.closed = true
	dev := b.dev
	b.dev = nil
	done := b.pumpDone
	b.mu.Unlock()

	if dev != nil {
		dev.Close()
	}
	if done != nil {
		<-done
	}
}

// detect scans the input devices for the Index-th gamepad. A device counts
// as a gamepad when it reports the BTN_SOUTH key capability.
func (b *Backend) detect() *ev.InputDevice {
	paths, err := ev.ListDevicePaths()
	if err != nil {
		b.log.Warn("input device scan failed", "err", err)
		return nil
	}

	n := 0
	for _, p := range paths {
		dev, err := ev.Open(p.Path)
		if err != nil {
			continue // unreadable or already gone
		}
		if !isPad(dev) {
			dev.Close()
			continue
		}
		if n == b.cfg.Index {
			b.log.Info("pad detected", "path", p.Path, "name", p.Name)
			return dev
		}
		n++
		dev.Close()
	}
	return nil
}

func isPad(dev *ev.InputDevice) bool {
	for _, c := range dev.CapableEvents(ev.EV_KEY) {
		if c == ev.BTN_SOUTH {
			return true
		}
	}
	return false
}

// reattach tries one reopen. Explicit device configs reopen the same path;
// auto-detection re-runs the scan.
func (b *Backend) reattach() {
	var dev *ev.InputDevice
	if b.cfg.Device != "" {
		d, err := ev.Open(b.cfg.Device)
		if err != nil {
			return
		}
		dev = d
	} else {
		dev = b.detect()
	}
	if dev == nil {
		return
	}

	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		dev.Close()
		return
	}
	b.adopt(dev)
}

// adopt installs dev as the live device and starts its pump. The state
// begins connected and neutral; real positions arrive with the events.
func (b *Backend) adopt(dev *ev.InputDevice) {
	abs, err := dev.AbsInfos()
	if err != nil {
		b.log.Warn("abs ranges unavailable, using defaults", "err", err)
		abs = nil
	}

	done := make(chan struct{})

	b.mu.Lock()
	b.dev = dev
	b.abs = abs
	b.cur = pad.Neutral()
	b.cur.Connected = true
	b.pumpDone = done
	b.mu.Unlock()

	go b.pump(dev, done)
}

// pump blocks on the device and folds every event into the current state.
// It exits when the device dies or is closed under it.
func (b *Backend) pump(dev *ev.InputDevice, done chan struct{}) {
	defer close(done)

	for {
		e, err := dev.ReadOne()
		if err != nil {
			b.mu.Lock()
			mine := b.dev == dev
			if mine {
				b.dev = nil
				b.cur = pad.Neutral()
				b.nextProbe = time.Now().Add(redetectInterval)
			}
			b.mu.Unlock()
			if mine {
				dev.Close()
				b.log.Warn("pad went away", "err", err)
			}
			return
		}

		b.mu.Lock()
		if b.dev == dev {
			applyEvent(&b.cur, b.abs, e.Type, e.Code, e.Value)
		}
		b.mu.Unlock()
	}
}
