// internal/bridge/bridge.go
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
	"github.com/tamzrod/pad-replicator/internal/pad"
)

// RegisterWriter is the delivery-only contract for the register block.
// It receives an encoded block and writes it verbatim.
// No logic, no state, no interpretation.
type RegisterWriter interface {
	WriteRegisters(addr uint16, regs []uint16) error
	Close() error
}

type Config struct {
	BaseSlot uint16        // block index; register address is BaseSlot*SlotsPerPad
	Backoff  time.Duration // pause before reconnecting after a failure
}

// Bridge mirrors the latest pad snapshot into a register block on a
// remote endpoint. Snapshots missed while the endpoint was down are
// skipped, never replayed.
type Bridge struct {
	open func() (RegisterWriter, error)
	bus  *bus.Bus
	cfg  Config
	log  *slog.Logger

	counter uint16
}

func New(open func() (RegisterWriter, error), b *bus.Bus, cfg Config, log *slog.Logger) (*Bridge, error) {
	if open == nil {
		return nil, errors.New("bridge: endpoint factory required")
	}
	if b == nil {
		return nil, errors.New("bridge: bus required")
	}
	if cfg.Backoff <= 0 {
		return nil, errors.New("bridge: backoff must be positive")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{open: open, bus: b, cfg: cfg, log: log}, nil
}

// Run drives the connect, deliver, reconnect cycle until the context
// ends. Endpoint failures are survived with a backoff pause.
func (b *Bridge) Run(ctx context.Context) {
	for ctx.Err() == nil {
		w, err := b.open()
		if err != nil {
			b.log.Warn("bridge endpoint unavailable", "error", err)
			if !sleep(ctx, b.cfg.Backoff) {
				return
			}
			continue
		}

		b.log.Info("bridge attached", "base_slot", b.cfg.BaseSlot)
		err = b.deliver(ctx, w)
		w.Close()

		if err != nil && ctx.Err() == nil {
			b.log.Warn("bridge detached", "error", err)
			if !sleep(ctx, b.cfg.Backoff) {
				return
			}
		}
	}
}

// deliver pushes register blocks until the context ends or a write
// fails. The current state is asserted immediately on attach; after
// that only fresh snapshots are written.
func (b *Bridge) deliver(ctx context.Context, w RegisterWriter) error {
	addr := b.cfg.BaseSlot * SlotsPerPad

	snap, seq := b.bus.Latest()
	if seq > 0 {
		if err := b.write(w, addr, snap); err != nil {
			return err
		}
	}

	for {
		next, nextSeq, err := b.bus.Next(ctx, seq)
		if err != nil {
			return err
		}
		seq = nextSeq
		if err := b.write(w, addr, next); err != nil {
			return err
		}
	}
}

func (b *Bridge) write(w RegisterWriter, addr uint16, s pad.Snapshot) error {
	b.counter++
	return w.WriteRegisters(addr, Encode(s, b.counter))
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
