// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
}

// Poller is a dumb, clock-driven sampler. It owns no protocol and no
// delivery: it reads the source at a fixed rate and hands the result to the
// display and the bus.
type Poller struct {
	cfg      Config
	src      Source
	bus      *bus.Bus
	renderer Renderer // optional
}

// New creates a poller with immutable config.
// renderer may be nil for headless operation.
func New(cfg Config, src Source, b *bus.Bus, renderer Renderer) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: source required")
	}
	if b == nil {
		return nil, errors.New("poller: bus required")
	}
	return &Poller{cfg: cfg, src: src, bus: b, renderer: renderer}, nil
}

// PollOnce performs exactly one sample cycle: read, display, publish.
// The renderer sees the snapshot before the bus so the operator view never
// lags the wire.
func (p *Poller) PollOnce() pad.Snapshot {
	s := p.src.Poll()

	if p.renderer != nil {
		p.renderer.Observe(s)
	}
	p.bus.Publish(s)

	return s
}
