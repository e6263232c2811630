// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
	cfg "github.com/tamzrod/pad-replicator/internal/config"
)

// Build converts file config into a runnable Poller.
// The source is expected to be initialized already (fail fast at startup).
func Build(pc cfg.PollConfig, src Source, b *bus.Bus, renderer Renderer) (*Poller, error) {
	return New(
		Config{
			Interval: time.Duration(pc.IntervalMs) * time.Millisecond,
		},
		src,
		b,
		renderer,
	)
}
