// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run drives the fixed tick until ctx is canceled.
// One goroutine. No overlap. No catch-up after a missed tick.
// The source is shut down exactly once, on the way out.
func (p *Poller) Run(ctx context.Context) {
	defer p.src.Shutdown()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce()
		}
	}
}
