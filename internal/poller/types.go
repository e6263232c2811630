// internal/poller/types.go
package poller

import "github.com/tamzrod/pad-replicator/internal/pad"

// Source abstracts the input driver the loop samples.
// The poller depends on sampling only; drivers live elsewhere.
type Source interface {
	// Poll returns the current state without blocking. An absent device is
	// reported in-band as a disconnected snapshot, never as an error.
	Poll() pad.Snapshot

	// Shutdown releases the device. The runner calls it exactly once.
	Shutdown()
}

// Renderer receives snapshots fire-and-forget. Implementations MUST NOT
// block: a slow display drops frames, it never stalls the tick.
type Renderer interface {
	Observe(pad.Snapshot)
}
