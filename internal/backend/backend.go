// internal/backend/backend.go
package backend

import (
	"fmt"
	"log/slog"

	"github.com/tamzrod/pad-replicator/internal/backend/evdev"
	"github.com/tamzrod/pad-replicator/internal/backend/synth"
	"github.com/tamzrod/pad-replicator/internal/config"
	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Backend is one pad driver. Exactly one driver is selected at startup;
// drivers are never mixed at runtime.
type Backend interface {
	// Init acquires the device. Failure here is the only fatal error a
	// driver can produce; a pad that is merely unplugged is not a failure.
	Init() error

	// Poll returns the current state without blocking. An absent or dead
	// device is in-band data: Connected false, everything else neutral.
	Poll() pad.Snapshot

	// Shutdown releases the device. Called exactly once, after the last Poll.
	Shutdown()
}

// Open selects a driver by configured name.
func Open(bc config.BackendConfig, log *slog.Logger) (Backend, error) {
	switch bc.Driver {
	case config.DriverEvdev:
		return evdev.New(evdev.Config{Device: bc.Device, Index: bc.Index}, log), nil
	case config.DriverSynth:
		return synth.New(), nil
	default:
		return nil, fmt.Errorf("backend: unknown driver %q", bc.Driver)
	}
}
