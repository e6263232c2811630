// internal/config/validate.go
package config

import (
	"fmt"
)

// maxBaseSlot keeps a 10-register pad block inside the 16-bit register
// address space.
const maxBaseSlot = 65535/10 - 1

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	r := &cfg.Replicator

	// ------------------------------------------------------------
	// BACKEND
	// ------------------------------------------------------------

	switch r.Backend.Driver {
	case "", DriverEvdev, DriverSynth:
	default:
		return fmt.Errorf("config: unknown backend driver %q", r.Backend.Driver)
	}

	if r.Backend.Index < 0 {
		return fmt.Errorf("config: backend index must be >= 0, got %d", r.Backend.Index)
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if r.Poll.IntervalMs < 0 {
		return fmt.Errorf("config: poll interval_ms must be >= 0, got %d", r.Poll.IntervalMs)
	}
	if r.Retry.BackoffMs < 0 {
		return fmt.Errorf("config: retry backoff_ms must be >= 0, got %d", r.Retry.BackoffMs)
	}

	// ------------------------------------------------------------
	// CHANNEL ENDPOINT IDENTITY
	// ------------------------------------------------------------

	// key = type | endpoint identity
	owner := make(map[string]int)

	for i, ch := range r.Channels {
		var key string

		switch ch.Type {
		case ChannelUnix:
			if ch.Path == "" {
				return fmt.Errorf("config: channel %d: unix channel requires path", i)
			}
			key = "unix|" + ch.Path

		case ChannelTCP:
			if ch.Address == "" {
				return fmt.Errorf("config: channel %d: tcp channel requires address", i)
			}
			key = "tcp|" + ch.Address

		case ChannelSerial:
			if ch.Device == "" {
				return fmt.Errorf("config: channel %d: serial channel requires device", i)
			}
			if ch.BaudRate < 0 {
				return fmt.Errorf("config: channel %d: baud_rate must be >= 0, got %d", i, ch.BaudRate)
			}
			key = "serial|" + ch.Device

		case ChannelModbus:
			if ch.Endpoint == "" {
				return fmt.Errorf("config: channel %d: modbus channel requires endpoint", i)
			}
			if ch.BaseSlot > maxBaseSlot {
				return fmt.Errorf("config: channel %d: base_slot %d exceeds register space", i, ch.BaseSlot)
			}
			if ch.TimeoutMs < 0 {
				return fmt.Errorf("config: channel %d: timeout_ms must be >= 0, got %d", i, ch.TimeoutMs)
			}
			key = fmt.Sprintf("modbus|%s|%d|%d", ch.Endpoint, ch.UnitID, ch.BaseSlot)

		default:
			return fmt.Errorf("config: channel %d: unknown type %q", i, ch.Type)
		}

		if prev, exists := owner[key]; exists {
			return fmt.Errorf(
				"config: channels %d and %d share the same endpoint identity %q",
				prev, i, key,
			)
		}
		owner[key] = i
	}

	return nil
}
