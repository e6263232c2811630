// internal/config/normalize.go
package config

// Normalize fills defaults and applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	r := &cfg.Replicator

	// ------------------------------------------------------------
	// DEFAULTS
	// ------------------------------------------------------------

	if r.Backend.Driver == "" {
		r.Backend.Driver = DriverEvdev
	}
	if r.Poll.IntervalMs == 0 {
		r.Poll.IntervalMs = DefaultIntervalMs
	}
	if r.Retry.BackoffMs == 0 {
		r.Retry.BackoffMs = DefaultBackoffMs
	}

	// No channels configured means the default local socket.
	if len(r.Channels) == 0 {
		r.Channels = []ChannelConfig{
			{Type: ChannelUnix, Path: DefaultSocketPath},
		}
	}

	for i := range r.Channels {
		ch := &r.Channels[i]

		if ch.Type == ChannelSerial && ch.BaudRate == 0 {
			ch.BaudRate = DefaultBaudRate
		}
		if ch.Type == ChannelModbus && ch.TimeoutMs == 0 {
			ch.TimeoutMs = DefaultModbusTimeoutMs
		}
	}
}
