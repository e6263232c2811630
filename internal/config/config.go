// internal/config/config.go
package config

type Config struct {
	Replicator ReplicatorConfig `yaml:"replicator"`
}

type ReplicatorConfig struct {
	Backend  BackendConfig   `yaml:"backend"`
	Poll     PollConfig      `yaml:"poll"`
	Retry    RetryConfig     `yaml:"retry"`
	Channels []ChannelConfig `yaml:"channels"`
}

// ---- BACKEND ----

type BackendConfig struct {
	Driver string `yaml:"driver"` // evdev | synth
	Device string `yaml:"device"` // explicit /dev/input/eventN; empty = auto-detect
	Index  int    `yaml:"index"`  // Nth detected pad when auto-detecting
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- RETRY ----

// RetryConfig governs how delivery loops wait after an endpoint failure.
type RetryConfig struct {
	BackoffMs int `yaml:"backoff_ms"`
}

// ---- CHANNELS ----

// ChannelConfig is one outgoing channel. Only the fields for its type are
// meaningful; the rest stay zero.
type ChannelConfig struct {
	Type string `yaml:"type"` // unix | tcp | serial | modbus

	// unix
	Path string `yaml:"path"`

	// tcp
	Address string `yaml:"address"`

	// serial
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`

	// modbus
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- NAMES ----

const (
	DriverEvdev = "evdev"
	DriverSynth = "synth"
)

const (
	ChannelUnix   = "unix"
	ChannelTCP    = "tcp"
	ChannelSerial = "serial"
	ChannelModbus = "modbus"
)

// ---- DEFAULTS ----

const (
	DefaultIntervalMs      = 100 // 10 Hz
	DefaultBackoffMs       = 250
	DefaultSocketPath      = "/tmp/pad-replicator.sock"
	DefaultBaudRate        = 115200
	DefaultModbusTimeoutMs = 1000
)
