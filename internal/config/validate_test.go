// internal/config/validate_test.go
package config

import "testing"

// helper to build a config around a channel list quickly
func channels(chs ...ChannelConfig) *Config {
	return &Config{
		Replicator: ReplicatorConfig{
			Channels: chs,
		},
	}
}

// ---- tests ----

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_KnownDrivers(t *testing.T) {
	for _, d := range []string{"", DriverEvdev, DriverSynth} {
		cfg := &Config{}
		cfg.Replicator.Backend.Driver = d
		if err := Validate(cfg); err != nil {
			t.Fatalf("driver %q: unexpected error: %v", d, err)
		}
	}
}

func TestValidate_UnknownDriverRejected(t *testing.T) {
	cfg := &Config{}
	cfg.Replicator.Backend.Driver = "xinput"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown driver error, got nil")
	}
}

func TestValidate_NegativeIndexRejected(t *testing.T) {
	cfg := &Config{}
	cfg.Replicator.Backend.Index = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative index error, got nil")
	}
}

func TestValidate_NegativeTimingRejected(t *testing.T) {
	cfg := &Config{}
	cfg.Replicator.Poll.IntervalMs = -100
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative interval error, got nil")
	}

	cfg = &Config{}
	cfg.Replicator.Retry.BackoffMs = -1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative backoff error, got nil")
	}
}

func TestValidate_ChannelRequiredFields(t *testing.T) {
	cases := []ChannelConfig{
		{Type: ChannelUnix},   // missing path
		{Type: ChannelTCP},    // missing address
		{Type: ChannelSerial}, // missing device
		{Type: ChannelModbus}, // missing endpoint
	}

	for _, ch := range cases {
		if err := Validate(channels(ch)); err == nil {
			t.Fatalf("channel %+v: expected error, got nil", ch)
		}
	}
}

func TestValidate_UnknownChannelTypeRejected(t *testing.T) {
	if err := Validate(channels(ChannelConfig{Type: "pipe"})); err == nil {
		t.Fatalf("expected unknown channel type error, got nil")
	}
}

func TestValidate_DistinctEndpointsAllowed(t *testing.T) {
	cfg := channels(
		ChannelConfig{Type: ChannelUnix, Path: "/tmp/a.sock"},
		ChannelConfig{Type: ChannelUnix, Path: "/tmp/b.sock"},
		ChannelConfig{Type: ChannelTCP, Address: "127.0.0.1:9716"},
		ChannelConfig{Type: ChannelSerial, Device: "/dev/ttyUSB0"},
		ChannelConfig{Type: ChannelModbus, Endpoint: "127.0.0.1:1502"},
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DuplicateUnixPathDetected(t *testing.T) {
	cfg := channels(
		ChannelConfig{Type: ChannelUnix, Path: "/tmp/pad.sock"},
		ChannelConfig{Type: ChannelUnix, Path: "/tmp/pad.sock"},
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate endpoint error, got nil")
	}
}

func TestValidate_ModbusSameEndpointDifferentSlotAllowed(t *testing.T) {
	cfg := channels(
		ChannelConfig{Type: ChannelModbus, Endpoint: "plc:1502", BaseSlot: 0},
		ChannelConfig{Type: ChannelModbus, Endpoint: "plc:1502", BaseSlot: 1},
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusDuplicateSlotDetected(t *testing.T) {
	cfg := channels(
		ChannelConfig{Type: ChannelModbus, Endpoint: "plc:1502", UnitID: 1, BaseSlot: 3},
		ChannelConfig{Type: ChannelModbus, Endpoint: "plc:1502", UnitID: 1, BaseSlot: 3},
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate slot error, got nil")
	}
}

func TestValidate_ModbusBaseSlotOverflowDetected(t *testing.T) {
	cfg := channels(
		ChannelConfig{Type: ChannelModbus, Endpoint: "plc:1502", BaseSlot: maxBaseSlot + 1},
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected base_slot overflow error, got nil")
	}
}
