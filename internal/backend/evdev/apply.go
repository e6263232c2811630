// internal/backend/evdev/apply.go
package evdev

import (
	ev "github.com/holoplot/go-evdev"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Ranges used when the device does not advertise one.
var (
	defaultStickRange   = ev.AbsInfo{Minimum: -32768, Maximum: 32767}
	defaultTriggerRange = ev.AbsInfo{Minimum: 0, Maximum: 255}
)

// applyEvent folds one kernel input event into s. Events that do not map
// onto the pad model are ignored.
func applyEvent(s *pad.Snapshot, abs map[ev.EvCode]ev.AbsInfo, t ev.EvType, code ev.EvCode, value int32) {
	switch t {
	case ev.EV_KEY:
		applyKey(s, code, value != 0)
	case ev.EV_ABS:
		applyAbs(s, abs, code, value)
	}
}

// applyKey maps the Linux gamepad button codes onto the pad layout.
// BTN_NORTH carries the X label and BTN_WEST the Y label, following the
// kernel xpad driver's aliases for this diamond.
func applyKey(s *pad.Snapshot, code ev.EvCode, pressed bool) {
	p := pad.Bit(pressed)
	switch code {
	case ev.BTN_SOUTH:
		s.Buttons.A = p
	case ev.BTN_EAST:
		s.Buttons.B = p
	case ev.BTN_NORTH:
		s.Buttons.X = p
	case ev.BTN_WEST:
		s.Buttons.Y = p
	case ev.BTN_TL:
		s.Buttons.LB = p
	case ev.BTN_TR:
		s.Buttons.RB = p
	case ev.BTN_SELECT:
		s.Buttons.Back = p
	case ev.BTN_START:
		s.Buttons.Start = p
	case ev.BTN_THUMBL:
		s.Buttons.LS = p
	case ev.BTN_THUMBR:
		s.Buttons.RS = p
	}
}

func applyAbs(s *pad.Snapshot, abs map[ev.EvCode]ev.AbsInfo, code ev.EvCode, value int32) {
	switch code {
	case ev.ABS_X:
		s.Sticks.LX = stickValue(value, abs, code)
	case ev.ABS_Y:
		s.Sticks.LY = -stickValue(value, abs, code) // kernel Y grows downward; the feed is positive-up
	case ev.ABS_RX:
		s.Sticks.RX = stickValue(value, abs, code)
	case ev.ABS_RY:
		s.Sticks.RY = -stickValue(value, abs, code)
	case ev.ABS_Z, ev.ABS_HAT2Y:
		s.Triggers.LT = triggerValue(value, abs, code)
	case ev.ABS_RZ, ev.ABS_HAT2X:
		s.Triggers.RT = triggerValue(value, abs, code)
	case ev.ABS_HAT0X:
		s.Buttons.DpadLeft = pad.Bit(value < 0)
		s.Buttons.DpadRight = pad.Bit(value > 0)
	case ev.ABS_HAT0Y:
		s.Buttons.DpadUp = pad.Bit(value < 0)
		s.Buttons.DpadDown = pad.Bit(value > 0)
	}
}

// stickValue normalizes a stick axis against its advertised range. Ranges
// that sit entirely above zero (0..255 style pads) are re-centered first so
// the split-divisor rule still lands both extremes exactly.
func stickValue(value int32, abs map[ev.EvCode]ev.AbsInfo, code ev.EvCode) float64 {
	info := rangeFor(abs, code, defaultStickRange)
	if info.Minimum >= 0 {
		mid := (info.Minimum + info.Maximum) / 2
		return pad.NormAxis(value-mid, info.Minimum-mid, info.Maximum-mid)
	}
	return pad.NormAxis(value, info.Minimum, info.Maximum)
}

func triggerValue(value int32, abs map[ev.EvCode]ev.AbsInfo, code ev.EvCode) float64 {
	info := rangeFor(abs, code, defaultTriggerRange)
	return pad.NormTrigger(value, info.Minimum, info.Maximum)
}

func rangeFor(abs map[ev.EvCode]ev.AbsInfo, code ev.EvCode, fallback ev.AbsInfo) ev.AbsInfo {
	if info, ok := abs[code]; ok && info.Maximum != info.Minimum {
		return info
	}
	return fallback
}
