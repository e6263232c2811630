// internal/bridge/encode.go
package bridge

import (
	"math"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Encode converts a pad snapshot into a full register block.
// Layout is locked by the constants in this package.
// No IO. No side effects.
func Encode(s pad.Snapshot, counter uint16) []uint16 {
	regs := make([]uint16, SlotsPerPad)

	if s.Connected {
		regs[SlotConnected] = 1
	}
	regs[SlotButtons] = buttonMask(s.Buttons)
	regs[SlotLT] = triggerReg(s.Triggers.LT)
	regs[SlotRT] = triggerReg(s.Triggers.RT)
	regs[SlotLX] = stickReg(s.Sticks.LX)
	regs[SlotLY] = stickReg(s.Sticks.LY)
	regs[SlotRX] = stickReg(s.Sticks.RX)
	regs[SlotRY] = stickReg(s.Sticks.RY)
	regs[SlotCounter] = counter

	return regs
}

func buttonMask(b pad.Buttons) uint16 {
	var m uint16
	set := func(bit uint16, pressed pad.Bit) {
		if pressed {
			m |= bit
		}
	}
	set(BitA, b.A)
	set(BitB, b.B)
	set(BitX, b.X)
	set(BitY, b.Y)
	set(BitLB, b.LB)
	set(BitRB, b.RB)
	set(BitBack, b.Back)
	set(BitStart, b.Start)
	set(BitLS, b.LS)
	set(BitRS, b.RS)
	set(BitDpadUp, b.DpadUp)
	set(BitDpadDown, b.DpadDown)
	set(BitDpadLeft, b.DpadLeft)
	set(BitDpadRight, b.DpadRight)
	return m
}

func triggerReg(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(math.Round(v * AxisScale))
}

func stickReg(v float64) uint16 {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return uint16(int16(math.Round(v * AxisScale)))
}
