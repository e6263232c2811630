// internal/bridge/constants.go
package bridge

// Pad Register Block layout constants.
// These values define the block layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerPad is the fixed number of registers per pad block.
const SlotsPerPad = 10

// ---- SLOT INDICES ----

// SlotConnected holds 1 while a physical pad is attached, else 0.
const SlotConnected = 0

// SlotButtons holds all fourteen buttons as a bitmask.
const SlotButtons = 1

// SlotLT and SlotRT hold the triggers scaled to 0..AxisScale.
const (
	SlotLT = 2
	SlotRT = 3
)

// SlotLX through SlotRY hold the stick axes scaled to
// -AxisScale..AxisScale, stored as two's complement int16.
const (
	SlotLX = 4
	SlotLY = 5
	SlotRX = 6
	SlotRY = 7
)

// SlotCounter increments on every delivered block so consumers can
// detect a stalled feed. Wraps at 65535.
const SlotCounter = 8

// SlotReserved is reserved for future use and always written as 0.
const SlotReserved = 9

// ---- BUTTON BITS ----

// Bit positions inside SlotButtons.
const (
	BitA uint16 = 1 << iota
	BitB
	BitX
	BitY
	BitLB
	BitRB
	BitBack
	BitStart
	BitLS
	BitRS
	BitDpadUp
	BitDpadDown
	BitDpadLeft
	BitDpadRight
)

// ---- SCALING ----

// AxisScale maps the unit range of an axis onto integer registers:
// a trigger at 1.0 stores AxisScale, a stick at -1.0 stores -AxisScale.
const AxisScale = 1000
