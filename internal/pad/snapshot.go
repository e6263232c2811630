// internal/pad/snapshot.go
package pad

// Snapshot is one complete reading of the pad at a single instant.
// It contains no logic and no memory of the past beyond current state.
// The JSON tags are the wire contract; field names are locked.
type Snapshot struct {
	Connected bool     `json:"connected"`
	Buttons   Buttons  `json:"buttons"`
	Triggers  Triggers `json:"triggers"`
	Sticks    Sticks   `json:"sticks"`
}

// Buttons holds the fourteen digital inputs, d-pad included.
// Each is 0 or 1 on the wire.
type Buttons struct {
	A         Bit `json:"A"`
	B         Bit `json:"B"`
	X         Bit `json:"X"`
	Y         Bit `json:"Y"`
	LB        Bit `json:"LB"`
	RB        Bit `json:"RB"`
	Back      Bit `json:"Back"`
	Start     Bit `json:"Start"`
	LS        Bit `json:"LS"`
	RS        Bit `json:"RS"`
	DpadUp    Bit `json:"DpadUp"`
	DpadDown  Bit `json:"DpadDown"`
	DpadLeft  Bit `json:"DpadLeft"`
	DpadRight Bit `json:"DpadRight"`
}

// Triggers are the analog triggers, normalized to [0, 1].
type Triggers struct {
	LT float64 `json:"LT"`
	RT float64 `json:"RT"`
}

// Sticks are the analog stick axes, normalized to [-1, 1].
// Positive Y is up.
type Sticks struct {
	LX float64 `json:"LX"`
	LY float64 `json:"LY"`
	RX float64 `json:"RX"`
	RY float64 `json:"RY"`
}

// Neutral is the defined state of an absent pad: disconnected, nothing
// pressed, every axis centered. It is the zero value on purpose.
func Neutral() Snapshot {
	return Snapshot{}
}
